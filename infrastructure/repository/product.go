package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/royaltyx/royaltyx-api/infrastructure/database/postgres"
	"github.com/royaltyx/royaltyx-api/internal/domain"
)

const productsTable = "products p"

//go:generate mockgen -source=product.go -destination=mocks/mock_product.go -package=mocks

type ProductRepository interface {
	CountByProject(ctx context.Context, projectID int64) (int, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Product, error)
	GetByID(ctx context.Context, projectID, productID int64) (*domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) CountByProject(ctx context.Context, projectID int64) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(productsTable).
		Where(squirrel.Eq{"p.project_id": projectID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, queryError(err, "building product count query")
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, queryError(err, "counting products")
	}

	return count, nil
}

func (r *productRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.Product, error) {
	query, args, err := squirrel.
		Select("p.id, p.project_id, p.title, p.is_active").
		From(productsTable).
		Where(squirrel.Eq{"p.project_id": projectID}).
		OrderBy("p.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, queryError(err, "building product list query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(err, "listing products")
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product := &domain.Product{}
		if err := rows.Scan(&product.ID, &product.ProjectID, &product.Title, &product.IsActive); err != nil {
			return nil, queryError(err, "scanning product")
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(err, "iterating products")
	}

	return products, nil
}

// GetByID returns nil without error when the product does not belong to the project.
func (r *productRepository) GetByID(ctx context.Context, projectID, productID int64) (*domain.Product, error) {
	query, args, err := squirrel.
		Select("p.id, p.project_id, p.title, p.is_active").
		From(productsTable).
		Where(squirrel.Eq{"p.id": productID, "p.project_id": projectID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, queryError(err, "building product query")
	}

	product := &domain.Product{}
	err = r.conn.QueryRowContext(ctx, query, args...).
		Scan(&product.ID, &product.ProjectID, &product.Title, &product.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, queryError(err, "getting product")
	}

	return product, nil
}
