package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/royaltyx/royaltyx-api/infrastructure/database/postgres"
	"github.com/royaltyx/royaltyx-api/internal/domain"
)

const (
	productSalesTable = "product_sales ps"
	saleColumns       = "ps.id, ps.product_id, ps.file_id, ps.type, ps.unit_price::text, " +
		"COALESCE(ps.unit_price_currency, ''), ps.quantity, ps.is_refund, ps.royalty_amount::text, " +
		"COALESCE(ps.royalty_currency, ''), ps.period_start, ps.period_end"
)

//go:generate mockgen -source=sale.go -destination=mocks/mock_sale.go -package=mocks

type SaleRepository interface {
	FindByScope(ctx context.Context, scope domain.Scope, filters *domain.RecordFilters) ([]*domain.ProductSale, error)
	EarliestPeriodStart(ctx context.Context, scope domain.Scope) (*time.Time, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) FindByScope(ctx context.Context, scope domain.Scope, filters *domain.RecordFilters) ([]*domain.ProductSale, error) {
	builder := scopedSelect(squirrel.Select(saleColumns).From(productSalesTable), "ps", scope)
	builder = filteredSelect(builder, "ps", domain.SaleFilterColumns, filters)

	query, args, err := builder.
		OrderBy("ps.period_start ASC", "ps.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, queryError(err, "building sales query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(err, "querying sales")
	}
	defer rows.Close()

	sales := make([]*domain.ProductSale, 0)
	for rows.Next() {
		sale, err := r.scanSale(rows)
		if err != nil {
			return nil, queryError(err, "scanning sale")
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(err, "iterating sales")
	}

	return sales, nil
}

func (r *saleRepository) EarliestPeriodStart(ctx context.Context, scope domain.Scope) (*time.Time, error) {
	query, args, err := scopedSelect(squirrel.Select("MIN(ps.period_start)").From(productSalesTable), "ps", scope).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, queryError(err, "building earliest sale query")
	}

	var earliest sql.NullTime
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&earliest); err != nil {
		return nil, queryError(err, "querying earliest sale")
	}

	if !earliest.Valid {
		return nil, nil
	}

	day := dateOnly(earliest.Time)
	return &day, nil
}

func (r *saleRepository) scanSale(rows *sql.Rows) (*domain.ProductSale, error) {
	sale := &domain.ProductSale{}
	var (
		fileID        sql.NullInt64
		unitPrice     sql.NullString
		royaltyAmount sql.NullString
		saleType      string
	)

	err := rows.Scan(
		&sale.ID,
		&sale.ProductID,
		&fileID,
		&saleType,
		&unitPrice,
		&sale.UnitPriceCurrency,
		&sale.Quantity,
		&sale.IsRefund,
		&royaltyAmount,
		&sale.RoyaltyCurrency,
		&sale.PeriodStart,
		&sale.PeriodEnd,
	)
	if err != nil {
		return nil, err
	}

	if fileID.Valid {
		sale.FileID = &fileID.Int64
	}
	sale.Type = domain.SaleType(saleType)
	sale.UnitPrice = unitPrice.String
	sale.RoyaltyAmount = royaltyAmount.String
	sale.PeriodStart = dateOnly(sale.PeriodStart)
	sale.PeriodEnd = dateOnly(sale.PeriodEnd)

	return sale, nil
}
