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
	productImpressionsTable = "product_impressions pi"
	impressionColumns       = "pi.id, pi.product_id, pi.file_id, pi.impressions, pi.ecpm::text, pi.period_start, pi.period_end"
)

//go:generate mockgen -source=impression.go -destination=mocks/mock_impression.go -package=mocks

type ImpressionRepository interface {
	FindByScope(ctx context.Context, scope domain.Scope, filters *domain.RecordFilters) ([]*domain.ProductImpression, error)
	EarliestPeriodStart(ctx context.Context, scope domain.Scope) (*time.Time, error)
}

type impressionRepository struct {
	conn *postgres.Connection
}

func NewImpressionRepository(conn *postgres.Connection) ImpressionRepository {
	return &impressionRepository{
		conn: conn,
	}
}

func (r *impressionRepository) FindByScope(ctx context.Context, scope domain.Scope, filters *domain.RecordFilters) ([]*domain.ProductImpression, error) {
	builder := scopedSelect(squirrel.Select(impressionColumns).From(productImpressionsTable), "pi", scope)
	builder = filteredSelect(builder, "pi", domain.ImpressionFilterColumns, filters)

	query, args, err := builder.
		OrderBy("pi.period_start ASC", "pi.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, queryError(err, "building impressions query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(err, "querying impressions")
	}
	defer rows.Close()

	impressions := make([]*domain.ProductImpression, 0)
	for rows.Next() {
		impression := &domain.ProductImpression{}
		var (
			fileID sql.NullInt64
			ecpm   sql.NullString
		)

		err := rows.Scan(
			&impression.ID,
			&impression.ProductID,
			&fileID,
			&impression.Impressions,
			&ecpm,
			&impression.PeriodStart,
			&impression.PeriodEnd,
		)
		if err != nil {
			return nil, queryError(err, "scanning impression")
		}

		if fileID.Valid {
			impression.FileID = &fileID.Int64
		}
		impression.ECPM = ecpm.String
		impression.PeriodStart = dateOnly(impression.PeriodStart)
		impression.PeriodEnd = dateOnly(impression.PeriodEnd)

		impressions = append(impressions, impression)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(err, "iterating impressions")
	}

	return impressions, nil
}

func (r *impressionRepository) EarliestPeriodStart(ctx context.Context, scope domain.Scope) (*time.Time, error) {
	query, args, err := scopedSelect(squirrel.Select("MIN(pi.period_start)").From(productImpressionsTable), "pi", scope).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, queryError(err, "building earliest impression query")
	}

	var earliest sql.NullTime
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&earliest); err != nil {
		return nil, queryError(err, "querying earliest impression")
	}

	if !earliest.Valid {
		return nil, nil
	}

	day := dateOnly(earliest.Time)
	return &day, nil
}
