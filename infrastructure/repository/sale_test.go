package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/royaltyx/royaltyx-api/infrastructure/database/postgres"
	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return postgres.NewFromDB(db), mock
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestSaleRepository_FindByScope(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	saleColumnNames := []string{
		"id", "product_id", "file_id", "type", "unit_price", "unit_price_currency",
		"quantity", "is_refund", "royalty_amount", "royalty_currency", "period_start", "period_end",
	}

	tests := []struct {
		name     string
		scope    domain.Scope
		filters  *domain.RecordFilters
		setup    func(mock sqlmock.Sqlmock)
		validate func(t *testing.T, sales []*domain.ProductSale, err error)
	}{
		{
			name:  "project scope with period bounds and equality filters",
			scope: domain.Scope{ProjectID: 7},
			filters: &domain.RecordFilters{
				PeriodStartGTE: &start,
				PeriodEndLTE:   &end,
				Equals: map[string]any{
					domain.FilterType:     "rental",
					domain.FilterIsRefund: false,
				},
			},
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(saleColumnNames).
					AddRow(int64(1), int64(10), nil, "rental", "4.99", "USD", int64(2), false, "1.50", "USD",
						time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)).
					AddRow(int64(2), int64(11), int64(3), "rental", nil, "", int64(1), false, nil, "",
						time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))

				mock.ExpectQuery(`SELECT (.+) FROM product_sales ps JOIN products p (.+) LEFT JOIN import_files f (.+) WHERE p\.project_id = \$1 AND f\.deleted_at IS NULL AND ps\.period_start >= \$2 AND ps\.period_end <= \$3 AND ps\.is_refund = \$4 AND ps\.type = \$5 ORDER BY ps\.period_start ASC, ps\.id ASC`).
					WithArgs(int64(7), "2024-01-01", "2024-12-31", false, "rental").
					WillReturnRows(rows)
			},
			validate: func(t *testing.T, sales []*domain.ProductSale, err error) {
				require.NoError(t, err)
				require.Len(t, sales, 2)

				assert.Equal(t, int64(1), sales[0].ID)
				assert.Nil(t, sales[0].FileID)
				assert.Equal(t, domain.SaleTypeRental, sales[0].Type)
				assert.Equal(t, "1.50", sales[0].RoyaltyAmount)
				assert.Equal(t, int64(2), sales[0].Quantity)
				assert.Equal(t, "2024-03-01", sales[0].PeriodStart.Format(time.DateOnly))

				require.NotNil(t, sales[1].FileID)
				assert.Equal(t, int64(3), *sales[1].FileID)
				assert.Empty(t, sales[1].RoyaltyAmount)
				assert.Empty(t, sales[1].UnitPrice)
			},
		},
		{
			name:  "product scope ignores filters that only exist on impressions",
			scope: domain.Scope{ProjectID: 7, ProductID: int64Ptr(42)},
			filters: &domain.RecordFilters{
				Equals: map[string]any{"unknown": "x"},
			},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM product_sales ps (.+) WHERE p\.project_id = \$1 AND f\.deleted_at IS NULL AND ps\.product_id = \$2 ORDER BY`).
					WithArgs(int64(7), int64(42)).
					WillReturnRows(sqlmock.NewRows(saleColumnNames))
			},
			validate: func(t *testing.T, sales []*domain.ProductSale, err error) {
				require.NoError(t, err)
				assert.NotNil(t, sales)
				assert.Empty(t, sales)
			},
		},
		{
			name:  "database error is wrapped with the postgres code",
			scope: domain.Scope{ProjectID: 7},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM product_sales ps`).
					WillReturnError(&pq.Error{Code: "57014", Message: "canceling statement due to statement timeout"})
			},
			validate: func(t *testing.T, sales []*domain.ProductSale, err error) {
				require.Error(t, err)
				assert.Nil(t, sales)
				assert.Contains(t, err.Error(), "querying sales")
				assert.Contains(t, err.Error(), "57014")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnection(t)
			tt.setup(mock)

			repo := NewSaleRepository(conn)
			sales, err := repo.FindByScope(context.Background(), tt.scope, tt.filters)

			tt.validate(t, sales, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSaleRepository_EarliestPeriodStart(t *testing.T) {
	t.Run("returns the truncated minimum", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT MIN(ps.period_start) FROM product_sales ps")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(time.Date(2023, 5, 20, 13, 0, 0, 0, time.UTC)))

		earliest, err := NewSaleRepository(conn).EarliestPeriodStart(context.Background(), domain.Scope{ProjectID: 7})

		require.NoError(t, err)
		require.NotNil(t, earliest)
		assert.Equal(t, time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC), *earliest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when there are no sales", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT MIN(ps.period_start) FROM product_sales ps")).
			WithArgs(int64(7), int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(nil))

		earliest, err := NewSaleRepository(conn).EarliestPeriodStart(context.Background(), domain.Scope{ProjectID: 7, ProductID: int64Ptr(9)})

		require.NoError(t, err)
		assert.Nil(t, earliest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
