package repository

import (
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/royaltyx/royaltyx-api/internal/domain"
)

const (
	productsTableName    = "products"
	importFilesTableName = "import_files"
)

// scopedSelect restricts a record query to the scope's project (and product, if
// any) and hides rows whose import file was soft deleted.
func scopedSelect(builder squirrel.SelectBuilder, alias string, scope domain.Scope) squirrel.SelectBuilder {
	builder = builder.
		Join(fmt.Sprintf("%s p ON p.id = %s.product_id", productsTableName, alias)).
		LeftJoin(fmt.Sprintf("%s f ON f.id = %s.file_id", importFilesTableName, alias)).
		Where(squirrel.Eq{"p.project_id": scope.ProjectID}).
		Where("f.deleted_at IS NULL")

	if scope.ProductID != nil {
		builder = builder.Where(squirrel.Eq{alias + ".product_id": *scope.ProductID})
	}

	return builder
}

// filteredSelect applies the period bounds and the equality filters that exist
// on this record type. Keys without a column here are ignored.
func filteredSelect(builder squirrel.SelectBuilder, alias string, columns map[string]string, filters *domain.RecordFilters) squirrel.SelectBuilder {
	if filters == nil {
		return builder
	}

	if filters.PeriodStartGTE != nil {
		builder = builder.Where(squirrel.GtOrEq{alias + ".period_start": filters.PeriodStartGTE.Format(time.DateOnly)})
	}

	if filters.PeriodEndLTE != nil {
		builder = builder.Where(squirrel.LtOrEq{alias + ".period_end": filters.PeriodEndLTE.Format(time.DateOnly)})
	}

	keys := make([]string, 0, len(filters.Equals))
	for key := range filters.Equals {
		if _, ok := columns[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		builder = builder.Where(squirrel.Eq{columns[key]: filters.Equals[key]})
	}

	return builder
}

func queryError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errors.Wrapf(err, "%s (code: %s)", op, pqErr.Code)
	}
	return errors.Wrap(err, op)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
