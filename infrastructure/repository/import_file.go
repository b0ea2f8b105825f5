package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/royaltyx/royaltyx-api/infrastructure/database/postgres"
	"github.com/royaltyx/royaltyx-api/internal/domain"
)

const importFilesTable = "import_files f"

//go:generate mockgen -source=import_file.go -destination=mocks/mock_import_file.go -package=mocks

type ImportFileRepository interface {
	ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*domain.ImportFile, error)
	PurgeRecords(ctx context.Context, fileIDs []int64) (*domain.PurgeResult, error)
}

type importFileRepository struct {
	conn *postgres.Connection
}

func NewImportFileRepository(conn *postgres.Connection) ImportFileRepository {
	return &importFileRepository{
		conn: conn,
	}
}

func (r *importFileRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*domain.ImportFile, error) {
	query, args, err := squirrel.
		Select("f.id, f.project_id, f.name, f.deleted_at").
		From(importFilesTable).
		Where("f.deleted_at IS NOT NULL").
		Where(squirrel.Lt{"f.deleted_at": cutoff}).
		OrderBy("f.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, queryError(err, "building deleted files query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(err, "listing deleted files")
	}
	defer rows.Close()

	files := make([]*domain.ImportFile, 0)
	for rows.Next() {
		file := &domain.ImportFile{}
		var deletedAt sql.NullTime
		if err := rows.Scan(&file.ID, &file.ProjectID, &file.Name, &deletedAt); err != nil {
			return nil, queryError(err, "scanning import file")
		}
		if deletedAt.Valid {
			file.DeletedAt = &deletedAt.Time
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(err, "iterating deleted files")
	}

	return files, nil
}

// PurgeRecords hard deletes the given files together with every sale and
// impression they imported, in a single transaction.
func (r *importFileRepository) PurgeRecords(ctx context.Context, fileIDs []int64) (*domain.PurgeResult, error) {
	result := &domain.PurgeResult{}
	if len(fileIDs) == 0 {
		return result, nil
	}

	err := r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		var err error

		result.Sales, err = deleteByFileIDs(ctx, q, "product_sales", "file_id", fileIDs)
		if err != nil {
			return err
		}

		result.Impressions, err = deleteByFileIDs(ctx, q, "product_impressions", "file_id", fileIDs)
		if err != nil {
			return err
		}

		result.Files, err = deleteByFileIDs(ctx, q, "import_files", "id", fileIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func deleteByFileIDs(ctx context.Context, q postgres.Queryer, table, column string, fileIDs []int64) (int64, error) {
	query, args, err := squirrel.
		Delete(table).
		Where(squirrel.Eq{column: fileIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, queryError(err, "building delete on "+table)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, queryError(err, "deleting from "+table)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, queryError(err, "reading affected rows on "+table)
	}

	return affected, nil
}
