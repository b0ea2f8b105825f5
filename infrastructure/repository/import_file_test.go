package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFileRepository_ListDeletedBefore(t *testing.T) {
	conn, mock := newMockConnection(t)
	deletedAt := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT f.id, f.project_id, f.name, f.deleted_at FROM import_files f WHERE f.deleted_at IS NOT NULL AND f.deleted_at < $1 ORDER BY f.id ASC")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "name", "deleted_at"}).
			AddRow(int64(3), int64(7), "youtube-2023.csv", deletedAt))

	files, err := NewImportFileRepository(conn).ListDeletedBefore(context.Background(), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "youtube-2023.csv", files[0].Name)
	require.NotNil(t, files[0].DeletedAt)
	assert.True(t, deletedAt.Equal(*files[0].DeletedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportFileRepository_PurgeRecords(t *testing.T) {
	t.Run("deletes records and files in one transaction", func(t *testing.T) {
		conn, mock := newMockConnection(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_sales WHERE file_id IN ($1,$2)")).
			WithArgs(int64(3), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 12))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_impressions WHERE file_id IN ($1,$2)")).
			WithArgs(int64(3), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM import_files WHERE id IN ($1,$2)")).
			WithArgs(int64(3), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		result, err := NewImportFileRepository(conn).PurgeRecords(context.Background(), []int64{3, 4})

		require.NoError(t, err)
		assert.Equal(t, int64(12), result.Sales)
		assert.Equal(t, int64(5), result.Impressions)
		assert.Equal(t, int64(2), result.Files)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a delete fails", func(t *testing.T) {
		conn, mock := newMockConnection(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_sales WHERE file_id IN ($1)")).
			WithArgs(int64(3)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		result, err := NewImportFileRepository(conn).PurgeRecords(context.Background(), []int64{3})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "deleting from product_sales")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no files is a no-op", func(t *testing.T) {
		conn, mock := newMockConnection(t)

		result, err := NewImportFileRepository(conn).PurgeRecords(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Files)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
