package files

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery = `(?s)^\s*INSERT\s+INTO\s+files\s*\(contact_id,\s*filename,\s*storage_path\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`
	selectQuery = `(?s)^\s*SELECT\s+id,\s*contact_id,\s*filename,\s*storage_path,\s*created_at,\s*updated_at\s+FROM\s+files\s+WHERE\s+contact_id\s*=\s*\$1\s*$`
	deleteQuery = `(?s)^\s*DELETE\s+FROM\s+files\s+WHERE\s+contact_id\s*=\s*\$1\s+RETURNING\s+id,\s*contact_id,\s*filename,\s*storage_path,\s*created_at,\s*updated_at\s*$`
)

var (
	cols = []string{"id", "contact_id", "filename", "storage_path", "created_at", "updated_at"}
	ts   = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).
		WithArgs("c1", "cat.png", "2024-05-01/1_ab_cat.png").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("f1", ts, ts))

	got, err := repo.Create(context.Background(), &models.File{ContactID: "c1", Filename: "cat.png", StoragePath: "2024-05-01/1_ab_cat.png"})
	require.NoError(t, err)
	assert.Equal(t, "f1", got.ID)
	assert.Equal(t, ts, got.UpdatedAt)
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).
		WithArgs("c1", "cat.png", "p").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "files_contact_id_key"})

	_, err := repo.Create(context.Background(), &models.File{ContactID: "c1", Filename: "cat.png", StoragePath: "p"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.File{ContactID: "c1"})
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
	assert.NotErrorIs(t, err, common.ErrAlreadyExists)
}

func TestGetByContactID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(selectQuery).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("f1", "c1", "cat.png", "2024-05-01/x_cat.png", ts, ts))

		got, err := repo.GetByContactID(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, &models.File{ID: "f1", ContactID: "c1", Filename: "cat.png", StoragePath: "2024-05-01/x_cat.png", CreatedAt: ts, UpdatedAt: ts}, got)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(selectQuery).WithArgs("c1").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByContactID(context.Background(), "c1")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDeleteByContactID(t *testing.T) {
	t.Run("returns removed row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(deleteQuery).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("f1", "c1", "cat.png", "2024-05-01/x_cat.png", ts, ts))

		got, err := repo.DeleteByContactID(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, "2024-05-01/x_cat.png", got.StoragePath)
	})

	t.Run("nothing to delete", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(deleteQuery).WithArgs("c1").WillReturnError(sql.ErrNoRows)

		_, err := repo.DeleteByContactID(context.Background(), "c1")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(deleteQuery).WithArgs("c1").WillReturnError(errors.New("boom"))

		_, err := repo.DeleteByContactID(context.Background(), "c1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrNotFound)
	})
}
