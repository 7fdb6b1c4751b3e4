package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a file record. The UNIQUE (contact_id) constraint turns a
// concurrent second attach into common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (contact_id, filename, storage_path)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, file.ContactID, file.Filename, file.StoragePath).
		Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

// GetByContactID returns the file attached to contactID.
func (r *PostgresRepository) GetByContactID(ctx context.Context, contactID string) (*models.File, error) {
	query := `
		SELECT id, contact_id, filename, storage_path, created_at, updated_at FROM files
		WHERE contact_id = $1
	`
	return scanFile(r.db.QueryRowContext(ctx, query, contactID))
}

// DeleteByContactID removes the file record for contactID and returns it so
// the caller can unlink the stored bytes.
func (r *PostgresRepository) DeleteByContactID(ctx context.Context, contactID string) (*models.File, error) {
	query := `
		DELETE FROM files
		WHERE contact_id = $1
		RETURNING id, contact_id, filename, storage_path, created_at, updated_at
	`
	return scanFile(r.db.QueryRowContext(ctx, query, contactID))
}

func scanFile(row *sql.Row) (*models.File, error) {
	f := &models.File{}
	if err := row.Scan(&f.ID, &f.ContactID, &f.Filename, &f.StoragePath, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}
