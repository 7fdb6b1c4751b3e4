package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

const columns = `id, owner_id, name, phone, address, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (*models.Contact, error) {
	c := &models.Contact{}
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// one maps a single-row result, translating "no rows" into ErrNotFound.
func one(row *sql.Row) (*models.Contact, error) {
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	query :=
		`INSERT INTO contacts (owner_id, name, phone, address)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, contact.OwnerID, contact.Name, contact.Phone, contact.Address).
		Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]*models.Contact, error) {
	query := `SELECT ` + columns + ` FROM contacts
		 WHERE owner_id = $1
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	query := `SELECT ` + columns + ` FROM contacts
		 WHERE id = $1 AND owner_id = $2
		 `

	return one(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	query := `SELECT ` + columns + ` FROM contacts
		 WHERE id = $1 AND owner_id = $2
		 FOR UPDATE
		 `

	return one(r.db.QueryRowContext(ctx, query, id, ownerID))
}

// Update changes only the fields present in patch, in a single statement.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, patch models.ContactPatch) (*models.Contact, error) {
	query := `UPDATE contacts SET
		 name = COALESCE($3, name),
		 phone = COALESCE($4, phone),
		 address = COALESCE($5, address),
		 updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING ` + columns

	return one(r.db.QueryRowContext(ctx, query, id, ownerID,
		nullable(patch.Name), nullable(patch.Phone), nullable(patch.Address)))
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	query := `DELETE FROM contacts
		 WHERE id = $1 AND owner_id = $2
		 RETURNING ` + columns

	return one(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
