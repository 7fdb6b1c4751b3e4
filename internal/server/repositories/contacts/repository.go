// Package contacts persists address-book entries. Every read and write is
// scoped by owner id: a contact owned by someone else behaves exactly like a
// missing one and yields common.ErrNotFound.
package contacts

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	List(ctx context.Context, ownerID string) ([]*models.Contact, error)
	Get(ctx context.Context, ownerID, id string) (*models.Contact, error)
	// GetForUpdate is Get that also locks the row until the enclosing
	// transaction ends.
	GetForUpdate(ctx context.Context, ownerID, id string) (*models.Contact, error)
	Update(ctx context.Context, ownerID, id string, patch models.ContactPatch) (*models.Contact, error)
	Delete(ctx context.Context, ownerID, id string) (*models.Contact, error)
}
