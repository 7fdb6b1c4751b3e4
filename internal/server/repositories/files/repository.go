// Package files persists the metadata of the single image attached to a
// contact. At most one record exists per contact id; a second Create for
// the same contact fails with common.ErrAlreadyExists.
//
// Ownership is not checked here: callers resolve the contact through the
// owner-scoped contacts repository first.
package files

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	GetByContactID(ctx context.Context, contactID string) (*models.File, error)
	DeleteByContactID(ctx context.Context, contactID string) (*models.File, error)
}
