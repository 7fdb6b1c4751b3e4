// Package users persists registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// Repository stores users keyed by id and by their (unique) email.
// Create returns common.ErrAlreadyExists when the email is taken;
// GetByEmail returns common.ErrNotFound for an unknown email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
