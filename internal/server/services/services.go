// Package services contains the server-side business logic: credentials and
// sessions, owner-scoped contacts, and the single-image-per-contact file
// store. Services receive the caller's user id explicitly; they never read
// it from request data.
package services

import (
	"context"
	"io"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

// TokenEncoder issues session tokens for an authenticated identity.
type TokenEncoder interface {
	Encode(userID, email string) (string, error)
}

// BlobStore is the subset of storage.Store the services need.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
