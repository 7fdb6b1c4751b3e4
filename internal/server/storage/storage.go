// Package storage holds the blob backends that keep uploaded file bytes.
// Paths are slash-separated and relative to the backend root, e.g.
// "2024-05-01/1714557600000_3fa2_cat.png".
package storage

import (
	"context"
	"io"
)

// Store writes, reads and removes blobs by relative path. Open and Delete
// return common.ErrNotFound for a missing blob.
type Store interface {
	Put(ctx context.Context, path string, r io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

var (
	_ Store = (*LocalStore)(nil)
	_ Store = (*S3Store)(nil)
)
