package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/filex"
)

// LocalStore keeps blobs on the local filesystem under root.
type LocalStore struct {
	root string
}

// NewLocalStore creates root if needed and returns a store rooted there.
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, err
	}
	return &LocalStore{root: abs}, nil
}

// Root returns the absolute directory blobs are stored under.
func (s *LocalStore) Root() string {
	return s.root
}

// Put ensures the parent directory of p exists and writes r to it. A
// partially written file is removed on failure.
func (s *LocalStore) Put(ctx context.Context, p string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := filex.Join(s.root, p)
	if err != nil {
		return err
	}
	if _, err := filex.EnsureDir(s.root, path.Dir(p)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}

func (s *LocalStore) Open(_ context.Context, p string) (io.ReadCloser, error) {
	full, err := filex.Join(s.root, p)
	if err != nil {
		return nil, common.ErrNotFound
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		_ = f.Close()
		return nil, common.ErrNotFound
	}
	return f, nil
}

func (s *LocalStore) Delete(_ context.Context, p string) error {
	full, err := filex.Join(s.root, p)
	if err != nil {
		return err
	}
	if full == filepath.Clean(s.root) {
		return filex.ErrOutsideRoot
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}
