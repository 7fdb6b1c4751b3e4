package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/filex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return s
}

func TestLocalStore_PutOpenDelete(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "2024-05-01/1_ab_cat.png", strings.NewReader("png-bytes")))

	_, err := os.Stat(filepath.Join(s.Root(), "2024-05-01", "1_ab_cat.png"))
	require.NoError(t, err, "date directory is created on demand")

	rc, err := s.Open(ctx, "2024-05-01/1_ab_cat.png")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, s.Delete(ctx, "2024-05-01/1_ab_cat.png"))
	assert.ErrorIs(t, s.Delete(ctx, "2024-05-01/1_ab_cat.png"), common.ErrNotFound)

	_, err = s.Open(ctx, "2024-05-01/1_ab_cat.png")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLocalStore_PutDoesNotOverwrite(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "d/a.png", strings.NewReader("one")))
	err := s.Put(ctx, "d/a.png", strings.NewReader("two"))
	assert.ErrorIs(t, err, common.ErrStorage)

	rc, err := s.Open(ctx, "d/a.png")
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "one", string(b))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStore_PutRemovesPartialFile(t *testing.T) {
	s := newLocal(t)

	err := s.Put(context.Background(), "d/partial.png", failingReader{})
	assert.ErrorIs(t, err, common.ErrStorage)

	_, statErr := os.Stat(filepath.Join(s.Root(), "d", "partial.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStore_RejectsEscapingPaths(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Put(ctx, "../evil.png", strings.NewReader("x")), filex.ErrOutsideRoot)
	assert.ErrorIs(t, s.Delete(ctx, "../../etc/passwd"), filex.ErrOutsideRoot)
	assert.ErrorIs(t, s.Delete(ctx, "."), filex.ErrOutsideRoot)

	_, err := s.Open(ctx, "../uploads/../x")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLocalStore_OpenDirectoryIsNotFound(t *testing.T) {
	s := newLocal(t)
	require.NoError(t, s.Put(context.Background(), "2024-05-01/a.png", strings.NewReader("x")))

	_, err := s.Open(context.Background(), "2024-05-01")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLocalStore_PutHonoursCancelledContext(t *testing.T) {
	s := newLocal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Put(ctx, "d/a.png", strings.NewReader("x")), context.Canceled)
}
