package services

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeBlobs is a goroutine-safe in-memory BlobStore that counts calls.
type fakeBlobs struct {
	mu        sync.Mutex
	objects   map[string][]byte
	puts      int
	deletes   int
	putErr    error
	deleteErr error
	// onPut runs after the bytes are read and before they are stored.
	onPut func()
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{objects: map[string][]byte{}} }

func (f *fakeBlobs) Put(_ context.Context, path string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if f.onPut != nil {
		f.onPut()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[path] = b
	return nil
}

func (f *fakeBlobs) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[path]
	if !ok {
		return nil, common.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeBlobs) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.objects[path]; !ok {
		return common.ErrNotFound
	}
	delete(f.objects, path)
	return nil
}

func (f *fakeBlobs) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type fixture struct {
	rm       *repomanager.InMemoryRepositoryManager
	blobs    *fakeBlobs
	codec    *auth.TokenCodec
	users    *UserService
	contacts *ContactService
	files    *FileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rm := repomanager.NewInMemoryRepositoryManager()
	blobs := newFakeBlobs()
	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour)
	l := logging.Discard()

	return &fixture{
		rm:       rm,
		blobs:    blobs,
		codec:    codec,
		users:    NewUserService(nil, rm, auth.NewBcryptHasher(bcrypt.MinCost), codec, l),
		contacts: NewContactService(nil, rm, blobs, l),
		files:    NewFileService(nil, rm, blobs, l),
	}
}

func (fx *fixture) contact(t *testing.T, owner, name string) *models.Contact {
	t.Helper()
	c, err := fx.contacts.Create(context.Background(), owner, ContactInput{Name: name, Phone: "123", Address: "Main st"})
	require.NoError(t, err)
	return c
}

func png(name string) Upload {
	return Upload{Filename: name, ContentType: "image/png", Body: bytes.NewReader([]byte("\x89PNG fake"))}
}

func strPtr(s string) *string { return &s }
