package repomanager

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/files"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out the same process-local repositories
// regardless of the db handle. Transactions are serialized with a mutex and
// are not rolled back; callers order their steps so a failure happens
// before any mutation.
type InMemoryRepositoryManager struct {
	txMu     sync.Mutex
	users    *users.MemoryRepository
	contacts *contacts.MemoryRepository
	files    *files.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		contacts: contacts.NewMemoryRepository(),
		files:    files.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Contacts(dbx.DBTX) contacts.Repository {
	return m.contacts
}

func (m *InMemoryRepositoryManager) Files(dbx.DBTX) files.Repository {
	return m.files
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}
