package files

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keys records by contact id, which gives it the same
// one-file-per-contact guarantee as the UNIQUE constraint.
type MemoryRepository struct {
	mu        sync.Mutex
	byContact map[string]models.File
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byContact: make(map[string]models.File)}
}

func (r *MemoryRepository) Create(_ context.Context, file *models.File) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byContact[file.ContactID]; ok {
		return nil, common.ErrAlreadyExists
	}

	now := time.Now().UTC()
	file.ID = uuid.NewString()
	file.CreatedAt = now
	file.UpdatedAt = now
	r.byContact[file.ContactID] = *file

	return file, nil
}

func (r *MemoryRepository) GetByContactID(_ context.Context, contactID string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byContact[contactID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &f, nil
}

func (r *MemoryRepository) DeleteByContactID(_ context.Context, contactID string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byContact[contactID]
	if !ok {
		return nil, common.ErrNotFound
	}
	delete(r.byContact, contactID)
	return &f, nil
}
