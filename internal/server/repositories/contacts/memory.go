package contacts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/google/uuid"
)

type memoryEntry struct {
	contact models.Contact
	seq     uint64
}

// MemoryRepository is a process-local Repository. List returns contacts in
// insertion order, matching the PostgreSQL ordering.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*memoryEntry
	seq   uint64
	clock func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:  make(map[string]*memoryEntry),
		clock: func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Create(_ context.Context, contact *models.Contact) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()
	contact.ID = uuid.NewString()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	r.seq++
	r.byID[contact.ID] = &memoryEntry{contact: *contact, seq: r.seq}

	return contact, nil
}

func (r *MemoryRepository) List(_ context.Context, ownerID string) ([]*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*memoryEntry, 0)
	for _, e := range r.byID {
		if e.contact.OwnerID == ownerID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	result := make([]*models.Contact, 0, len(entries))
	for _, e := range entries {
		c := e.contact
		result = append(result, &c)
	}
	return result, nil
}

func (r *MemoryRepository) Get(_ context.Context, ownerID, id string) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.owned(ownerID, id)
	if !ok {
		return nil, common.ErrNotFound
	}
	c := e.contact
	return &c, nil
}

// GetForUpdate is Get; row locking is left to the manager's transaction mutex.
func (r *MemoryRepository) GetForUpdate(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	return r.Get(ctx, ownerID, id)
}

func (r *MemoryRepository) Update(_ context.Context, ownerID, id string, patch models.ContactPatch) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.owned(ownerID, id)
	if !ok {
		return nil, common.ErrNotFound
	}
	patch.Apply(&e.contact)
	e.contact.UpdatedAt = r.clock()

	c := e.contact
	return &c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, ownerID, id string) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.owned(ownerID, id)
	if !ok {
		return nil, common.ErrNotFound
	}
	delete(r.byID, id)

	c := e.contact
	return &c, nil
}

// owned must be called with mu held.
func (r *MemoryRepository) owned(ownerID, id string) (*memoryEntry, bool) {
	e, ok := r.byID[id]
	if !ok || e.contact.OwnerID != ownerID {
		return nil, false
	}
	return e, true
}
