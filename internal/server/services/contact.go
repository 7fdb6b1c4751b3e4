package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
)

// ContactService implements owner-scoped contact CRUD. Contacts of other
// users are reported as common.ErrNotFound.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       BlobStore
	logger      logging.Logger
}

func NewContactService(db *sql.DB, m repomanager.RepositoryManager, blobs BlobStore, l logging.Logger) *ContactService {
	return &ContactService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		logger:      l.With("module", "contact_service"),
	}
}

// ContactInput holds the fields of a new contact.
type ContactInput struct {
	Name    string
	Phone   string
	Address string
}

func (s *ContactService) Create(ctx context.Context, ownerID string, in ContactInput) (*models.Contact, error) {
	c := &models.Contact{OwnerID: ownerID, Name: in.Name, Phone: in.Phone, Address: in.Address}

	created, err := s.repomanager.Contacts(s.db).Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("error creating contact: %w", err)
	}

	s.logger.Debug(ctx, "contact created", "contact_id", created.ID, "owner_id", ownerID)
	return created, nil
}

func (s *ContactService) List(ctx context.Context, ownerID string) ([]*models.Contact, error) {
	return s.repomanager.Contacts(s.db).List(ctx, ownerID)
}

func (s *ContactService) Get(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	return s.repomanager.Contacts(s.db).Get(ctx, ownerID, id)
}

// Update applies patch. An empty patch returns the current contact unchanged.
func (s *ContactService) Update(ctx context.Context, ownerID, id string, patch models.ContactPatch) (*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)
	if patch.Empty() {
		return repo.Get(ctx, ownerID, id)
	}
	return repo.Update(ctx, ownerID, id, patch)
}

// Delete removes the contact together with its attached file record in one
// transaction, then unlinks the file bytes. The contact row stays locked for
// the whole transaction, so a concurrent Attach either lands before and is
// cleaned up here, or sees the contact gone. A failed unlink is logged and
// does not fail the call.
func (s *ContactService) Delete(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	var (
		deleted  *models.Contact
		attached *models.File
	)

	err := s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		contacts := s.repomanager.Contacts(tx)

		if _, err := contacts.GetForUpdate(ctx, ownerID, id); err != nil {
			return err
		}

		f, err := s.repomanager.Files(tx).DeleteByContactID(ctx, id)
		switch {
		case err == nil:
			attached = f
		case !errors.Is(err, common.ErrNotFound):
			return err
		}

		deleted, err = contacts.Delete(ctx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if attached != nil {
		removeBlob(ctx, s.blobs, s.logger, attached.StoragePath)
	}

	s.logger.Debug(ctx, "contact deleted", "contact_id", id, "owner_id", ownerID)
	return deleted, nil
}

// removeBlob deletes stored bytes best-effort.
func removeBlob(ctx context.Context, blobs BlobStore, l logging.Logger, path string) {
	if err := blobs.Delete(ctx, path); err != nil {
		l.Warn(ctx, "failed to delete file", "path", path, "error", err)
	}
}
