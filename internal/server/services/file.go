package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
)

var (
	allowedMediaType = regexp.MustCompile(`(?i)^image/(jpg|jpeg|png|webp)$`)
	allowedExtension = regexp.MustCompile(`(?i)^\.(jpg|jpeg|png|webp)$`)
)

const maxNameLength = 128

// FileService stores at most one image per contact. Every operation first
// resolves the contact with the caller's owner id.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       BlobStore
	logger      logging.Logger
	now         func() time.Time
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs BlobStore, l logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		logger:      l.With("module", "file_service"),
		now:         time.Now,
	}
}

// Upload describes an incoming file.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// IsAllowedType reports whether the upload is one of jpg, jpeg, png or webp.
// Both the declared content type and the filename extension must agree,
// since the stored name keeps the extension and it decides how the bytes
// are served back.
func IsAllowedType(filename, contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !allowedMediaType.MatchString(mediaType) {
		return false
	}
	return allowedExtension.MatchString(path.Ext(filename))
}

// Attach stores the upload for contactID. A contact that already has a file
// yields common.ErrAlreadyExists without touching storage. The record is
// inserted with the contact row locked; if a concurrent attach wins the
// insert or the contact is deleted meanwhile, the bytes written here are
// removed again.
func (s *FileService) Attach(ctx context.Context, ownerID, contactID string, up Upload) (*models.File, error) {
	if !IsAllowedType(up.Filename, up.ContentType) {
		return nil, fmt.Errorf("%w: file type must be jpg, jpeg, png or webp", common.ErrValidation)
	}

	if _, err := s.repomanager.Contacts(s.db).Get(ctx, ownerID, contactID); err != nil {
		return nil, err
	}

	files := s.repomanager.Files(s.db)

	_, err := files.GetByContactID(ctx, contactID)
	switch {
	case err == nil:
		return nil, common.ErrAlreadyExists
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("error checking existing file: %w", err)
	}

	name := SanitizeFilename(up.Filename)
	storagePath, err := s.storagePath(name)
	if err != nil {
		return nil, err
	}

	if err := s.blobs.Put(ctx, storagePath, up.Body); err != nil {
		return nil, fmt.Errorf("error writing file: %w", err)
	}

	var f *models.File
	err = s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Contacts(tx).GetForUpdate(ctx, ownerID, contactID); err != nil {
			return err
		}
		f, err = s.repomanager.Files(tx).Create(ctx, &models.File{ContactID: contactID, Filename: name, StoragePath: storagePath})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) || errors.Is(err, common.ErrNotFound) {
			removeBlob(ctx, s.blobs, s.logger, storagePath)
			return nil, err
		}
		s.logger.Error(ctx, "file record not saved, stored bytes left behind", "path", storagePath, "error", err)
		return nil, fmt.Errorf("error saving file record: %w", err)
	}

	s.logger.Info(ctx, "file attached", "contact_id", contactID, "path", storagePath)
	return f, nil
}

// Get returns the file attached to an owned contact.
func (s *FileService) Get(ctx context.Context, ownerID, contactID string) (*models.File, error) {
	if _, err := s.repomanager.Contacts(s.db).Get(ctx, ownerID, contactID); err != nil {
		return nil, err
	}
	return s.repomanager.Files(s.db).GetByContactID(ctx, contactID)
}

// Remove deletes the file record of an owned contact and then its bytes,
// best-effort. It reports whether a record existed; without one no storage
// call is made. A contact the caller does not own yields common.ErrNotFound.
func (s *FileService) Remove(ctx context.Context, ownerID, contactID string) (bool, error) {
	if _, err := s.repomanager.Contacts(s.db).Get(ctx, ownerID, contactID); err != nil {
		return false, err
	}

	f, err := s.repomanager.Files(s.db).DeleteByContactID(ctx, contactID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error deleting file record: %w", err)
	}

	removeBlob(ctx, s.blobs, s.logger, f.StoragePath)
	return true, nil
}

// Open streams stored bytes by their public path.
func (s *FileService) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	return s.blobs.Open(ctx, storagePath)
}

// storagePath builds "YYYY-MM-DD/<unix millis>_<random>_<name>".
func (s *FileService) storagePath(name string) (string, error) {
	now := s.now()
	token, err := common.MakeRandHexString(4)
	if err != nil {
		return "", fmt.Errorf("error generating file name: %w", err)
	}
	return fmt.Sprintf("%s/%d_%s_%s", now.Format(common.DateLayout), now.UnixMilli(), token, name), nil
}

// SanitizeFilename strips directories and control characters from an
// uploaded name and bounds its length, keeping the extension.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	name = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r), r == '/', r == ':':
			return -1
		case unicode.IsSpace(r):
			return '_'
		}
		return r
	}, name)

	if name == "" || name == "." || name == ".." {
		name = "file"
	}

	if len(name) > maxNameLength {
		ext := path.Ext(name)
		if len(ext) > 16 {
			ext = ""
		}
		name = strings.ToValidUTF8(name[:maxNameLength-len(ext)], "") + ext
	}
	return name
}
