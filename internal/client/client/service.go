package client

import (
	"context"
	"io"
	"time"
)

// Contact mirrors the server's contact representation.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactInput holds the fields of a new contact.
type ContactInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ContactPatch carries a partial update; nil fields are not sent.
type ContactPatch struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// FileInfo describes the image attached to a contact. URL is the storage
// path, served under /uploads/.
type FileInfo struct {
	ContactID string `json:"contactId"`
	URL       string `json:"url"`
}

type Client interface {
	SetToken(token string)
	Ping(ctx context.Context) error
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	ListContacts(ctx context.Context) ([]Contact, error)
	GetContact(ctx context.Context, id string) (*Contact, error)
	CreateContact(ctx context.Context, in ContactInput) (*Contact, error)
	UpdateContact(ctx context.Context, id string, patch ContactPatch) (*Contact, error)
	DeleteContact(ctx context.Context, id string) error
	UploadFile(ctx context.Context, contactID, filename string, r io.Reader) (*FileInfo, error)
	GetFile(ctx context.Context, contactID string) (*FileInfo, error)
	DeleteFile(ctx context.Context, contactID string) error
	FileURL(info *FileInfo) string
}
