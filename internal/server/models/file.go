package models

import "time"

// File is the single image attached to a contact. StoragePath is the
// slash-separated location relative to the blob store root
// ("YYYY-MM-DD/<unique>_<filename>").
type File struct {
	ID          string
	Filename    string
	StoragePath string
	ContactID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
