// Package models holds the server-side persistent records.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt digest; the raw
// password is never stored.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
