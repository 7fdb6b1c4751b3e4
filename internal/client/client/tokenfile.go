package client

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

// LoadToken reads a saved session token. A missing file yields
// common.ErrNotFound.
func LoadToken(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", common.ErrNotFound
		}
		return "", err
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", common.ErrNotFound
	}
	return token, nil
}

// SaveToken writes token readable by the current user only.
func SaveToken(path, token string) error {
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

// ClearToken removes the saved token; a missing file is not an error.
func ClearToken(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
