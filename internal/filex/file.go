// Package filex holds filesystem helpers for the local upload store.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a relative path would resolve outside its root.
var ErrOutsideRoot = errors.New("path escapes root")

// EnsureDir creates root/sub (and any parents) with 0o770 and returns the
// absolute path. A relative root is resolved against the working directory.
func EnsureDir(root string, sub ...string) (string, error) {
	base, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", root, err)
	}

	dir, err := Join(base, filepath.Join(sub...))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Join resolves the slash-separated relative path rel under root and rejects
// absolute paths and results that leave root.
func Join(root, rel string) (string, error) {
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", ErrOutsideRoot
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	back, err := filepath.Rel(root, full)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}

	return full, nil
}
