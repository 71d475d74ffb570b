// Package storage stores product images uploaded through the admin panel.
// ImageStore is the narrow contract the handlers depend on; DiskStore writes
// beneath a local directory and can be swapped for an object-storage backend
// without touching callers.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists uploaded images and returns a URL they can be served
// from.
type ImageStore interface {
	Save(filename string, content io.Reader) (url string, err error)
	Delete(url string) error
}

// DiskStore is a local-filesystem ImageStore.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates an ImageStore rooted at dir. Stored files are
// addressed as baseURL/<name>.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Save writes the content under a fresh name derived from the original
// filename's extension.
func (s *DiskStore) Save(filename string, content io.Reader) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Delete removes a stored image by its URL. Unknown URLs are ignored.
func (s *DiskStore) Delete(url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(url, s.baseURL+"/"))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image %s: %w", name, err)
	}
	return nil
}
