package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// AttachmentStore stores and deletes uploaded files by name. The invoice
// service only ever addresses files through this contract, so record storage
// and file storage stay independently replaceable.
type AttachmentStore interface {
	Save(ctx context.Context, fileName string, content io.Reader) error
	Delete(ctx context.Context, fileName string) error
}

// LocalStore keeps attachments as plain files under a single directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a local attachment store rooted at dir, creating the
// directory if it does not exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("attachment directory is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachment directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// resolve maps a stored file name to a path inside the store directory.
// Names containing path separators or traversal sequences are rejected so a
// crafted attachment value can never reach outside the directory.
func (s *LocalStore) resolve(fileName string) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("file name is empty")
	}
	if fileName != filepath.Base(fileName) || strings.HasPrefix(fileName, ".") {
		return "", fmt.Errorf("invalid file name: %s", fileName)
	}
	return filepath.Join(s.dir, fileName), nil
}

// Save writes the content to dir/fileName, replacing any existing file
func (s *LocalStore) Save(_ context.Context, fileName string, content io.Reader) error {
	path, err := s.resolve(fileName)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("failed to write attachment file: %w", err)
	}
	return nil
}

// Delete removes dir/fileName. Deleting a file that is already gone is not
// an error.
func (s *LocalStore) Delete(_ context.Context, fileName string) error {
	path, err := s.resolve(fileName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete attachment file: %w", err)
	}
	return nil
}
