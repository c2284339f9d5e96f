package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// fsBlobStorage keeps uploaded bytes as plain files under a root directory.
type fsBlobStorage struct {
	root string
}

// NewFSBlobStorage creates root if needed and returns a [BlobStorage] on it.
func NewFSBlobStorage(root string) (BlobStorage, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("error creating binary data directory: %w", err)
	}

	return &fsBlobStorage{root: root}, nil
}

func (s *fsBlobStorage) Put(ctx context.Context, key string, content []byte, _ string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, content, 0o640); err != nil {
		return fmt.Errorf("error writing blob: %w", err)
	}

	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error writing blob: %w", err)
	}

	return nil
}

func (s *fsBlobStorage) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading blob: %w", err)
	}

	return content, nil
}

// Delete is idempotent: removing a missing blob is not an error.
func (s *fsBlobStorage) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing blob: %w", err)
	}

	return nil
}

// path confines key to the root directory.
func (s *fsBlobStorage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}

	return filepath.Join(s.root, key), nil
}
