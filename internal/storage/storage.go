package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Store defines the interface for a file storage backend.
type Store interface {
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// AferoStore implements Store on an afero filesystem. With
// afero.NewOsFs it is the production disk store; with
// afero.NewMemMapFs it backs tests.
type AferoStore struct {
	fs   afero.Fs
	root string
}

// NewAferoStore creates a store rooted at root on the given filesystem.
func NewAferoStore(fs afero.Fs, root string) *AferoStore {
	return &AferoStore{fs: fs, root: root}
}

// NewDiskStore creates a store on the local disk rooted at root.
func NewDiskStore(root string) *AferoStore {
	return NewAferoStore(afero.NewOsFs(), root)
}

// fullPath confines a key to the store root. Keys whose cleaned join
// escapes the root are rejected so untrusted filenames cannot traverse
// out of the storage tree.
func (s *AferoStore) fullPath(path string) (string, error) {
	root := filepath.Clean(s.root)
	full := filepath.Join(root, path)
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the storage root", path)
	}
	return full, nil
}

// Save writes the content of the reader to the given path, creating parent
// directories as needed.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	full, err := s.fullPath(path)
	if err != nil {
		return 0, err
	}
	if err := s.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(full)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, reader)
}

// Get opens a stored file for reading.
func (s *AferoStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.fullPath(path)
	if err != nil {
		return nil, err
	}
	return s.fs.OpenFile(full, os.O_RDONLY, 0)
}

// Delete removes a stored file.
func (s *AferoStore) Delete(ctx context.Context, path string) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	return s.fs.Remove(full)
}
