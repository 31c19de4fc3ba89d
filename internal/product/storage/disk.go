package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore implements FileStore over a single directory on local disk.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a FileStore over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create static directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory the store is rooted at.
func (d *DiskStore) Dir() string {
	return d.dir
}

// Exists reports whether a file with the given name is present in the directory.
func (d *DiskStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(d.dir, filepath.Base(name)))
	return err == nil
}

// Save writes the content of r under the given name. The name is reduced to
// its base so a client-supplied value cannot escape the directory.
func (d *DiskStore) Save(name string, r io.Reader) (int64, error) {
	path := filepath.Join(d.dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	n, err := io.Copy(f, r)
	if err != nil {
		return n, fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return n, nil
}
