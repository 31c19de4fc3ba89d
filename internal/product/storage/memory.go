package storage

import (
	"io"
	"sync"
)

// MemStore implements FileStore in memory. Used in tests.
type MemStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemStore creates an empty in-memory FileStore.
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string][]byte)}
}

// Exists reports whether a file with the given name has been saved.
func (m *MemStore) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[name]
	return ok
}

// Save stores the content of r under the given name.
func (m *MemStore) Save(name string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return int64(len(data)), nil
}

// Content returns the saved bytes for name, for assertions in tests.
func (m *MemStore) Content(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[name]
	return data, ok
}
