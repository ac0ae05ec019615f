package storage

import "sync"

// Medium is the physical key/value medium underneath a Store.
//
// A medium stores raw string records by string key and knows nothing about
// TTLs or encoding; expiry lives entirely in the Store layer. Implementations
// must be safe for concurrent use.
type Medium interface {
	// GetItem returns the raw record for key, and whether it was present.
	GetItem(key string) (string, bool, error)

	// SetItem stores the raw record for key, overwriting any existing record.
	SetItem(key, value string) error

	// RemoveItem deletes the record for key. Removing an absent key is not
	// an error.
	RemoveItem(key string) error

	// Clear deletes every record in the medium.
	Clear() error
}

// MemoryMedium is a process-scoped Medium backed by a map. Records do not
// survive a restart — the session-storage analog.
type MemoryMedium struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryMedium creates an empty in-memory medium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{
		items: make(map[string]string),
	}
}

// GetItem returns the raw record for key.
func (m *MemoryMedium) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem stores the raw record for key.
func (m *MemoryMedium) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// RemoveItem deletes the record for key.
func (m *MemoryMedium) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Clear deletes every record.
func (m *MemoryMedium) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]string)
	return nil
}
