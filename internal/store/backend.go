package store

import "sync"

// Backend persists the serialized cache under one well-known key
type Backend interface {
	// Load returns the persisted blob, or nil when nothing is stored
	Load() ([]byte, error)

	// Save replaces the persisted blob
	Save(data []byte) error

	// Remove deletes the persisted blob
	Remove() error

	Close() error
}

// MemoryBackend keeps the blob in process memory (no persistence)
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBackend returns an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemoryBackend) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}

func (m *MemoryBackend) Remove() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
