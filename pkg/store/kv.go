// Package store persists the session list through an opaque
// string-keyed store. The KV interface mirrors the key-value surface
// the app was designed against: get, set, remove, nothing else.
package store

import "sync"

// KV is a string-keyed store. GetString reports absence through its
// second return rather than an error; only transport failures surface
// as errors.
type KV interface {
	GetString(key string) (value string, ok bool, err error)
	SetString(key, value string) error
	RemoveKey(key string) error
}

// MemoryKV is an in-process KV, used as the test double and the
// "memory" history backend.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) GetString(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryKV) SetString(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryKV) RemoveKey(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

var _ KV = (*MemoryKV)(nil)
