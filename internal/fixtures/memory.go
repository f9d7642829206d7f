package fixtures

import (
	"errors"
	"sort"
	"strings"
)

// MemoryBackend implements Backend over a plain map, for tests and for the
// simulator CLI when no --fixtures-db path is given.
type MemoryBackend struct {
	data map[string][]byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Save implements Backend.
func (m *MemoryBackend) Save(key, value []byte) error {
	m.data[string(key)] = value
	return nil
}

// Load implements Backend.
func (m *MemoryBackend) Load(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, errors.New("fixture key not found")
	}
	return v, nil
}

// Erase implements Backend.
func (m *MemoryBackend) Erase(key []byte) error {
	delete(m.data, string(key))
	return nil
}

// List implements Backend. Keys are visited in sorted order so fixture
// names come back deterministically across runs, unlike raw map iteration.
func (m *MemoryBackend) List(prefix []byte, fn func(key, value []byte) error) error {
	p := string(prefix)
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, p) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn([]byte(k), m.data[k]); err != nil {
			return err
		}
	}
	return nil
}

// Close implements Backend.
func (m *MemoryBackend) Close() error {
	return nil
}
