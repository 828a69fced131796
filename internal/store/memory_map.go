package store

import (
	"sort"
	"sync"
)

// MemoryMap is an in-memory implementation of Map. It persists nothing and
// exists for tests and broker-less local runs.
type MemoryMap struct {
	cfg     Config
	entries map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryMap creates an empty in-memory map with the given bounds.
func NewMemoryMap(cfg Config) *MemoryMap {
	return &MemoryMap{
		cfg:     cfg.withDefaults(),
		entries: make(map[string][]byte),
	}
}

// Insert stores value under key and returns the previous value if any.
func (m *MemoryMap) Insert(key string, value []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, exists := m.entries[key]
	if err := m.cfg.check(key, value, len(m.entries), exists); err != nil {
		return nil, false, err
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.entries[key] = stored
	return prev, exists, nil
}

// Get returns the value stored under key, if any.
func (m *MemoryMap) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	return value, ok, nil
}

// Remove deletes key and returns the removed value, if any.
func (m *MemoryMap) Remove(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	delete(m.entries, key)
	return removed, true, nil
}

// Values returns all stored values in key order.
func (m *MemoryMap) Values() ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([][]byte, 0, len(keys))
	for _, k := range keys {
		values = append(values, m.entries[k])
	}
	return values, nil
}

// Len returns the number of entries.
func (m *MemoryMap) Len() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}
