package store

import (
	"bytes"
	"sort"
	"sync"
)

// MemStore is an in-memory KVStore for tests and one-shot tooling.
type MemStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

var _ KVStore = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	value, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (m *MemStore) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[string(key)] = stored
	return nil
}

func (m *MemStore) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *MemStore) NewIterator(start, end []byte) (Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	it := &memIterator{pos: -1}
	for _, k := range keys {
		value := make([]byte, len(m.data[k]))
		copy(value, m.data[k])
		it.keys = append(it.keys, []byte(k))
		it.values = append(it.values, value)
	}
	return it, nil
}

func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

type memIterator struct {
	keys   [][]byte
	values [][]byte
	pos    int
}

func (it *memIterator) Next() bool {
	if it.pos+1 >= len(it.keys) {
		it.pos = len(it.keys)
		return false
	}
	it.pos++
	return true
}

func (it *memIterator) Valid() bool {
	return it.pos >= 0 && it.pos < len(it.keys)
}

func (it *memIterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return it.keys[it.pos]
}

func (it *memIterator) Value() ([]byte, error) {
	if !it.Valid() {
		return nil, ErrNotFound
	}
	return it.values[it.pos], nil
}

func (it *memIterator) Close() error {
	return nil
}
