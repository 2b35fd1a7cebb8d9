package store

import "errors"

var (
	ErrClosed   = errors.New("store: database is closed")
	ErrNotFound = errors.New("store: key not found")
)

// KVStore is the minimal key-value surface the daemon persists through.
type KVStore interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	NewIterator(start, end []byte) (Iterator, error)
	Close() error
}

// Iterator walks key-value pairs in ascending key order within
// [start, end). Iterators must be closed after use.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Valid() bool
	Close() error
}
