package store

import (
	"sync"

	"github.com/cockroachdb/pebble"
)

// PebbleStore is the on-disk KVStore used by the daemon.
type PebbleStore struct {
	db     *pebble.DB
	mu     sync.RWMutex
	closed bool
}

var _ KVStore = (*PebbleStore)(nil)

func OpenPebble(path string) (*PebbleStore, error) {
	opts := &pebble.Options{
		Cache:        pebble.NewCache(16 * 1024 * 1024),
		MemTableSize: 8 * 1024 * 1024,
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}
	return &PebbleStore{db: db}, nil
}

func (p *PebbleStore) Get(key []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrClosed
	}
	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (p *PebbleStore) Put(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.db.Set(key, value, pebble.Sync)
}

func (p *PebbleStore) Delete(key []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *PebbleStore) NewIterator(start, end []byte) (Iterator, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrClosed
	}
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, err
	}
	return &pebbleIterator{iter: iter}, nil
}

func (p *PebbleStore) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.db.Close()
}

type pebbleIterator struct {
	iter *pebble.Iterator
}

func (it *pebbleIterator) Next() bool {
	// an un-positioned iterator moves to the first key
	if !it.iter.Valid() {
		return it.iter.First()
	}
	return it.iter.Next()
}

func (it *pebbleIterator) Key() []byte {
	key := it.iter.Key()
	result := make([]byte, len(key))
	copy(result, key)
	return result
}

func (it *pebbleIterator) Value() ([]byte, error) {
	if !it.iter.Valid() {
		return nil, ErrNotFound
	}
	val, err := it.iter.ValueAndErr()
	if err != nil {
		return nil, err
	}
	result := make([]byte, len(val))
	copy(result, val)
	return result, nil
}

func (it *pebbleIterator) Valid() bool {
	return it.iter.Valid()
}

func (it *pebbleIterator) Close() error {
	return it.iter.Close()
}
