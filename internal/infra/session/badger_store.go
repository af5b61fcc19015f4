package session

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// BadgerStore persists the session in an embedded BadgerDB directory so it
// survives gateway restarts.
type BadgerStore struct {
	db     *badger.DB
	prefix []byte
}

// OpenBadgerStore opens (or creates) the database under dir. An empty dir
// opens an in-memory database.
func OpenBadgerStore(dir, prefix string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return NewBadgerStore(db, prefix), nil
}

// NewBadgerStore wraps an already opened database.
func NewBadgerStore(db *badger.DB, prefix string) *BadgerStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &BadgerStore{db: db, prefix: []byte(prefix + ":")}
}

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set implements Store.
func (s *BadgerStore) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(key), value)
	})
}

// Remove implements Store.
func (s *BadgerStore) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(key))
	})
}

// Close releases the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) key(k string) []byte {
	out := make([]byte, 0, len(s.prefix)+len(k))
	out = append(out, s.prefix...)
	return append(out, k...)
}

var _ Store = (*BadgerStore)(nil)
