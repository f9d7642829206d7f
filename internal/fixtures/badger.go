package fixtures

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBackend implements Backend on top of Badger, giving the simulator a
// fixture set that survives across invocations at a given --fixtures-db path.
type BadgerBackend struct {
	db *badger.DB
}

// NewBadger opens (creating if absent) a Badger database at path.
func NewBadger(path string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "Cannot acquire directory lock") ||
			strings.Contains(errMsg, "resource temporarily unavailable") {
			return nil, fmt.Errorf("fixtures db at %s is locked by another process (is another typelock-sim instance running?): %w", path, err)
		}
		return nil, fmt.Errorf("open fixtures db at %s: %w", path, err)
	}
	return &BadgerBackend{db: db}, nil
}

// Save implements Backend.
func (b *BadgerBackend) Save(key, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("badger save: %w", err)
	}
	return nil
}

// Load implements Backend.
func (b *BadgerBackend) Load(key []byte) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("fixture key not found")
	}
	if err != nil {
		return nil, fmt.Errorf("badger load: %w", err)
	}
	return val, nil
}

// Erase implements Backend.
func (b *BadgerBackend) Erase(key []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("badger erase: %w", err)
	}
	return nil
}

// List implements Backend, walking every key under prefix in Badger's own
// key order.
func (b *BadgerBackend) List(prefix []byte, fn func(key, value []byte) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			err := item.Value(func(val []byte) error {
				return fn(key, val)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Close implements Backend.
func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
