package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// BadgerCache stores values in an embedded badger database
type BadgerCache struct {
	db *badger.DB
}

// NewBadgerCache opens a badger database in dir, or in memory if dir is empty
func NewBadgerCache(dir string) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "badger cache: could not open database")
	}
	return &BadgerCache{db: db}, nil
}

// Get implements the Cache interface
func (b *BadgerCache) Get(_ context.Context, key string, target any) (bool, error) {
	var found bool
	err := b.db.View(
		func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(key))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return nil
				}
				return err
			}
			found = true
			return item.Value(
				func(val []byte) error {
					return unmarshal(val, target)
				},
			)
		},
	)
	if err != nil {
		return false, errors.Wrap(err, "badger cache: get failed")
	}
	return found, nil
}

// Set implements the Cache interface
func (b *BadgerCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := marshal(value)
	if err != nil {
		return err
	}
	err = b.db.Update(
		func(txn *badger.Txn) error {
			e := badger.NewEntry([]byte(key), data)
			if ttl > 0 {
				e = e.WithTTL(ttl)
			}
			return txn.SetEntry(e)
		},
	)
	return errors.Wrap(err, "badger cache: set failed")
}

// Delete implements the Cache interface
func (b *BadgerCache) Delete(_ context.Context, key string) error {
	err := b.db.Update(
		func(txn *badger.Txn) error {
			return txn.Delete([]byte(key))
		},
	)
	return errors.Wrap(err, "badger cache: delete failed")
}

// Close implements the Cache interface
func (b *BadgerCache) Close() error {
	return b.db.Close()
}
