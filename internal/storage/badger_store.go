package storage

import (
	"context"
	"errors"
	"fmt"
	"langtrack/internal/providers"
	"slices"

	"github.com/dgraph-io/badger/v4"
)

const (
	keyPrefix       = "langtrack:"
	gcDiscardRatio  = 0.5
	maxGCIterations = 10
)

// BadgerStore persists each document under its own key in a Badger database.
type BadgerStore struct {
	db     *badger.DB
	logger providers.Logger
}

func NewBadgerStore(path string, logger providers.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	logger.Infof(providers.TypeStorage, "Badger store opened at %q", path)
	return &BadgerStore{db: db, logger: logger}, nil
}

func (s *BadgerStore) Get(ctx context.Context, keys []string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(keys))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, k := range keys {
			item, err := txn.Get([]byte(keyPrefix + k))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get %s: %w", k, err)
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read %s: %w", k, err)
			}
			out[k] = val
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) Set(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for k, v := range values {
			if err := txn.Set([]byte(keyPrefix+k), slices.Clone(v)); err != nil {
				return fmt.Errorf("set %s: %w", k, err)
			}
		}
		return nil
	})
}

// Maintain reclaims value log space until Badger reports nothing left to rewrite.
func (s *BadgerStore) Maintain(ctx context.Context) error {
	if s.db.Opts().InMemory {
		return nil
	}
	for range maxGCIterations {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("value log gc: %w", err)
		}
	}
	return nil
}

func (s *BadgerStore) Close() error {
	s.logger.Infof(providers.TypeStorage, "Closing badger store")
	return s.db.Close()
}
