// Package storage provides the key-value stores the ledger persists into.
//
// A Store holds opaque JSON documents under a handful of fixed keys. Set writes
// all given keys together; none of the backends expose transactions to callers,
// so the tracking service serializes its own read-modify-write cycles.
package storage

import (
	"context"
	"errors"
	"fmt"
	"langtrack/internal/providers"
	"langtrack/internal/storage/interfaces"
	"langtrack/internal/structures"
)

const (
	KeyTrackingData     = "trackingData"
	KeyVideoLog         = "videoLog"
	KeyChannelLanguages = "channelLanguages"
	KeySettings         = "settings"
)

var ErrClosed = errors.New("store closed")

type Store interface {
	// Get returns the stored documents for keys. Missing keys are absent from the result.
	Get(ctx context.Context, keys []string) (map[string][]byte, error)
	// Set writes every document in values as one unit.
	Set(ctx context.Context, values map[string][]byte) error
	Close() error
}

// Maintainer is implemented by stores that need periodic housekeeping.
type Maintainer interface {
	Maintain(ctx context.Context) error
}

// Snapshotter is implemented by stores that keep state in memory and flush it to disk.
type Snapshotter interface {
	Restore() error
	Persist() error
}

// NewStore opens the backend named by the persistence config.
func NewStore(conf *structures.Config, logger providers.Logger, compressor interfaces.CompressorInterface) (Store, error) {
	switch conf.Persistence.Backend {
	case "badger":
		return NewBadgerStore(conf.Persistence.Path, logger)
	case "file":
		return NewSnapshotStore(conf.Persistence.Path, compressor, logger), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", conf.Persistence.Backend)
	}
}
