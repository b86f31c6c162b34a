package storage

import (
	"context"
	"errors"
	"fmt"
	"langtrack/internal/providers"
	"langtrack/internal/storage/interfaces"
	"os"
	"sync/atomic"

	json "github.com/goccy/go-json"
)

// ErrSnapshotUnreadable is returned by Persist after Restore failed to read the
// existing file. The file is left untouched so history is not replaced by an
// empty store.
var ErrSnapshotUnreadable = errors.New("snapshot unreadable, refusing to overwrite")

// SnapshotStore serves documents from memory and flushes them to one
// zstd-compressed JSON file on Persist.
type SnapshotStore struct {
	*MemoryStore
	fileName   string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	unreadable atomic.Bool
}

func NewSnapshotStore(fileName string, compressor interfaces.CompressorInterface, logger providers.Logger) *SnapshotStore {
	return &SnapshotStore{
		MemoryStore: NewMemoryStore(),
		fileName:    fileName,
		compressor:  compressor,
		logger:      logger,
	}
}

// Persist writes the snapshot to a temp file and renames it over the previous one.
func (f *SnapshotStore) Persist() error {
	if f.unreadable.Load() {
		return fmt.Errorf("%w: %s", ErrSnapshotUnreadable, f.fileName)
	}
	docs := make(map[string]json.RawMessage)
	for k, v := range f.snapshot() {
		docs[k] = v
	}

	jsonData, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.fileName)
}

// Restore loads the snapshot file. A missing file leaves the store empty.
// A file that is not zstd is read as a plain JSON export of the same keys.
func (f *SnapshotStore) Restore() error {
	data, err := os.ReadFile(f.fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		f.unreadable.Store(true)
		return err
	}

	raw, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeStorage, "Snapshot %s is not compressed, trying plain JSON export", f.fileName)
		raw = data
	}

	var docs map[string]json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		f.unreadable.Store(true)
		return fmt.Errorf("decode snapshot %s: %w", f.fileName, err)
	}
	f.unreadable.Store(false)

	restored := make(map[string][]byte, len(docs))
	for k, v := range docs {
		restored[k] = v
	}
	f.replace(restored)
	f.logger.Infof(providers.TypeStorage, "Restored %d documents from %s", len(restored), f.fileName)
	return nil
}

// Maintain flushes the snapshot.
func (f *SnapshotStore) Maintain(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.Persist()
}

func (f *SnapshotStore) Close() error {
	err := f.Persist()
	f.compressor.Close()
	if cerr := f.MemoryStore.Close(); err == nil {
		err = cerr
	}
	return err
}
