package storage

import (
	"context"
	"errors"
	"langtrack/internal/structures"
	"langtrack/internal/testutil"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(interval time.Duration) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			Backend:      "file",
			SaveInterval: interval,
		},
	}
}

type countingMaintainer struct {
	*MemoryStore
	calls atomic.Int32
	err   error
}

func (c *countingMaintainer) Maintain(_ context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestScheduler_RestoreAndPersistSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.dat")
	require.NoError(t, os.WriteFile(path, []byte(`{"settings":{"trackingEnabled":false}}`), 0644))

	store := NewSnapshotStore(path, &testutil.MockCompressor{}, &testutil.MockLogger{})
	metrics := &testutil.MockMetrics{}
	s := NewScheduler(testConfig(time.Minute), &testutil.MockLogger{}, metrics, store)

	require.NoError(t, s.Restore())
	got, err := store.Get(context.Background(), []string{KeySettings})
	require.NoError(t, err)
	assert.JSONEq(t, `{"trackingEnabled":false}`, string(got[KeySettings]))

	require.NoError(t, store.Set(context.Background(), map[string][]byte{KeyVideoLog: []byte(`{}`)}))
	require.NoError(t, s.Persist())
	assert.Equal(t, 1, metrics.PersistenceCalls())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"settings":{"trackingEnabled":false},"videoLog":{}}`, string(data))
}

func TestScheduler_NonSnapshotStoreIsNoop(t *testing.T) {
	s := NewScheduler(testConfig(time.Minute), &testutil.MockLogger{}, &testutil.MockMetrics{}, NewMemoryStore())
	assert.NoError(t, s.Restore())
	assert.NoError(t, s.Persist())
}

func TestScheduler_PersistError(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "nope", "ledger.dat"), &testutil.MockCompressor{}, &testutil.MockLogger{})
	logger := &testutil.MockLogger{}
	s := NewScheduler(testConfig(time.Minute), logger, &testutil.MockMetrics{}, store)

	assert.Error(t, s.Persist())
	assert.True(t, logger.Has("error"))
}

func TestScheduler_RunsMaintenance(t *testing.T) {
	store := &countingMaintainer{MemoryStore: NewMemoryStore()}
	s := NewScheduler(testConfig(time.Second), &testutil.MockLogger{}, &testutil.MockMetrics{}, store)

	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool { return store.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_MaintainReturnsStoreError(t *testing.T) {
	store := &countingMaintainer{MemoryStore: NewMemoryStore(), err: errors.New("gc failed")}
	sched := NewScheduler(testConfig(time.Minute), &testutil.MockLogger{}, &testutil.MockMetrics{}, store).(*Scheduler)

	assert.Error(t, sched.maintain())
	assert.Equal(t, int32(1), store.calls.Load())
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s := NewScheduler(testConfig(time.Minute), &testutil.MockLogger{}, &testutil.MockMetrics{}, NewMemoryStore())
	assert.NotPanics(t, s.Stop)
}
