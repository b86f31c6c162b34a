package testutil

import (
	"context"
	"errors"
	"langtrack/internal/providers"
	"maps"
	"slices"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Has reports whether anything was logged at level.
func (m *MockLogger) Has(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu      sync.Mutex
	Data    map[string][]byte
	Cleared int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.Cleared++
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	return slices.Clone(val), nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	return slices.Clone(val), nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts ledger calls.
type MockMetrics struct {
	mu          sync.Mutex
	persistence int
	Operations  map[string]int
	Seconds     map[string]int64
	Detections  map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistence++
}

func (m *MockMetrics) IncLedgerOperations(operation, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Operations == nil {
		m.Operations = make(map[string]int)
	}
	m.Operations[operation+":"+outcome]++
}

func (m *MockMetrics) AddTrackedSeconds(language string, seconds int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Seconds == nil {
		m.Seconds = make(map[string]int64)
	}
	m.Seconds[language] += seconds
}

func (m *MockMetrics) IncDetections(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Detections == nil {
		m.Detections = make(map[string]int)
	}
	m.Detections[source]++
}

func (m *MockMetrics) PersistenceCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistence
}

func (m *MockMetrics) OperationCount(operation, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Operations[operation+":"+outcome]
}

var ErrStoreDown = errors.New("store unavailable")

// FlakyStore is an in-memory storage.Store whose reads and writes can be failed on demand.
type FlakyStore struct {
	mu       sync.Mutex
	Data     map[string][]byte
	FailGet  bool
	FailSet  bool
	SetCalls int
}

func NewFlakyStore() *FlakyStore {
	return &FlakyStore{Data: make(map[string][]byte)}
}

func (f *FlakyStore) Get(ctx context.Context, keys []string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailGet {
		return nil, ErrStoreDown
	}
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := f.Data[k]; ok {
			out[k] = slices.Clone(v)
		}
	}
	return out, nil
}

func (f *FlakyStore) Set(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCalls++
	if f.FailSet {
		return ErrStoreDown
	}
	for k, v := range values {
		f.Data[k] = slices.Clone(v)
	}
	return nil
}

func (f *FlakyStore) Close() error { return nil }

// Snapshot returns a copy of the stored documents.
func (f *FlakyStore) Snapshot() map[string][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.Data)
}
