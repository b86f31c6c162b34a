package internal

import (
	"langtrack/internal/controllers"
	"langtrack/internal/providers"
	"langtrack/internal/session"
	"langtrack/internal/storage"
	"langtrack/internal/structures"
	"langtrack/internal/testutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_RefusesUnreadableSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.dat")
	history := []byte(`{"trackingData":{"2024-03-01":{"es":36000}`)
	require.NoError(t, os.WriteFile(path, history, 0644))

	conf := &structures.Config{
		WebServer:   structures.Server{Host: "127.0.0.1", Port: 0},
		Persistence: structures.Persistence{Backend: "file", Path: path, SaveInterval: time.Hour},
	}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	store := storage.NewSnapshotStore(path, &testutil.MockCompressor{}, logger)
	scheduler := storage.NewScheduler(conf, logger, metrics, store)
	ctrl := session.NewController(conf, session.NewManualScheduler(), nil, nil, logger, metrics)

	app, err := NewApp(
		controllers.NewHealthController(conf, store, ctrl),
		scheduler,
		store,
		ctrl,
		conf,
		logger,
		providers.NewRouterProvider(),
		metrics,
	)

	assert.Nil(t, app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restoring ledger snapshot")
	assert.True(t, logger.Has("error"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, history, got)
}
