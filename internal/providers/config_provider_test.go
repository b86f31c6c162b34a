package providers

import (
	"langtrack/internal/structures"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
persistence:
  backend: memory
logger:
  dir: /tmp
`)
	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "LanguageWatchTracker", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, 8787, conf.WebServer.Port)
	assert.Equal(t, 5*time.Second, conf.Tracking.TickInterval)
	assert.Equal(t, 5, conf.Tracking.MaxDetectAttempts)
	assert.Equal(t, 1500*time.Millisecond, conf.Tracking.DetectRetryDelay)
	assert.Equal(t, 300*time.Millisecond, conf.Tracking.SignalTimeout)
}

func TestNewConfigProvider_ReadsFile(t *testing.T) {
	path := writeConfig(t, `
webServer:
  host: 0.0.0.0
  port: 9000
persistence:
  backend: file
  path: /tmp/langtrack.dat
  saveInterval: 1m
logger:
  level: debug
  dir: /tmp
tracking:
  tickInterval: 10s
cache:
  enabled: true
  size: 4
`)
	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", conf.WebServer.Host)
	assert.Equal(t, 9000, conf.WebServer.Port)
	assert.Equal(t, "file", conf.Persistence.Backend)
	assert.Equal(t, time.Minute, conf.Persistence.SaveInterval)
	assert.Equal(t, 10*time.Second, conf.Tracking.TickInterval)
	assert.True(t, conf.Cache.Enabled)
	assert.Equal(t, 4, conf.Cache.Size)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
persistence:
  backend: memory
logger:
  dir: /tmp
`)
	t.Setenv("LANGTRACK_PORT", "9100")
	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, 9100, conf.WebServer.Port)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
persistence:
  backend: file
logger:
  dir: /tmp
`)
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
