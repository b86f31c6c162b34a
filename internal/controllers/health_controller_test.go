package controllers

import (
	"langtrack/internal/session"
	"langtrack/internal/signals"
	"langtrack/internal/storage"
	"langtrack/internal/structures"
	"langtrack/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthController(store storage.Store) *HealthController {
	conf := &structures.Config{Persistence: structures.Persistence{Backend: "memory"}}
	collector := signals.NewCollector(signals.NewPageContext(), time.Millisecond, &mockLogger{})
	ctrl := session.NewController(conf, session.NewManualScheduler(), collector, &sessionLedger{}, &mockLogger{}, &testutil.MockMetrics{})
	return NewHealthController(conf, store, ctrl)
}

func TestHealth_ReturnsOK(t *testing.T) {
	hc := newHealthController(storage.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	resp := decodeBody(t, rr)
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, "ok", resp["storage"])
	assert.Equal(t, "memory", resp["backend"])
	assert.Equal(t, "idle", resp["session"])
}

func TestHealth_DegradedWhenStoreFails(t *testing.T) {
	store := testutil.NewFlakyStore()
	store.FailGet = true
	hc := newHealthController(store)

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody(t, rr)
	assert.Equal(t, "degraded", resp["status"])
	assert.Equal(t, testutil.ErrStoreDown.Error(), resp["storage"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := newHealthController(storage.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0h0m0s"},
		{"one minute", 60 * time.Second, "0h1m0s"},
		{"one hour", time.Hour, "1h0m0s"},
		{"mixed", time.Hour + time.Minute + time.Second, "1h1m1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
