package controllers

import (
	"context"
	"fmt"
	"langtrack/internal/session"
	"langtrack/internal/storage"
	"langtrack/internal/structures"
	"net/http"
	"time"
)

const healthProbeTimeout = time.Second

type HealthController struct {
	store     storage.Store
	session   *session.Controller
	backend   string
	startTime time.Time
}

type healthResponse struct {
	Status        string        `json:"status"`
	Uptime        string        `json:"uptime"`
	UptimeSeconds float64       `json:"uptime_seconds"`
	Storage       string        `json:"storage"`
	Backend       string        `json:"backend"`
	Session       session.State `json:"session"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Storage:       "ok",
		Backend:       hc.backend,
		Session:       hc.session.Context().State,
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()
	if _, err := hc.store.Get(ctx, []string{storage.KeySettings}); err != nil {
		resp.Status = "degraded"
		resp.Storage = err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config, store storage.Store, session *session.Controller) *HealthController {
	return &HealthController{
		store:     store,
		session:   session,
		backend:   conf.Persistence.Backend,
		startTime: time.Now(),
	}
}
