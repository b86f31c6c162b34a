package controllers

import (
	"langtrack/internal/providers"
	"langtrack/internal/session"
	"langtrack/internal/signals"
	"net/http"

	json "github.com/goccy/go-json"
)

type SessionController struct {
	logger  providers.Logger
	session *session.Controller
	page    *signals.PageContext
}

func NewSessionController(logger providers.Logger, session *session.Controller, page *signals.PageContext) *SessionController {
	return &SessionController{
		logger:  logger,
		session: session,
		page:    page,
	}
}

type navigateRequest struct {
	URL string `json:"url"`
}

type replacedResponse struct {
	Rearmed bool `json:"rearmed"`
}

func (sc *SessionController) Navigate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url required"})
		return
	}
	writeJSON(w, http.StatusOK, sc.session.Navigate(r.Context(), req.URL))
}

// Playback merges the posted fields over the current player state.
func (sc *SessionController) Playback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	state := sc.session.Playback()
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid playback state"})
		return
	}
	sc.session.SetPlayback(state)
	writeJSON(w, http.StatusOK, sc.session.Context())
}

func (sc *SessionController) Replaced(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, replacedResponse{Rearmed: sc.session.VideoReplaced()})
}

// Signals stores a page-context payload scraped by the browser shim.
func (sc *SessionController) Signals(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload signals.PagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid page payload"})
		return
	}
	if err := sc.page.Update(payload); err != nil {
		sc.logger.Debugf(providers.TypeSignals, "Page payload for %q rejected: %s", payload.VideoID, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (sc *SessionController) Context(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.session.Context())
}
