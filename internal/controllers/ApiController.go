package controllers

import (
	"context"
	"errors"
	"io"
	"langtrack/internal/commands"
	"langtrack/internal/models"
	"langtrack/internal/providers"
	"langtrack/internal/services"
	"net/http"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.TrackingServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.TrackingServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

type errorResponse struct {
	Accepted bool   `json:"accepted"`
	Error    string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// serveFromCacheOrCompute answers from the cache when it can. Views built from a
// failed store read are served but never cached.
func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func(ctx context.Context) (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	ctx, report := services.WithReadReport(r.Context())
	result, err := compute(ctx)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !report.Degraded() {
		ac.cache.Set(cacheKey, gson)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Command decodes one message envelope and runs it against the ledger.
func (ac *ApiController) Command(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body too large or unreadable"})
		return
	}

	cmd, err := commands.Decode(body)
	if err != nil {
		ac.logger.Debugf(providers.TypePost, "Rejected command: %s", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp, err := commands.Dispatch(r.Context(), ac.service, cmd)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, models.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		ac.logger.Errorf(providers.TypePost, "Command %T failed: %s", cmd, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (ac *ApiController) GetTallies(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "tallies", func(ctx context.Context) (any, error) {
		return commands.TrackingDataResponse{TrackingData: ac.service.GetDayTallies(ctx)}, nil
	})
}

func (ac *ApiController) GetVideoLog(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "videolog", func(ctx context.Context) (any, error) {
		return commands.VideoLogResponse{VideoLog: ac.service.GetVideoLog(ctx)}, nil
	})
}

func (ac *ApiController) GetSettings(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "settings", func(ctx context.Context) (any, error) {
		return commands.SettingsResponse{Settings: ac.service.GetSettings(ctx)}, nil
	})
}

func (ac *ApiController) GetChannels(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "channels", func(ctx context.Context) (any, error) {
		return commands.ChannelLanguagesResponse{ChannelLanguages: ac.service.GetChannelLanguageMap(ctx)}, nil
	})
}
