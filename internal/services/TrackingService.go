package services

import (
	"context"
	"fmt"
	"langtrack/internal/language"
	"langtrack/internal/ledger"
	"langtrack/internal/models"
	"langtrack/internal/providers"
	"langtrack/internal/storage"
	"math"
	"strings"
	"sync"
)

type TrackingServiceInterface interface {
	RecordWatchSeconds(ctx context.Context, tick models.WatchTick) (models.Outcome, error)
	RecordManualMinutes(ctx context.Context, lang string, minutes float64, date string) (models.Outcome, error)
	RemoveVideoLogEntry(ctx context.Context, date string, id models.EntryIdentity) (models.Outcome, error)
	SetChannelLanguage(ctx context.Context, channelID, lang string) (models.Outcome, error)
	SaveSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, models.Outcome, error)
	GetDayTallies(ctx context.Context) models.Tallies
	GetVideoLog(ctx context.Context) models.VideoLog
	GetSettings(ctx context.Context) models.Settings
	GetChannelLanguageMap(ctx context.Context) models.ChannelLanguageMap
}

// TrackingService is the only writer of the ledger documents. Every mutation
// holds mu from the read to the write, so no two read-modify-write cycles interleave.
type TrackingService struct {
	mu      sync.Mutex
	store   storage.Store
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	cache   providers.CacheProviderInterface
	newUID  ledger.UIDFunc
}

func NewTrackingService(store storage.Store, logger providers.Logger, metrics providers.MetricsProviderInterface, cache providers.CacheProviderInterface) TrackingServiceInterface {
	return &TrackingService{
		store:   store,
		logger:  logger,
		metrics: metrics,
		cache:   cache,
		newUID:  ledger.NewUID,
	}
}

func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

func (ts *TrackingService) RecordWatchSeconds(ctx context.Context, tick models.WatchTick) (models.Outcome, error) {
	lang := normalizeLang(tick.Language)
	if lang == "" || tick.Seconds <= 0 {
		return models.Outcome{}, fmt.Errorf("%w: language and positive seconds required", models.ErrInvalidInput)
	}
	date, err := models.ResolveDate(tick.Date)
	if err != nil {
		return models.Outcome{}, err
	}
	var video *models.VideoIdentity
	var channelID string
	if tick.Video != nil {
		channelID = tick.Video.ChannelID
		if tick.Video.VideoID != "" {
			video = tick.Video
		}
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return models.Outcome{}, err
	}

	keys := []string{storage.KeyTrackingData, storage.KeyChannelLanguages, storage.KeySettings}
	if video != nil {
		keys = append(keys, storage.KeyVideoLog)
	}
	docs, err := ts.load(ctx, "recordTick", keys...)
	if err != nil {
		return ts.finish("recordTick", models.StorageUnavailable()), nil
	}

	if lang == models.UnknownLanguage && channelID != "" {
		if mapped, ok := docs.channels[channelID]; ok && mapped != "" {
			lang = mapped
		}
	}
	if !docs.settings.TrackingEnabled {
		return ts.finish("recordTick", models.Skipped(models.SkipTrackingDisabled)), nil
	}
	if !docs.settings.Tracks(lang) {
		return ts.finish("recordTick", models.Skipped(models.SkipLanguageNotTargeted)), nil
	}

	book := ledger.NewBook(docs.tallies, docs.log)
	book.NewUID = ts.newUID
	book.ApplyTick(date, lang, tick.Seconds, video)

	writeKeys := []string{storage.KeyTrackingData}
	if video != nil {
		writeKeys = append(writeKeys, storage.KeyVideoLog)
	}
	if !ts.save(ctx, "recordTick", docs, writeKeys...) {
		return ts.finish("recordTick", models.StorageUnavailable()), nil
	}

	ts.metrics.AddTrackedSeconds(lang, tick.Seconds)
	ts.logger.Debugf(providers.TypeLedger, "Recorded %ds of %s on %s", tick.Seconds, lang, date)
	return ts.finish("recordTick", models.Accepted()), nil
}

func (ts *TrackingService) RecordManualMinutes(ctx context.Context, lang string, minutes float64, date string) (models.Outcome, error) {
	if normalizeLang(lang) == "" || !(minutes > 0) || math.IsInf(minutes, 0) {
		return models.Outcome{}, fmt.Errorf("%w: language and positive minutes required", models.ErrInvalidInput)
	}
	return ts.RecordWatchSeconds(ctx, models.WatchTick{
		Language: lang,
		Seconds:  int64(math.Round(minutes * 60)),
		Date:     date,
	})
}

func (ts *TrackingService) RemoveVideoLogEntry(ctx context.Context, date string, id models.EntryIdentity) (models.Outcome, error) {
	if date == "" || id.IsEmpty() {
		return models.Outcome{}, fmt.Errorf("%w: date and entry identity required", models.ErrInvalidInput)
	}
	if _, err := models.ResolveDate(date); err != nil {
		return models.Outcome{}, err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return models.Outcome{}, err
	}

	docs, err := ts.load(ctx, "removeEntry", storage.KeyVideoLog, storage.KeyTrackingData)
	if err != nil {
		return ts.finish("removeEntry", models.StorageUnavailable()), nil
	}

	book := ledger.NewBook(docs.tallies, docs.log)
	removed := book.RemoveEntry(date, id)
	if removed == nil {
		return ts.finish("removeEntry", models.Accepted()), nil
	}

	if !ts.save(ctx, "removeEntry", docs, storage.KeyVideoLog, storage.KeyTrackingData) {
		return ts.finish("removeEntry", models.StorageUnavailable()), nil
	}
	ts.logger.Infof(providers.TypeLedger, "Removed entry %s (%ds) from %s", removed.ID, removed.Seconds, date)
	return ts.finish("removeEntry", models.Accepted()), nil
}

// SetChannelLanguage maps channelID to a supported language and moves the
// unknown seconds already logged for the channel into it. Unknown is not a
// valid target.
func (ts *TrackingService) SetChannelLanguage(ctx context.Context, channelID, lang string) (models.Outcome, error) {
	if channelID == "" || normalizeLang(lang) == "" {
		return models.Outcome{}, fmt.Errorf("%w: channel and language required", models.ErrInvalidInput)
	}
	code, ok := language.Normalize(lang)
	if !ok {
		return models.Outcome{}, fmt.Errorf("%w: unsupported channel language %q", models.ErrInvalidInput, lang)
	}
	lang = code

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return models.Outcome{}, err
	}

	docs, err := ts.load(ctx, "remapChannel", storage.KeyChannelLanguages, storage.KeyVideoLog, storage.KeyTrackingData)
	if err != nil {
		return ts.finish("remapChannel", models.StorageUnavailable()), nil
	}

	docs.channels[channelID] = lang
	moved := ledger.NewBook(docs.tallies, docs.log).RemapChannel(channelID, lang)

	if !ts.save(ctx, "remapChannel", docs, storage.KeyChannelLanguages, storage.KeyVideoLog, storage.KeyTrackingData) {
		return ts.finish("remapChannel", models.StorageUnavailable()), nil
	}
	ts.logger.Infof(providers.TypeLedger, "Channel %s mapped to %s, moved %ds from unknown", channelID, lang, moved)
	return ts.finish("remapChannel", models.Accepted()), nil
}

func (ts *TrackingService) SaveSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, models.Outcome, error) {
	if patch.DailyGoalMinutes != nil && *patch.DailyGoalMinutes <= 0 {
		return models.Settings{}, models.Outcome{}, fmt.Errorf("%w: dailyGoalMinutes must be positive", models.ErrInvalidInput)
	}
	if patch.TargetLanguages != nil {
		targets := make([]string, 0, len(*patch.TargetLanguages))
		seen := make(map[string]struct{})
		for _, l := range *patch.TargetLanguages {
			l = normalizeLang(l)
			if _, dup := seen[l]; l == "" || dup {
				continue
			}
			seen[l] = struct{}{}
			targets = append(targets, l)
		}
		patch.TargetLanguages = &targets
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return models.Settings{}, models.Outcome{}, err
	}

	docs, err := ts.load(ctx, "saveSettings", storage.KeySettings)
	if err != nil {
		return models.DefaultSettings().Apply(patch), ts.finish("saveSettings", models.StorageUnavailable()), nil
	}

	docs.settings = docs.settings.Apply(patch)
	if !ts.save(ctx, "saveSettings", docs, storage.KeySettings) {
		return docs.settings, ts.finish("saveSettings", models.StorageUnavailable()), nil
	}
	return docs.settings, ts.finish("saveSettings", models.Accepted()), nil
}

func (ts *TrackingService) GetDayTallies(ctx context.Context) models.Tallies {
	return ts.read(ctx, storage.KeyTrackingData).tallies
}

func (ts *TrackingService) GetSettings(ctx context.Context) models.Settings {
	return ts.read(ctx, storage.KeySettings).settings
}

func (ts *TrackingService) GetChannelLanguageMap(ctx context.Context) models.ChannelLanguageMap {
	return ts.read(ctx, storage.KeyChannelLanguages).channels
}

// GetVideoLog returns the video log, assigning and persisting uids for entries
// written before uids existed.
func (ts *TrackingService) GetVideoLog(ctx context.Context) models.VideoLog {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	docs := ts.read(ctx, storage.KeyVideoLog)
	if ledger.MigrateUIDs(docs.log, ts.newUID) {
		if ts.save(ctx, "migrateUIDs", docs, storage.KeyVideoLog) {
			ts.logger.Infof(providers.TypeLedger, "Assigned uids to legacy video log entries")
		}
	}
	return docs.log
}

// read loads keys for a read-only view, degrading to defaults when the store fails.
func (ts *TrackingService) read(ctx context.Context, keys ...string) *documents {
	docs, err := loadDocuments(ctx, ts.store, keys...)
	if err != nil {
		ts.logger.Warnf(providers.TypeStorage, "Read of %v failed, serving defaults: %s", keys, err)
		markDegraded(ctx)
		docs, _ = loadDocuments(ctx, emptyStore{}, keys...)
	}
	return docs
}

func (ts *TrackingService) load(ctx context.Context, op string, keys ...string) (*documents, error) {
	docs, err := loadDocuments(ctx, ts.store, keys...)
	if err != nil {
		ts.logger.Errorf(providers.TypeStorage, "%s aborted, read failed: %s", op, err)
		return nil, err
	}
	return docs, nil
}

func (ts *TrackingService) save(ctx context.Context, op string, docs *documents, keys ...string) bool {
	values, err := encodeDocuments(docs, keys...)
	if err == nil {
		err = ts.store.Set(ctx, values)
	}
	if err != nil {
		ts.logger.Errorf(providers.TypeStorage, "%s not persisted: %s", op, err)
		return false
	}
	ts.cache.Clear()
	return true
}

func (ts *TrackingService) finish(op string, outcome models.Outcome) models.Outcome {
	ts.metrics.IncLedgerOperations(op, outcome.Label())
	return outcome
}

// emptyStore backs the default view served when the real store fails.
type emptyStore struct{}

func (emptyStore) Get(_ context.Context, _ []string) (map[string][]byte, error) {
	return map[string][]byte{}, nil
}
func (emptyStore) Set(_ context.Context, _ map[string][]byte) error { return nil }
func (emptyStore) Close() error                                      { return nil }
