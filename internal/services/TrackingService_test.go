package services

import (
	"context"
	"fmt"
	"langtrack/internal/models"
	"langtrack/internal/storage"
	"langtrack/internal/testutil"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2024-03-01"

type fixture struct {
	svc     *TrackingService
	store   *testutil.FlakyStore
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
	cache   *testutil.MockCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   testutil.NewFlakyStore(),
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
		cache:   testutil.NewMockCache(),
	}
	f.svc = NewTrackingService(f.store, f.logger, f.metrics, f.cache).(*TrackingService)
	n := 0
	f.svc.newUID = func() string {
		n++
		return fmt.Sprintf("uid-%d", n)
	}
	return f
}

func (f *fixture) seed(t *testing.T, key string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f.store.Data[key] = data
}

func (f *fixture) record(t *testing.T, lang string, secs int64, video *models.VideoIdentity) models.Outcome {
	t.Helper()
	out, err := f.svc.RecordWatchSeconds(context.Background(), models.WatchTick{
		Language: lang, Seconds: secs, Date: testDate, Video: video,
	})
	require.NoError(t, err)
	return out
}

func TestRecordWatchSeconds_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, tick := range []models.WatchTick{
		{Language: "", Seconds: 5},
		{Language: "es", Seconds: 0},
		{Language: "es", Seconds: -5},
		{Language: "es", Seconds: 5, Date: "03/01/2024"},
	} {
		_, err := f.svc.RecordWatchSeconds(ctx, tick)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	}
	assert.Zero(t, f.store.SetCalls)
}

func TestRecordWatchSeconds_TallyAndEntry(t *testing.T) {
	f := newFixture(t)
	f.cache.Set("tallies", []byte("stale"))
	video := &models.VideoIdentity{VideoID: "v1", Title: "Hola", ChannelID: "c1"}

	assert.Equal(t, models.Accepted(), f.record(t, "es", 5, video))
	assert.Equal(t, models.Accepted(), f.record(t, "es", 5, video))

	tallies := f.svc.GetDayTallies(context.Background())
	assert.Equal(t, models.DayTally{"es": 10}, tallies[testDate])

	log := f.svc.GetVideoLog(context.Background())
	require.Len(t, log[testDate], 1)
	e := log[testDate][0]
	assert.Equal(t, "uid-1", e.UID)
	assert.Equal(t, int64(10), e.Seconds)
	assert.Equal(t, map[string]int64{"es": 10}, e.LangBreakdown)

	assert.Equal(t, int64(10), f.metrics.Seconds["es"])
	assert.Equal(t, 2, f.metrics.OperationCount("recordTick", "accepted"))
	_, cached := f.cache.Get("tallies")
	assert.False(t, cached)
}

func TestRecordWatchSeconds_DefaultsToToday(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RecordWatchSeconds(context.Background(), models.WatchTick{Language: "fr", Seconds: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(5), f.svc.GetDayTallies(context.Background())[models.Today()]["fr"])
}

func TestRecordWatchSeconds_SkippedByPolicy(t *testing.T) {
	f := newFixture(t)

	out := f.record(t, "de", 5, nil)
	assert.True(t, out.Accepted)
	assert.Equal(t, models.SkipLanguageNotTargeted, out.SkippedReason)

	f.seed(t, storage.KeySettings, map[string]any{"trackingEnabled": false})
	out = f.record(t, "es", 5, nil)
	assert.Equal(t, models.Skipped(models.SkipTrackingDisabled), out)

	assert.Empty(t, f.svc.GetDayTallies(context.Background()))
	assert.Zero(t, f.store.SetCalls)
}

func TestRecordWatchSeconds_UnknownAlwaysTracked(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, models.Accepted(), f.record(t, "unknown", 5, nil))
}

func TestRecordWatchSeconds_EmptyTargetsTrackEverything(t *testing.T) {
	f := newFixture(t)
	f.seed(t, storage.KeySettings, map[string]any{"targetLanguages": []string{}})

	assert.Equal(t, models.Accepted(), f.record(t, "ko", 5, nil))
}

func TestRecordWatchSeconds_UnknownResolvedByChannelMap(t *testing.T) {
	f := newFixture(t)
	f.seed(t, storage.KeyChannelLanguages, models.ChannelLanguageMap{"c1": "fr"})

	f.record(t, "unknown", 5, &models.VideoIdentity{VideoID: "v", ChannelID: "c1"})

	assert.Equal(t, models.DayTally{"fr": 5}, f.svc.GetDayTallies(context.Background())[testDate])
}

func TestRecordWatchSeconds_ChannelWithoutVideoResolves(t *testing.T) {
	f := newFixture(t)
	f.seed(t, storage.KeyChannelLanguages, models.ChannelLanguageMap{"c1": "fr"})

	assert.Equal(t, models.Accepted(), f.record(t, "unknown", 5, &models.VideoIdentity{ChannelID: "c1"}))

	ctx := context.Background()
	assert.Equal(t, models.DayTally{"fr": 5}, f.svc.GetDayTallies(ctx)[testDate])
	assert.Empty(t, f.svc.GetVideoLog(ctx))
}

func TestRecordWatchSeconds_ChannelMapCanBeFilteredOut(t *testing.T) {
	f := newFixture(t)
	f.seed(t, storage.KeyChannelLanguages, models.ChannelLanguageMap{"c1": "de"})

	out := f.record(t, "unknown", 5, &models.VideoIdentity{VideoID: "v", ChannelID: "c1"})

	assert.Equal(t, models.SkipLanguageNotTargeted, out.SkippedReason)
}

func TestRecordWatchSeconds_SumMatchesAccepted(t *testing.T) {
	f := newFixture(t)
	var want int64
	for i, lang := range []string{"es", "fr", "de", "unknown", "es", "ja"} {
		secs := int64(5 + i)
		out := f.record(t, lang, secs, &models.VideoIdentity{VideoID: fmt.Sprintf("v%d", i%3)})
		if out.Accepted && out.SkippedReason == "" {
			want += secs
		}
	}
	assert.Equal(t, want, f.svc.GetDayTallies(context.Background())[testDate].Total())
}

func TestRecordWatchSeconds_StorageReadFailureDoesNotWrite(t *testing.T) {
	f := newFixture(t)
	f.store.FailGet = true

	out := f.record(t, "es", 5, nil)

	assert.Equal(t, models.StorageUnavailable(), out)
	assert.Zero(t, f.store.SetCalls)
	assert.True(t, f.logger.Has("error"))
}

func TestRecordWatchSeconds_StorageWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailSet = true
	f.cache.Set("k", []byte("v"))

	out := f.record(t, "es", 5, nil)

	assert.Equal(t, models.StorageUnavailable(), out)
	_, stillCached := f.cache.Get("k")
	assert.True(t, stillCached)
	assert.Equal(t, 1, f.metrics.OperationCount("recordTick", "storageUnavailable"))
}

func TestRecordWatchSeconds_CanceledContextRecordsNothing(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.RecordWatchSeconds(ctx, models.WatchTick{Language: "es", Seconds: 5, Date: testDate})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.store.SetCalls)
}

func TestRecordWatchSeconds_ConcurrentWritersDoNotLoseSeconds(t *testing.T) {
	f := newFixture(t)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = f.svc.RecordWatchSeconds(context.Background(), models.WatchTick{
				Language: "es", Seconds: 5, Date: testDate,
				Video: &models.VideoIdentity{VideoID: fmt.Sprintf("v%d", i%4)},
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(250), f.svc.GetDayTallies(context.Background())[testDate]["es"])
	var logged int64
	for _, e := range f.svc.GetVideoLog(context.Background())[testDate] {
		logged += e.Seconds
	}
	assert.Equal(t, int64(250), logged)
}

func TestRecordManualMinutes(t *testing.T) {
	f := newFixture(t)
	f.seed(t, storage.KeySettings, map[string]any{"targetLanguages": []string{"de"}})

	out, err := f.svc.RecordManualMinutes(context.Background(), "de", 15, testDate)
	require.NoError(t, err)
	assert.Equal(t, models.Accepted(), out)
	assert.Equal(t, int64(900), f.svc.GetDayTallies(context.Background())[testDate]["de"])

	_, err = f.svc.RecordManualMinutes(context.Background(), "de", 0.0125, testDate)
	require.NoError(t, err)
	assert.Equal(t, int64(901), f.svc.GetDayTallies(context.Background())[testDate]["de"])

	_, err = f.svc.RecordManualMinutes(context.Background(), "de", 0, testDate)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = f.svc.RecordManualMinutes(context.Background(), "", 3, testDate)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSetChannelLanguage_RemapScenario(t *testing.T) {
	f := newFixture(t)
	video := &models.VideoIdentity{VideoID: "V", ChannelID: "C"}
	f.record(t, "unknown", 5, video)
	f.record(t, "fr", 5, video)

	out, err := f.svc.SetChannelLanguage(context.Background(), "C", "es")
	require.NoError(t, err)
	assert.Equal(t, models.Accepted(), out)

	ctx := context.Background()
	assert.Equal(t, models.DayTally{"es": 5, "fr": 5}, f.svc.GetDayTallies(ctx)[testDate])
	e := f.svc.GetVideoLog(ctx)[testDate][0]
	assert.Equal(t, map[string]int64{"es": 5, "fr": 5}, e.LangBreakdown)
	assert.Equal(t, "es", e.Lang)
	assert.Equal(t, models.ChannelLanguageMap{"C": "es"}, f.svc.GetChannelLanguageMap(ctx))

	// Later unknown ticks for the channel resolve immediately.
	f.record(t, "unknown", 5, video)
	assert.Equal(t, int64(10), f.svc.GetDayTallies(ctx)[testDate]["es"])
}

func TestSetChannelLanguage_InvalidInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SetChannelLanguage(context.Background(), "", "es")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = f.svc.SetChannelLanguage(context.Background(), "C", " ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSetChannelLanguage_RejectsUnknownTarget(t *testing.T) {
	f := newFixture(t)
	video := &models.VideoIdentity{VideoID: "V", ChannelID: "C"}
	f.record(t, "unknown", 5, video)
	f.record(t, "fr", 5, video)
	writes := f.store.SetCalls

	_, err := f.svc.SetChannelLanguage(context.Background(), "C", "Unknown")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, writes, f.store.SetCalls)

	ctx := context.Background()
	e := f.svc.GetVideoLog(ctx)[testDate][0]
	assert.Equal(t, int64(10), e.Seconds)
	assert.Equal(t, map[string]int64{"unknown": 5, "fr": 5}, e.LangBreakdown)
	assert.Equal(t, models.DayTally{"unknown": 5, "fr": 5}, f.svc.GetDayTallies(ctx)[testDate])
	assert.Empty(t, f.svc.GetChannelLanguageMap(ctx))
}

func TestSetChannelLanguage_NormalizesCode(t *testing.T) {
	f := newFixture(t)
	video := &models.VideoIdentity{VideoID: "V", ChannelID: "C"}
	f.record(t, "unknown", 5, video)

	out, err := f.svc.SetChannelLanguage(context.Background(), "C", "es-ES")
	require.NoError(t, err)
	assert.Equal(t, models.Accepted(), out)

	ctx := context.Background()
	assert.Equal(t, models.ChannelLanguageMap{"C": "es"}, f.svc.GetChannelLanguageMap(ctx))
	assert.Equal(t, models.Accepted(), f.record(t, "unknown", 5, video))
	assert.Equal(t, models.DayTally{"es": 10}, f.svc.GetDayTallies(ctx)[testDate])
}

func TestSetChannelLanguage_RejectsUnsupportedCode(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetChannelLanguage(context.Background(), "C", "xx-YY")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Zero(t, f.store.SetCalls)
}

func TestRemoveVideoLogEntry(t *testing.T) {
	f := newFixture(t)
	f.record(t, "es", 20, &models.VideoIdentity{VideoID: "keep"})
	f.record(t, "unknown", 10, &models.VideoIdentity{VideoID: "drop"})
	f.record(t, "fr", 5, &models.VideoIdentity{VideoID: "drop"})

	out, err := f.svc.RemoveVideoLogEntry(context.Background(), testDate, models.EntryIdentity{UID: "uid-2"})
	require.NoError(t, err)
	assert.Equal(t, models.Accepted(), out)

	ctx := context.Background()
	assert.Equal(t, models.DayTally{"es": 20}, f.svc.GetDayTallies(ctx)[testDate])
	require.Len(t, f.svc.GetVideoLog(ctx)[testDate], 1)
}

func TestRemoveVideoLogEntry_LastEntryEmptiesDay(t *testing.T) {
	f := newFixture(t)
	video := &models.VideoIdentity{VideoID: "V", ChannelID: "C"}
	f.record(t, "unknown", 10, video)
	f.record(t, "fr", 5, video)
	_, err := f.svc.SetChannelLanguage(context.Background(), "C", "es")
	require.NoError(t, err)

	_, err = f.svc.RemoveVideoLogEntry(context.Background(), testDate, models.EntryIdentity{VideoID: "V"})
	require.NoError(t, err)

	assert.Empty(t, f.svc.GetDayTallies(context.Background()))
	assert.Empty(t, f.svc.GetVideoLog(context.Background()))
}

func TestRemoveVideoLogEntry_LegacyStructuralMatch(t *testing.T) {
	f := newFixture(t)
	f.seed(t, storage.KeyTrackingData, models.Tallies{testDate: {"es": 30, "fr": 3}})
	f.store.Data[storage.KeyVideoLog] = []byte(`{"2024-03-01":[{"id":"old","title":"T","lang":"es","seconds":30}]}`)

	out, err := f.svc.RemoveVideoLogEntry(context.Background(), testDate, models.EntryIdentity{
		Match: &models.EntryMatch{ID: "old", Title: "T", Lang: "es", Seconds: 30},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Accepted(), out)
	assert.Equal(t, models.DayTally{"fr": 3}, f.svc.GetDayTallies(context.Background())[testDate])
}

func TestRemoveVideoLogEntry_MissingIsAcceptedNoop(t *testing.T) {
	f := newFixture(t)
	out, err := f.svc.RemoveVideoLogEntry(context.Background(), testDate, models.EntryIdentity{VideoID: "none"})
	require.NoError(t, err)
	assert.Equal(t, models.Accepted(), out)
	assert.Zero(t, f.store.SetCalls)
}

func TestRemoveVideoLogEntry_InvalidInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RemoveVideoLogEntry(context.Background(), "", models.EntryIdentity{VideoID: "v"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = f.svc.RemoveVideoLogEntry(context.Background(), testDate, models.EntryIdentity{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestGetVideoLog_MigratesAndPersistsUIDs(t *testing.T) {
	f := newFixture(t)
	f.store.Data[storage.KeyVideoLog] = []byte(`{"2024-03-01":[{"id":"a","lang":"es","seconds":5},{"id":"b","uid":"kept","lang":"fr","seconds":5}]}`)

	log := f.svc.GetVideoLog(context.Background())

	assert.Equal(t, "uid-1", log[testDate][0].UID)
	assert.Equal(t, "kept", log[testDate][1].UID)
	assert.Equal(t, 1, f.store.SetCalls)

	var stored models.VideoLog
	require.NoError(t, json.Unmarshal(f.store.Snapshot()[storage.KeyVideoLog], &stored))
	assert.Equal(t, "uid-1", stored[testDate][0].UID)

	f.svc.GetVideoLog(context.Background())
	assert.Equal(t, 1, f.store.SetCalls)
}

func TestSettings_MergeAndSave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	assert.Equal(t, models.DefaultSettings(), f.svc.GetSettings(ctx))

	goal := 45
	targets := []string{"ES", "ja", "es", ""}
	s, out, err := f.svc.SaveSettings(ctx, models.SettingsPatch{DailyGoalMinutes: &goal, TargetLanguages: &targets})
	require.NoError(t, err)
	assert.Equal(t, models.Accepted(), out)
	assert.Equal(t, 45, s.DailyGoalMinutes)
	assert.Equal(t, []string{"es", "ja"}, s.TargetLanguages)
	assert.True(t, s.TrackingEnabled)

	enabled := false
	s, _, err = f.svc.SaveSettings(ctx, models.SettingsPatch{TrackingEnabled: &enabled})
	require.NoError(t, err)
	assert.Equal(t, 45, s.DailyGoalMinutes)
	assert.False(t, s.TrackingEnabled)
	assert.Equal(t, s, f.svc.GetSettings(ctx))
}

func TestSaveSettings_RejectsNonPositiveGoal(t *testing.T) {
	f := newFixture(t)
	zero := 0
	_, _, err := f.svc.SaveSettings(context.Background(), models.SettingsPatch{DailyGoalMinutes: &zero})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestReads_DegradeToDefaults(t *testing.T) {
	f := newFixture(t)
	f.store.FailGet = true
	ctx := context.Background()

	assert.Empty(t, f.svc.GetDayTallies(ctx))
	assert.Empty(t, f.svc.GetVideoLog(ctx))
	assert.Empty(t, f.svc.GetChannelLanguageMap(ctx))
	assert.Equal(t, models.DefaultSettings(), f.svc.GetSettings(ctx))
	assert.True(t, f.logger.Has("warn"))
}

func TestReads_CorruptDocumentDegrades(t *testing.T) {
	f := newFixture(t)
	f.store.Data[storage.KeyTrackingData] = []byte(`{"2024-03-01":`)

	assert.Empty(t, f.svc.GetDayTallies(context.Background()))

	out := f.record(t, "es", 5, nil)
	assert.Equal(t, models.StorageUnavailable(), out)
	assert.Equal(t, `{"2024-03-01":`, string(f.store.Data[storage.KeyTrackingData]))
}

func TestSaveSettings_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailSet = true
	goal := 10

	s, out, err := f.svc.SaveSettings(context.Background(), models.SettingsPatch{DailyGoalMinutes: &goal})
	require.NoError(t, err)
	assert.Equal(t, models.StorageUnavailable(), out)
	assert.Equal(t, 10, s.DailyGoalMinutes)
}

func TestReadReport_FlagsDegradedReads(t *testing.T) {
	f := newFixture(t)

	ctx, report := WithReadReport(context.Background())
	f.svc.GetSettings(ctx)
	assert.False(t, report.Degraded())

	f.store.FailGet = true
	ctx, report = WithReadReport(context.Background())
	assert.Equal(t, models.DefaultSettings(), f.svc.GetSettings(ctx))
	assert.True(t, report.Degraded())

	// Reads without a report still degrade quietly.
	assert.Empty(t, f.svc.GetDayTallies(context.Background()))
}
