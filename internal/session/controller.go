// Package session follows one browser surface through navigation, language
// detection and periodic watch-time ticks.
package session

import (
	"context"
	"langtrack/internal/language"
	"langtrack/internal/models"
	"langtrack/internal/providers"
	"langtrack/internal/signals"
	"langtrack/internal/structures"
	"sync"
	"time"
)

type State string

const (
	StateIdle      State = "idle"
	StateDetecting State = "detecting"
	StateTracking  State = "tracking"
)

const (
	defaultTickInterval = 5 * time.Second
	defaultMaxAttempts  = 5
	defaultRetryDelay   = 1500 * time.Millisecond
)

// RetryPolicy bounds detection attempts for one video.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Ledger is the part of the tracking service a session needs.
type Ledger interface {
	RecordWatchSeconds(ctx context.Context, tick models.WatchTick) (models.Outcome, error)
	GetSettings(ctx context.Context) models.Settings
}

// Gatherer supplies detector input and lazy video metadata.
type Gatherer interface {
	Gather(ctx context.Context, ref signals.VideoRef) language.Signals
	Title(ctx context.Context, ref signals.VideoRef) string
	Channel(ctx context.Context, ref signals.VideoRef) string
}

// Playback is the player state reported by the page.
type Playback struct {
	Paused  bool `json:"paused"`
	Ended   bool `json:"ended"`
	Visible bool `json:"visible"`
}

// Snapshot is the session as reported to the dashboard.
type Snapshot struct {
	ChannelID        string           `json:"channelId,omitempty"`
	DetectedLanguage string           `json:"detectedLanguage,omitempty"`
	VideoID          string           `json:"videoId,omitempty"`
	Platform         signals.Platform `json:"platform,omitempty"`
	IsWatchPage      bool             `json:"isWatchPage"`
	State            State            `json:"state"`
	Title            string           `json:"title,omitempty"`
	Attempts         int              `json:"attempts"`
	Playback         Playback         `json:"playback"`
}

// Controller owns the per-navigation state. Every timer callback carries the
// generation it was armed in and is dropped once a newer navigation happened.
type Controller struct {
	mu       sync.Mutex
	sched    Scheduler
	gatherer Gatherer
	ledger   Ledger
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	retry    RetryPolicy
	interval time.Duration

	generation uint64
	page       Page
	state      State
	lang       string
	title      string
	channel    string
	attempts   int
	playback   Playback
	retryTimer Timer
	ticker     Timer
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewController(conf *structures.Config, sched Scheduler, gatherer Gatherer, ledger Ledger, logger providers.Logger, metrics providers.MetricsProviderInterface) *Controller {
	t := conf.Tracking
	retry := RetryPolicy{MaxAttempts: t.MaxDetectAttempts, Delay: t.DetectRetryDelay}
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = defaultMaxAttempts
	}
	if retry.Delay <= 0 {
		retry.Delay = defaultRetryDelay
	}
	interval := t.TickInterval
	if interval < time.Second {
		interval = defaultTickInterval
	}

	return &Controller{
		sched:    sched,
		gatherer: gatherer,
		ledger:   ledger,
		logger:   logger,
		metrics:  metrics,
		retry:    retry,
		interval: interval,
		state:    StateIdle,
		playback: Playback{Visible: true},
	}
}

// Navigate handles a page change. A new watch page resets the session and runs
// the first detection attempt before returning.
func (c *Controller) Navigate(ctx context.Context, rawURL string) Snapshot {
	page := ParsePage(rawURL)

	if page.IsWatch && page.Platform == signals.PlatformBilibili && !c.ledger.GetSettings(ctx).BilibiliEnabled {
		c.logger.Debugf(providers.TypeSession, "Bilibili tracking disabled, ignoring %s", page.VideoID)
		page = Page{URL: rawURL, Platform: signals.PlatformBilibili}
	}

	c.mu.Lock()
	if !page.IsWatch {
		c.resetLocked()
		c.page = page
		c.state = StateIdle
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	if c.state != StateIdle && c.page.IsWatch && c.page.Platform == page.Platform && c.page.VideoID == page.VideoID {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	c.resetLocked()
	c.page = page
	c.state = StateDetecting
	c.ctx, c.cancel = context.WithCancel(context.Background())
	gen := c.generation
	c.mu.Unlock()

	c.logger.Infof(providers.TypeSession, "Watching %s/%s", page.Platform, page.VideoID)
	c.attempt(gen)
	return c.Context()
}

// resetLocked cancels everything armed for the current video.
func (c *Controller) resetLocked() {
	c.generation++
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.ctx = nil
	c.page = Page{}
	c.lang = ""
	c.title = ""
	c.channel = ""
	c.attempts = 0
}

func (c *Controller) attempt(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != StateDetecting {
		c.mu.Unlock()
		return
	}
	c.retryTimer = nil
	c.attempts++
	n := c.attempts
	ref := c.page.Ref()
	ctx := c.ctx
	c.mu.Unlock()

	sig := c.gatherer.Gather(ctx, ref)
	lang, src := language.DetectWithSource(sig)

	var title, channel string
	settle := src != language.SourceNone || n >= c.retry.MaxAttempts
	if settle {
		title = sig.Title
		if title == "" {
			title = c.gatherer.Title(ctx, ref)
		}
		channel = c.gatherer.Channel(ctx, ref)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}

	switch {
	case src != language.SourceNone:
		c.metrics.IncDetections(string(src))
		c.logger.Infof(providers.TypeDetector, "%s/%s detected as %s from %s after %d attempt(s)", ref.Platform, ref.VideoID, lang, src, n)
	case n < c.retry.MaxAttempts:
		c.logger.Debugf(providers.TypeDetector, "%s/%s undetected, attempt %d/%d", ref.Platform, ref.VideoID, n, c.retry.MaxAttempts)
		c.retryTimer = c.sched.AfterFunc(c.retry.Delay, func() { c.attempt(gen) })
		return
	default:
		lang = language.Unknown
		c.metrics.IncDetections(language.Unknown)
		c.logger.Infof(providers.TypeDetector, "%s/%s undetected after %d attempts, tracking as unknown", ref.Platform, ref.VideoID, n)
	}

	c.lang = lang
	c.title = title
	c.channel = channel
	c.state = StateTracking
	c.armTickerLocked()
}

func (c *Controller) armTickerLocked() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	gen := c.generation
	c.ticker = c.sched.Every(c.interval, func() { c.tick(gen) })
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != StateTracking || c.lang == "" {
		c.mu.Unlock()
		return
	}
	if c.playback.Paused || c.playback.Ended || !c.playback.Visible {
		c.mu.Unlock()
		return
	}
	ref := c.page.Ref()
	ctx := c.ctx
	lang, title, channel := c.lang, c.title, c.channel
	c.mu.Unlock()

	if title == "" {
		title = c.gatherer.Title(ctx, ref)
	}
	if channel == "" {
		channel = c.gatherer.Channel(ctx, ref)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	if c.title == "" {
		c.title = title
	}
	if c.channel == "" {
		c.channel = channel
	}
	c.mu.Unlock()

	out, err := c.ledger.RecordWatchSeconds(ctx, models.WatchTick{
		Language: lang,
		Seconds:  int64(c.interval / time.Second),
		Video:    &models.VideoIdentity{VideoID: ref.VideoID, Title: title, ChannelID: channel},
	})
	if err != nil {
		c.logger.Debugf(providers.TypeSession, "Tick for %s dropped: %s", ref.VideoID, err)
		return
	}
	if !out.Accepted || out.SkippedReason != "" {
		c.logger.Debugf(providers.TypeSession, "Tick for %s not recorded: %s", ref.VideoID, out.Label())
	}
}

// VideoReplaced re-arms the ticker after the page swapped its player element.
// The detected language is kept.
func (c *Controller) VideoReplaced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lang == "" || !c.page.IsWatch || c.state != StateTracking {
		return false
	}
	c.armTickerLocked()
	return true
}

// SetPlayback records the player state. A hidden surface parks the ticker;
// becoming visible again with a known language re-arms it.
func (c *Controller) SetPlayback(p Playback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playback = p
	if !p.Visible {
		if c.ticker != nil {
			c.ticker.Stop()
			c.ticker = nil
		}
		return
	}
	if c.lang != "" && c.page.IsWatch && c.state == StateTracking && c.ticker == nil {
		c.armTickerLocked()
	}
}

func (c *Controller) Playback() Playback {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playback
}

// Context reports the current session.
func (c *Controller) Context() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		ChannelID:        c.channel,
		DetectedLanguage: c.lang,
		VideoID:          c.page.VideoID,
		Platform:         c.page.Platform,
		IsWatchPage:      c.page.IsWatch,
		State:            c.state,
		Title:            c.title,
		Attempts:         c.attempts,
		Playback:         c.playback,
	}
}

// Stop ends the session and cancels everything it armed.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.state = StateIdle
}
