package signals

import (
	"context"
	"errors"
	"langtrack/internal/language"
	"langtrack/internal/providers"
	"sync"
	"time"
)

// Collector gathers detector input from an extractor, each call capped by a
// timeout. Failures are logged and read as missing signals.
type Collector struct {
	ext    Extractor
	logger providers.Logger
}

func NewCollector(ext Extractor, timeout time.Duration, logger providers.Logger) *Collector {
	return &Collector{ext: WithTimeout(ext, timeout), logger: logger}
}

// Gather runs the three detector lookups concurrently.
func (c *Collector) Gather(ctx context.Context, ref VideoRef) language.Signals {
	var (
		s  language.Signals
		wg sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		tracks, err := c.ext.CaptionTracks(ctx, ref)
		c.miss(ref, "captions", err)
		s.Captions = tracks
	}()
	go func() {
		defer wg.Done()
		audio, err := c.ext.DeclaredAudioLanguage(ctx, ref)
		c.miss(ref, "audio", err)
		s.DeclaredAudio = audio
	}()
	go func() {
		defer wg.Done()
		title, err := c.ext.TitleText(ctx, ref)
		c.miss(ref, "title", err)
		s.Title = title
	}()
	wg.Wait()
	return s
}

// Title returns the video title, or "" when no source has it.
func (c *Collector) Title(ctx context.Context, ref VideoRef) string {
	title, err := c.ext.TitleText(ctx, ref)
	c.miss(ref, "title", err)
	return title
}

// Channel returns the channel id, or "" when no source has it.
func (c *Collector) Channel(ctx context.Context, ref VideoRef) string {
	id, err := c.ext.ChannelID(ctx, ref)
	c.miss(ref, "channel", err)
	return id
}

func (c *Collector) miss(ref VideoRef, what string, err error) {
	if err == nil || errors.Is(err, ErrNoSignal) || c.logger == nil {
		return
	}
	c.logger.Debugf(providers.TypeSignals, "%s signal for %s/%s unavailable: %s", what, ref.Platform, ref.VideoID, err)
}
