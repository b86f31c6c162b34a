package signals

import (
	"context"
	"langtrack/internal/language"
	"langtrack/internal/providers"
	"langtrack/internal/structures"
	"time"
)

// Chain asks each extractor in order and returns the first usable answer.
type Chain []Extractor

func firstOf[T any](ctx context.Context, c Chain, ask func(Extractor) (T, error), usable func(T) bool) (T, error) {
	var zero T
	err := ErrNoSignal
	for _, ext := range c {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		v, e := ask(ext)
		if e == nil && usable(v) {
			return v, nil
		}
		if e != nil {
			err = e
		}
	}
	return zero, err
}

func nonEmpty(s string) bool { return s != "" }

func (c Chain) CaptionTracks(ctx context.Context, ref VideoRef) ([]language.CaptionTrack, error) {
	return firstOf(ctx, c, func(e Extractor) ([]language.CaptionTrack, error) {
		return e.CaptionTracks(ctx, ref)
	}, func(t []language.CaptionTrack) bool { return len(t) > 0 })
}

func (c Chain) DeclaredAudioLanguage(ctx context.Context, ref VideoRef) (string, error) {
	return firstOf(ctx, c, func(e Extractor) (string, error) {
		return e.DeclaredAudioLanguage(ctx, ref)
	}, nonEmpty)
}

func (c Chain) TitleText(ctx context.Context, ref VideoRef) (string, error) {
	return firstOf(ctx, c, func(e Extractor) (string, error) {
		return e.TitleText(ctx, ref)
	}, nonEmpty)
}

func (c Chain) ChannelID(ctx context.Context, ref VideoRef) (string, error) {
	return firstOf(ctx, c, func(e Extractor) (string, error) {
		return e.ChannelID(ctx, ref)
	}, nonEmpty)
}

// timeoutExtractor bounds every call of the wrapped extractor. The bound holds
// even for extractors that ignore ctx: the caller stops waiting and the late
// answer is discarded.
type timeoutExtractor struct {
	inner   Extractor
	timeout time.Duration
}

// WithTimeout caps each call to ext at d. A non-positive d leaves ext unbounded.
func WithTimeout(ext Extractor, d time.Duration) Extractor {
	if d <= 0 {
		return ext
	}
	return &timeoutExtractor{inner: ext, timeout: d}
}

type result[T any] struct {
	v   T
	err error
}

func bounded[T any](ctx context.Context, d time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		v, err := call(ctx)
		done <- result[T]{v: v, err: err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (t *timeoutExtractor) CaptionTracks(ctx context.Context, ref VideoRef) ([]language.CaptionTrack, error) {
	return bounded(ctx, t.timeout, func(ctx context.Context) ([]language.CaptionTrack, error) {
		return t.inner.CaptionTracks(ctx, ref)
	})
}

func (t *timeoutExtractor) DeclaredAudioLanguage(ctx context.Context, ref VideoRef) (string, error) {
	return bounded(ctx, t.timeout, func(ctx context.Context) (string, error) {
		return t.inner.DeclaredAudioLanguage(ctx, ref)
	})
}

func (t *timeoutExtractor) TitleText(ctx context.Context, ref VideoRef) (string, error) {
	return bounded(ctx, t.timeout, func(ctx context.Context) (string, error) {
		return t.inner.TitleText(ctx, ref)
	})
}

func (t *timeoutExtractor) ChannelID(ctx context.Context, ref VideoRef) (string, error) {
	return bounded(ctx, t.timeout, func(ctx context.Context) (string, error) {
		return t.inner.ChannelID(ctx, ref)
	})
}

// NewExtractor builds the extractor chain: the page context pushed by the
// browser first, then the YouTube Data API when a key is configured.
func NewExtractor(conf *structures.Config, logger providers.Logger, page *PageContext) Extractor {
	chain := Chain{page}
	if !conf.YouTube.Enabled || conf.YouTube.ApiKey == "" {
		return chain
	}
	api, err := NewYouTubeAPI(context.Background(), conf, logger)
	if err != nil {
		logger.Warnf(providers.TypeSignals, "YouTube Data API disabled: %s", err)
		return chain
	}
	return append(chain, api)
}
