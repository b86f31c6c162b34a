// Package signals collects the raw hints a video's spoken language can be
// inferred from. Every source may be missing or late, so extractors report
// ErrNoSignal instead of failing the caller.
package signals

import (
	"context"
	"errors"
	"langtrack/internal/language"
)

type Platform string

const (
	PlatformYouTube  Platform = "youtube"
	PlatformBilibili Platform = "bilibili"
)

var ErrNoSignal = errors.New("no signal")

// VideoRef identifies the video a signal is requested for.
type VideoRef struct {
	Platform Platform `json:"platform"`
	VideoID  string   `json:"videoId"`
}

type Extractor interface {
	CaptionTracks(ctx context.Context, ref VideoRef) ([]language.CaptionTrack, error)
	DeclaredAudioLanguage(ctx context.Context, ref VideoRef) (string, error)
	TitleText(ctx context.Context, ref VideoRef) (string, error)
	ChannelID(ctx context.Context, ref VideoRef) (string, error)
}
