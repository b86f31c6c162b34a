package signals

import (
	"context"
	"fmt"
	"langtrack/internal/language"
	"langtrack/internal/providers"
	"langtrack/internal/structures"
	"sync"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const youtubeSnippetMemo = 16

// YouTubeAPI asks the YouTube Data API for what the page did not expose.
// One videos.list result serves the title, channel and audio language lookups.
type YouTubeAPI struct {
	service *youtube.Service
	limiter *rate.Limiter
	logger  providers.Logger

	mu       sync.Mutex
	snippets map[string]*youtube.VideoSnippet
	order    []string
}

func NewYouTubeAPI(ctx context.Context, conf *structures.Config, logger providers.Logger, opts ...option.ClientOption) (*YouTubeAPI, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(conf.YouTube.ApiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	rps := conf.YouTube.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	logger.Infof(providers.TypeSignals, "YouTube Data API enabled, %.2f req/s", rps)

	return &YouTubeAPI{
		service:  service,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		logger:   logger,
		snippets: make(map[string]*youtube.VideoSnippet),
	}, nil
}

func (y *YouTubeAPI) snippet(ctx context.Context, ref VideoRef) (*youtube.VideoSnippet, error) {
	if ref.Platform != PlatformYouTube || ref.VideoID == "" {
		return nil, ErrNoSignal
	}

	y.mu.Lock()
	s, ok := y.snippets[ref.VideoID]
	y.mu.Unlock()
	if ok {
		return s, nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := y.service.Videos.List([]string{"snippet"}).Id(ref.VideoID).Context(ctx).Do()
	if err != nil {
		y.logger.Debugf(providers.TypeSignals, "videos.list %s failed: %s", ref.VideoID, err)
		return nil, err
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, ErrNoSignal
	}
	s = resp.Items[0].Snippet

	y.mu.Lock()
	defer y.mu.Unlock()
	if _, ok := y.snippets[ref.VideoID]; !ok {
		y.order = append(y.order, ref.VideoID)
		if len(y.order) > youtubeSnippetMemo {
			delete(y.snippets, y.order[0])
			y.order = y.order[1:]
		}
	}
	y.snippets[ref.VideoID] = s
	return s, nil
}

func (y *YouTubeAPI) CaptionTracks(ctx context.Context, ref VideoRef) ([]language.CaptionTrack, error) {
	if ref.Platform != PlatformYouTube || ref.VideoID == "" {
		return nil, ErrNoSignal
	}
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := y.service.Captions.List([]string{"snippet"}, ref.VideoID).Context(ctx).Do()
	if err != nil {
		y.logger.Debugf(providers.TypeSignals, "captions.list %s failed: %s", ref.VideoID, err)
		return nil, err
	}

	var tracks []language.CaptionTrack
	for _, c := range resp.Items {
		if c.Snippet == nil {
			continue
		}
		tracks = append(tracks, language.CaptionTrack{
			Code: c.Snippet.Language,
			ASR:  c.Snippet.TrackKind == "asr" || c.Snippet.TrackKind == "ASR",
		})
	}
	if len(tracks) == 0 {
		return nil, ErrNoSignal
	}
	return tracks, nil
}

func (y *YouTubeAPI) DeclaredAudioLanguage(ctx context.Context, ref VideoRef) (string, error) {
	return y.snippetField(ctx, ref, func(s *youtube.VideoSnippet) string { return s.DefaultAudioLanguage })
}

func (y *YouTubeAPI) TitleText(ctx context.Context, ref VideoRef) (string, error) {
	return y.snippetField(ctx, ref, func(s *youtube.VideoSnippet) string { return s.Title })
}

func (y *YouTubeAPI) ChannelID(ctx context.Context, ref VideoRef) (string, error) {
	return y.snippetField(ctx, ref, func(s *youtube.VideoSnippet) string { return s.ChannelId })
}

func (y *YouTubeAPI) snippetField(ctx context.Context, ref VideoRef, get func(*youtube.VideoSnippet) string) (string, error) {
	s, err := y.snippet(ctx, ref)
	if err != nil {
		return "", err
	}
	if v := get(s); v != "" {
		return v, nil
	}
	return "", ErrNoSignal
}
