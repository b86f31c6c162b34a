package signals

import (
	"context"
	"fmt"
	"langtrack/internal/language"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const defaultPageContextSize = 32

// PagePayload is what the browser shim scrapes from a watch page. PlayerResponse
// is YouTube's ytInitialPlayerResponse, InitialState is Bilibili's __INITIAL_STATE__.
// Title is the DOM title and wins over the embedded one. ChannelID is a DOM
// fallback used when the embedded state lacks it.
type PagePayload struct {
	Platform       Platform        `json:"platform"`
	VideoID        string          `json:"videoId"`
	PlayerResponse json.RawMessage `json:"playerResponse,omitempty"`
	InitialState   json.RawMessage `json:"initialState,omitempty"`
	Title          string          `json:"title,omitempty"`
	ChannelID      string          `json:"channelId,omitempty"`
}

type pageSignals struct {
	captions []language.CaptionTrack
	audio    string
	title    string
	channel  string
}

type playerResponse struct {
	Captions struct {
		Renderer struct {
			CaptionTracks []struct {
				LanguageCode string `json:"languageCode"`
				Kind         string `json:"kind"`
			} `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	VideoDetails struct {
		VideoID              string `json:"videoId"`
		Title                string `json:"title"`
		ChannelID            string `json:"channelId"`
		DefaultAudioLanguage string `json:"defaultAudioLanguage"`
	} `json:"videoDetails"`
}

type initialState struct {
	VideoData struct {
		Title    string `json:"title"`
		Subtitle struct {
			List []struct {
				Lan string `json:"lan"`
			} `json:"list"`
		} `json:"subtitle"`
	} `json:"videoData"`
	UpData struct {
		Mid  any    `json:"mid"`
		Name string `json:"name"`
	} `json:"upData"`
}

// PageContext holds the latest page payload per video id. Lookups for any other
// video miss, so a payload left over from a previous page is never used.
type PageContext struct {
	mu      sync.RWMutex
	pages   map[string]pageSignals
	order   []string
	maxSize int
}

func NewPageContext() *PageContext {
	return &PageContext{
		pages:   make(map[string]pageSignals),
		maxSize: defaultPageContextSize,
	}
}

// Update parses p and stores it under its video id, replacing older data.
func (pc *PageContext) Update(p PagePayload) error {
	if p.VideoID == "" {
		return fmt.Errorf("page payload without videoId")
	}
	parsed, err := parsePage(p)
	if err != nil {
		return err
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if _, ok := pc.pages[p.VideoID]; !ok {
		pc.order = append(pc.order, p.VideoID)
		for len(pc.order) > pc.maxSize {
			delete(pc.pages, pc.order[0])
			pc.order = pc.order[1:]
		}
	}
	pc.pages[p.VideoID] = parsed
	return nil
}

// Forget drops the data held for videoID.
func (pc *PageContext) Forget(videoID string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if _, ok := pc.pages[videoID]; !ok {
		return
	}
	delete(pc.pages, videoID)
	for i, id := range pc.order {
		if id == videoID {
			pc.order = append(pc.order[:i], pc.order[i+1:]...)
			break
		}
	}
}

func (pc *PageContext) lookup(ref VideoRef) (pageSignals, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	s, ok := pc.pages[ref.VideoID]
	return s, ok
}

func (pc *PageContext) CaptionTracks(_ context.Context, ref VideoRef) ([]language.CaptionTrack, error) {
	s, ok := pc.lookup(ref)
	if !ok || len(s.captions) == 0 {
		return nil, ErrNoSignal
	}
	return s.captions, nil
}

func (pc *PageContext) DeclaredAudioLanguage(_ context.Context, ref VideoRef) (string, error) {
	return pc.field(ref, func(s pageSignals) string { return s.audio })
}

func (pc *PageContext) TitleText(_ context.Context, ref VideoRef) (string, error) {
	return pc.field(ref, func(s pageSignals) string { return s.title })
}

func (pc *PageContext) ChannelID(_ context.Context, ref VideoRef) (string, error) {
	return pc.field(ref, func(s pageSignals) string { return s.channel })
}

func (pc *PageContext) field(ref VideoRef, get func(pageSignals) string) (string, error) {
	s, ok := pc.lookup(ref)
	if !ok {
		return "", ErrNoSignal
	}
	if v := get(s); v != "" {
		return v, nil
	}
	return "", ErrNoSignal
}

func parsePage(p PagePayload) (pageSignals, error) {
	out := pageSignals{
		title:   strings.TrimSpace(p.Title),
		channel: strings.TrimSpace(p.ChannelID),
	}

	if len(p.PlayerResponse) > 0 && string(p.PlayerResponse) != "null" {
		var pr playerResponse
		if err := json.Unmarshal(p.PlayerResponse, &pr); err != nil {
			return out, fmt.Errorf("playerResponse: %w", err)
		}
		// A player response cached for an earlier video is stale.
		if pr.VideoDetails.VideoID == "" || pr.VideoDetails.VideoID == p.VideoID {
			for _, t := range pr.Captions.Renderer.CaptionTracks {
				out.captions = append(out.captions, language.CaptionTrack{Code: t.LanguageCode, ASR: t.Kind == "asr"})
			}
			out.audio = pr.VideoDetails.DefaultAudioLanguage
			if out.title == "" {
				out.title = pr.VideoDetails.Title
			}
			if pr.VideoDetails.ChannelID != "" {
				out.channel = pr.VideoDetails.ChannelID
			}
		}
	}

	if len(p.InitialState) > 0 && string(p.InitialState) != "null" {
		var st initialState
		if err := json.Unmarshal(p.InitialState, &st); err != nil {
			return out, fmt.Errorf("initialState: %w", err)
		}
		// Bilibili subtitles carry no asr flag; only recognised codes are offered
		// so the first usable one decides.
		for _, sub := range st.VideoData.Subtitle.List {
			if _, ok := language.Normalize(sub.Lan); ok {
				out.captions = append(out.captions, language.CaptionTrack{Code: sub.Lan})
			}
		}
		if out.title == "" {
			out.title = st.VideoData.Title
		}
		if mid := cast.ToString(st.UpData.Mid); mid != "" && mid != "0" {
			out.channel = mid
		}
	}
	return out, nil
}
