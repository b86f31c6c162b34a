package commands

import (
	"errors"
	"fmt"
	"langtrack/internal/models"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

var ErrUnknownCommand = errors.New("unknown command type")

// envelope is the flat wire form of every command. Numbers are decoded loosely
// because the browser side sends whatever its timers produced.
type envelope struct {
	Type       string          `json:"type"`
	Lang       string          `json:"lang"`
	Seconds    any             `json:"seconds"`
	Minutes    any             `json:"minutes"`
	Date       string          `json:"date"`
	VideoID    string          `json:"videoId"`
	Title      string          `json:"title"`
	ChannelID  string          `json:"channelId"`
	EntryUID   string          `json:"entryUid"`
	EntryMatch *wireMatch      `json:"entryMatch"`
	Settings   json.RawMessage `json:"settings"`
}

type wireMatch struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Lang      string `json:"lang"`
	ChannelID string `json:"channelId"`
	Seconds   any    `json:"seconds"`
}

// Decode parses a JSON envelope into its Command. Malformed payloads wrap
// models.ErrInvalidInput; an unrecognised type also wraps ErrUnknownCommand.
func Decode(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err)
	}

	switch env.Type {
	case TypeAddWatchTime:
		seconds, err := toSeconds(env.Seconds)
		if err != nil {
			return nil, err
		}
		cmd := RecordWatchSeconds{Tick: models.WatchTick{
			Language: env.Lang,
			Seconds:  seconds,
			Date:     env.Date,
		}}
		// A channel id alone still resolves unknown ticks through the channel map.
		if env.VideoID != "" || env.ChannelID != "" {
			cmd.Tick.Video = &models.VideoIdentity{
				VideoID:   env.VideoID,
				Title:     env.Title,
				ChannelID: env.ChannelID,
			}
		}
		return cmd, nil

	case TypeAddManualTime:
		minutes, err := cast.ToFloat64E(orZero(env.Minutes))
		if err != nil {
			return nil, fmt.Errorf("%w: minutes: %s", models.ErrInvalidInput, err)
		}
		return RecordManualMinutes{Language: env.Lang, Minutes: minutes, Date: env.Date}, nil

	case TypeGetTrackingData:
		return GetDayTallies{}, nil
	case TypeGetVideoLog:
		return GetVideoLog{}, nil
	case TypeGetSettings:
		return GetSettings{}, nil
	case TypeGetChannelLanguages:
		return GetChannelLanguageMap{}, nil

	case TypeSaveSettings:
		var patch models.SettingsPatch
		if len(env.Settings) > 0 {
			if err := json.Unmarshal(env.Settings, &patch); err != nil {
				return nil, fmt.Errorf("%w: settings: %s", models.ErrInvalidInput, err)
			}
		}
		return SaveSettings{Patch: patch}, nil

	case TypeSetChannelLanguage:
		return SetChannelLanguage{ChannelID: env.ChannelID, Language: env.Lang}, nil

	case TypeRemoveVideoEntry:
		id := models.EntryIdentity{UID: env.EntryUID, VideoID: env.VideoID}
		if env.EntryMatch != nil {
			seconds, err := toSeconds(env.EntryMatch.Seconds)
			if err != nil {
				return nil, err
			}
			id.Match = &models.EntryMatch{
				ID:        env.EntryMatch.ID,
				Title:     env.EntryMatch.Title,
				Lang:      env.EntryMatch.Lang,
				ChannelID: env.EntryMatch.ChannelID,
				Seconds:   seconds,
			}
		}
		return RemoveVideoLogEntry{Date: env.Date, Identity: id}, nil
	}

	return nil, fmt.Errorf("%w: %w %q", models.ErrInvalidInput, ErrUnknownCommand, env.Type)
}

// toSeconds truncates fractional seconds toward zero.
func toSeconds(v any) (int64, error) {
	f, err := cast.ToFloat64E(orZero(v))
	if err != nil {
		return 0, fmt.Errorf("%w: seconds: %s", models.ErrInvalidInput, err)
	}
	return int64(f), nil
}

func orZero(v any) any {
	if v == nil {
		return 0
	}
	return v
}
