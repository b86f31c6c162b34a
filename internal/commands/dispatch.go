package commands

import (
	"context"
	"fmt"
	"langtrack/internal/models"
	"langtrack/internal/services"
)

type TrackingDataResponse struct {
	TrackingData models.Tallies `json:"trackingData"`
}

type VideoLogResponse struct {
	VideoLog models.VideoLog `json:"videoLog"`
}

type ChannelLanguagesResponse struct {
	ChannelLanguages models.ChannelLanguageMap `json:"channelLanguages"`
}

type SettingsResponse struct {
	Settings models.Settings `json:"settings"`
	Outcome  *models.Outcome `json:"outcome,omitempty"`
}

// Dispatch runs cmd against svc and returns the value to serialize back.
// Mutations answer with their models.Outcome.
func Dispatch(ctx context.Context, svc services.TrackingServiceInterface, cmd Command) (any, error) {
	switch c := cmd.(type) {
	case RecordWatchSeconds:
		return svc.RecordWatchSeconds(ctx, c.Tick)
	case RecordManualMinutes:
		return svc.RecordManualMinutes(ctx, c.Language, c.Minutes, c.Date)
	case RemoveVideoLogEntry:
		return svc.RemoveVideoLogEntry(ctx, c.Date, c.Identity)
	case SetChannelLanguage:
		return svc.SetChannelLanguage(ctx, c.ChannelID, c.Language)
	case SaveSettings:
		settings, outcome, err := svc.SaveSettings(ctx, c.Patch)
		if err != nil {
			return nil, err
		}
		return SettingsResponse{Settings: settings, Outcome: &outcome}, nil
	case GetDayTallies:
		return TrackingDataResponse{TrackingData: svc.GetDayTallies(ctx)}, nil
	case GetVideoLog:
		return VideoLogResponse{VideoLog: svc.GetVideoLog(ctx)}, nil
	case GetSettings:
		return SettingsResponse{Settings: svc.GetSettings(ctx)}, nil
	case GetChannelLanguageMap:
		return ChannelLanguagesResponse{ChannelLanguages: svc.GetChannelLanguageMap(ctx)}, nil
	case nil:
		return nil, fmt.Errorf("%w: nil command", models.ErrInvalidInput)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}
