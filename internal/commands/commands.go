// Package commands is the closed set of ledger messages accepted over the
// command endpoint, with their JSON envelope decoding and dispatch.
package commands

import (
	"langtrack/internal/models"
)

// Command is implemented only by the types in this package.
type Command interface {
	command()
}

type RecordWatchSeconds struct {
	Tick models.WatchTick
}

type RecordManualMinutes struct {
	Language string
	Minutes  float64
	Date     string
}

type GetDayTallies struct{}

type GetVideoLog struct{}

type GetSettings struct{}

type SaveSettings struct {
	Patch models.SettingsPatch
}

type GetChannelLanguageMap struct{}

type SetChannelLanguage struct {
	ChannelID string
	Language  string
}

type RemoveVideoLogEntry struct {
	Date     string
	Identity models.EntryIdentity
}

func (RecordWatchSeconds) command()    {}
func (RecordManualMinutes) command()   {}
func (GetDayTallies) command()         {}
func (GetVideoLog) command()           {}
func (GetSettings) command()           {}
func (SaveSettings) command()          {}
func (GetChannelLanguageMap) command() {}
func (SetChannelLanguage) command()    {}
func (RemoveVideoLogEntry) command()   {}

// Envelope type names.
const (
	TypeAddWatchTime        = "addWatchTime"
	TypeAddManualTime       = "addManualTime"
	TypeGetTrackingData     = "getTrackingData"
	TypeGetVideoLog         = "getVideoLog"
	TypeGetSettings         = "getSettings"
	TypeSaveSettings        = "saveSettings"
	TypeGetChannelLanguages = "getChannelLanguages"
	TypeSetChannelLanguage  = "setChannelLanguage"
	TypeRemoveVideoEntry    = "removeVideoEntry"
)
