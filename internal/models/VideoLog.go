package models

// VideoLogEntry is one distinct video watched on one day.
// Uid and LangBreakdown may be absent on entries written by older versions.
type VideoLogEntry struct {
	ID            string           `json:"id"`
	UID           string           `json:"uid,omitempty"`
	Title         string           `json:"title"`
	ChannelID     string           `json:"channelId,omitempty"`
	Lang          string           `json:"lang"`
	Seconds       int64            `json:"seconds"`
	LangBreakdown map[string]int64 `json:"langBreakdown,omitempty"`
}

// VideoLog maps a date to the entries logged on it.
type VideoLog map[string][]*VideoLogEntry

func (e *VideoLogEntry) BreakdownTotal() int64 {
	var total int64
	for _, v := range e.LangBreakdown {
		total += v
	}
	return total
}

// ChannelLanguageMap maps a channel identifier to a language code.
type ChannelLanguageMap map[string]string
