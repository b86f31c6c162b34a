package models

// VideoIdentity describes the video a tick belongs to.
type VideoIdentity struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
}

// WatchTick is one accounting request: seconds of language watched on date.
type WatchTick struct {
	Language string         `json:"language"`
	Seconds  int64          `json:"seconds"`
	Date     string         `json:"date,omitempty"`
	Video    *VideoIdentity `json:"video,omitempty"`
}

// EntryMatch is the structural identity of a legacy entry without a uid.
type EntryMatch struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Lang      string `json:"lang"`
	ChannelID string `json:"channelId"`
	Seconds   int64  `json:"seconds"`
}

// EntryIdentity selects a video log entry, by uid first, then video id, then Match.
type EntryIdentity struct {
	UID     string      `json:"uid,omitempty"`
	VideoID string      `json:"videoId,omitempty"`
	Match   *EntryMatch `json:"match,omitempty"`
}

func (i EntryIdentity) IsEmpty() bool {
	return i.UID == "" && i.VideoID == "" && i.Match == nil
}
