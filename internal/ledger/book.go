package ledger

import (
	"langtrack/internal/models"
	"sort"
)

// Book is the in-memory working copy of the ledger documents for one operation.
type Book struct {
	Tallies models.Tallies
	Log     models.VideoLog
	NewUID  UIDFunc
}

func NewBook(tallies models.Tallies, log models.VideoLog) *Book {
	if tallies == nil {
		tallies = make(models.Tallies)
	}
	if log == nil {
		log = make(models.VideoLog)
	}
	return &Book{Tallies: tallies, Log: log, NewUID: NewUID}
}

// ApplyTick credits seconds of lang on date. With a video identity the video's
// entry is created or extended as well, and returned.
func (b *Book) ApplyTick(date, lang string, seconds int64, video *models.VideoIdentity) *models.VideoLogEntry {
	b.Tallies.Day(date)[lang] += seconds

	if video == nil || video.VideoID == "" {
		return nil
	}

	entries := b.Log[date]
	for _, e := range entries {
		if e == nil || e.ID != video.VideoID {
			continue
		}
		EnsureUID(e, b.NewUID)
		breakdown := EnsureBreakdown(e)
		e.Seconds += seconds
		breakdown[lang] += seconds
		if e.Title == "" {
			e.Title = video.Title
		}
		if e.ChannelID == "" {
			e.ChannelID = video.ChannelID
		}
		// Once known, the dominant language never reverts to unknown.
		if lang != models.UnknownLanguage {
			e.Lang = lang
		}
		if e.Lang == "" {
			e.Lang = lang
		}
		return e
	}

	e := &models.VideoLogEntry{
		ID:            video.VideoID,
		UID:           b.NewUID(),
		Title:         video.Title,
		ChannelID:     video.ChannelID,
		Lang:          lang,
		Seconds:       seconds,
		LangBreakdown: map[string]int64{lang: seconds},
	}
	b.Log[date] = append(entries, e)
	return e
}

// RemoveEntry reverses and deletes the entry selected by id on date. It returns
// the removed entry, or nil when nothing matched.
func (b *Book) RemoveEntry(date string, id models.EntryIdentity) *models.VideoLogEntry {
	entries := b.Log[date]
	idx := FindEntry(entries, id)
	if idx < 0 {
		return nil
	}
	e := entries[idx]

	if day, ok := b.Tallies[date]; ok {
		SubtractEntry(day, e)
		PruneDate(b.Tallies, date)
	}

	entries = append(entries[:idx], entries[idx+1:]...)
	if len(entries) == 0 {
		delete(b.Log, date)
	} else {
		b.Log[date] = entries
	}
	return e
}

// RemapChannel moves the unknown seconds of every entry of channelID to lang,
// mirroring each move in that date's tally. It returns the total seconds moved.
func (b *Book) RemapChannel(channelID, lang string) int64 {
	dates := make([]string, 0, len(b.Log))
	for d := range b.Log {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var total int64
	for _, date := range dates {
		for _, e := range b.Log[date] {
			if e == nil || e.ChannelID != channelID {
				continue
			}
			moved := MoveUnknown(e, lang)
			if moved <= 0 {
				continue
			}
			total += moved
			day, ok := b.Tallies[date]
			if !ok {
				continue
			}
			day[models.UnknownLanguage] -= moved
			day[lang] += moved
			PruneDate(b.Tallies, date)
		}
	}
	return total
}
