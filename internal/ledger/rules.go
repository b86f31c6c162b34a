// Package ledger holds the reconciliation rules for day tallies and the video log.
// Nothing here touches storage; callers load the documents, apply a rule and
// persist the result inside one serialized operation.
package ledger

import (
	"langtrack/internal/models"
	"sort"
)

// Prune removes zero and negative buckets from day.
func Prune(day models.DayTally) {
	for lang, v := range day {
		if v <= 0 {
			delete(day, lang)
		}
	}
}

// PruneDate prunes the tally for date and drops the date once it is empty.
func PruneDate(tallies models.Tallies, date string) {
	day, ok := tallies[date]
	if !ok {
		return
	}
	Prune(day)
	if len(day) == 0 {
		delete(tallies, date)
	}
}

// EnsureBreakdown seeds a missing breakdown from the entry's lang and seconds.
func EnsureBreakdown(e *models.VideoLogEntry) map[string]int64 {
	if e.LangBreakdown != nil {
		return e.LangBreakdown
	}
	e.LangBreakdown = make(map[string]int64)
	lang := e.Lang
	if lang == "" {
		lang = models.UnknownLanguage
	}
	if e.Seconds > 0 {
		e.LangBreakdown[lang] = e.Seconds
	}
	return e.LangBreakdown
}

// subtractCapped takes up to seconds from day[lang] and returns what it took.
func subtractCapped(day models.DayTally, lang string, seconds int64) int64 {
	if lang == "" || seconds <= 0 {
		return 0
	}
	available := day[lang]
	if available <= 0 {
		return 0
	}
	used := min(available, seconds)
	day[lang] = available - used
	if day[lang] <= 0 {
		delete(day, lang)
	}
	return used
}

// SubtractEntry reverses e's contribution out of day without driving any bucket
// negative. Breakdown buckets go first, each capped at the tally balance. Seconds
// the breakdown does not explain come from e.Lang, then unknown, then the largest
// remaining balances. That last step is best effort for legacy entries; it keeps
// the tally non-negative but cannot recover the true historical attribution.
func SubtractEntry(day models.DayTally, e *models.VideoLogEntry) {
	if day == nil || e == nil {
		return
	}
	remaining := max(e.Seconds, 0)

	if e.LangBreakdown != nil {
		for _, lang := range sortedKeys(e.LangBreakdown) {
			seconds := e.LangBreakdown[lang]
			if seconds <= 0 {
				continue
			}
			subtractCapped(day, lang, seconds)
			remaining -= seconds
		}
		remaining = max(remaining, 0)
	}

	if remaining > 0 && e.Lang != "" {
		remaining -= subtractCapped(day, e.Lang, remaining)
	}
	if remaining > 0 {
		remaining -= subtractCapped(day, models.UnknownLanguage, remaining)
	}
	if remaining > 0 {
		for _, lang := range byBalanceDesc(day) {
			if remaining <= 0 {
				break
			}
			remaining -= subtractCapped(day, lang, remaining)
		}
	}

	Prune(day)
}

// MoveUnknown relabels e's unknown seconds as lang and returns how many moved.
// Entries without unknown seconds are left untouched.
func MoveUnknown(e *models.VideoLogEntry, lang string) int64 {
	if e == nil || lang == "" || lang == models.UnknownLanguage {
		return 0
	}
	breakdown := EnsureBreakdown(e)
	unknown := breakdown[models.UnknownLanguage]
	if unknown <= 0 {
		return 0
	}
	breakdown[lang] += unknown
	delete(breakdown, models.UnknownLanguage)
	e.Lang = lang
	return unknown
}

// MatchesFallback compares every identifying field of a legacy entry.
func MatchesFallback(e *models.VideoLogEntry, m *models.EntryMatch) bool {
	if e == nil || m == nil {
		return false
	}
	return e.ID == m.ID &&
		e.Title == m.Title &&
		e.Lang == m.Lang &&
		e.ChannelID == m.ChannelID &&
		e.Seconds == m.Seconds
}

// FindEntry returns the index of the entry selected by id, or -1.
// A uid match is preferred over a video id match, which beats the structural match.
func FindEntry(entries []*models.VideoLogEntry, id models.EntryIdentity) int {
	if id.UID != "" {
		for i, e := range entries {
			if e != nil && e.UID == id.UID {
				return i
			}
		}
	}
	if id.VideoID != "" {
		for i, e := range entries {
			if e != nil && e.ID == id.VideoID {
				return i
			}
		}
	}
	if id.Match != nil {
		for i, e := range entries {
			if MatchesFallback(e, id.Match) {
				return i
			}
		}
	}
	return -1
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// byBalanceDesc orders languages by balance, largest first, ties by code.
func byBalanceDesc(day models.DayTally) []string {
	keys := sortedKeys(day)
	sort.SliceStable(keys, func(i, j int) bool { return day[keys[i]] > day[keys[j]] })
	return keys
}
