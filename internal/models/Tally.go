package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// UnknownLanguage is the sentinel used when detection gave up.
	UnknownLanguage = "unknown"
)

// ErrInvalidInput marks a request rejected before any state was touched.
var ErrInvalidInput = errors.New("invalid input")

// DayTally maps a language code to whole seconds watched on one date.
type DayTally map[string]int64

// Tallies maps a YYYY-MM-DD date to its DayTally.
type Tallies map[string]DayTally

func (d DayTally) Total() int64 {
	var total int64
	for _, v := range d {
		total += v
	}
	return total
}

// Day returns the tally for date, creating it when absent.
func (t Tallies) Day(date string) DayTally {
	day, ok := t[date]
	if !ok {
		day = make(DayTally)
		t[date] = day
	}
	return day
}

func Today() string {
	return time.Now().Format(DateLayout)
}

// ResolveDate returns today's local date for an empty value and validates anything else.
func ResolveDate(date string) (string, error) {
	if date == "" {
		return Today(), nil
	}
	if _, err := time.ParseInLocation(DateLayout, date, time.Local); err != nil {
		return "", fmt.Errorf("%w: malformed date %q", ErrInvalidInput, date)
	}
	return date, nil
}
