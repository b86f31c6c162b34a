package models

import "slices"

type ProgressRingMode string

const (
	RingModeTotal ProgressRingMode = "total"
	RingModeSplit ProgressRingMode = "split"
)

type Settings struct {
	DailyGoalMinutes     int              `json:"dailyGoalMinutes"`
	TargetLanguages      []string         `json:"targetLanguages"`
	TrackingEnabled      bool             `json:"trackingEnabled"`
	LanguageGoals        map[string]int   `json:"languageGoals"`
	ProgressRingMode     ProgressRingMode `json:"progressRingMode"`
	ShowTotalInSplitRing bool             `json:"showTotalInSplitRing"`
	ShowStreakCounter    bool             `json:"showStreakCounter"`
	BilibiliEnabled      bool             `json:"bilibiliEnabled"`
}

// SettingsPatch carries a partial update; nil fields keep the current value.
type SettingsPatch struct {
	DailyGoalMinutes     *int              `json:"dailyGoalMinutes,omitempty"`
	TargetLanguages      *[]string         `json:"targetLanguages,omitempty"`
	TrackingEnabled      *bool             `json:"trackingEnabled,omitempty"`
	LanguageGoals        *map[string]int   `json:"languageGoals,omitempty"`
	ProgressRingMode     *ProgressRingMode `json:"progressRingMode,omitempty"`
	ShowTotalInSplitRing *bool             `json:"showTotalInSplitRing,omitempty"`
	ShowStreakCounter    *bool             `json:"showStreakCounter,omitempty"`
	BilibiliEnabled      *bool             `json:"bilibiliEnabled,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		DailyGoalMinutes: 30,
		TargetLanguages:  []string{"es", "fr"},
		TrackingEnabled:  true,
		LanguageGoals:    map[string]int{},
		ProgressRingMode: RingModeTotal,
	}
}

// Apply returns a copy of s with every non-nil patch field applied.
func (s Settings) Apply(p SettingsPatch) Settings {
	out := s
	out.TargetLanguages = slices.Clone(s.TargetLanguages)
	if p.DailyGoalMinutes != nil {
		out.DailyGoalMinutes = *p.DailyGoalMinutes
	}
	if p.TargetLanguages != nil {
		out.TargetLanguages = slices.Clone(*p.TargetLanguages)
	}
	if p.TrackingEnabled != nil {
		out.TrackingEnabled = *p.TrackingEnabled
	}
	if p.LanguageGoals != nil {
		out.LanguageGoals = *p.LanguageGoals
	}
	if p.ProgressRingMode != nil {
		out.ProgressRingMode = *p.ProgressRingMode
	}
	if p.ShowTotalInSplitRing != nil {
		out.ShowTotalInSplitRing = *p.ShowTotalInSplitRing
	}
	if p.ShowStreakCounter != nil {
		out.ShowStreakCounter = *p.ShowStreakCounter
	}
	if p.BilibiliEnabled != nil {
		out.BilibiliEnabled = *p.BilibiliEnabled
	}
	if out.TargetLanguages == nil {
		out.TargetLanguages = []string{}
	}
	if out.LanguageGoals == nil {
		out.LanguageGoals = map[string]int{}
	}
	return out
}

// Tracks reports whether lang is accepted by the target set.
// An empty target set tracks every language, and unknown is always accepted.
func (s Settings) Tracks(lang string) bool {
	if lang == UnknownLanguage || len(s.TargetLanguages) == 0 {
		return true
	}
	return slices.Contains(s.TargetLanguages, lang)
}

// GoalSeconds is the daily goal for lang, falling back to the global goal.
func (s Settings) GoalSeconds(lang string) int64 {
	if g, ok := s.LanguageGoals[lang]; ok && g > 0 {
		return int64(g) * 60
	}
	return int64(s.DailyGoalMinutes) * 60
}
