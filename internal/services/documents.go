package services

import (
	"context"
	"fmt"
	"langtrack/internal/models"
	"langtrack/internal/storage"

	json "github.com/goccy/go-json"
)

// documents is the decoded view of the store keys one operation works on.
type documents struct {
	tallies  models.Tallies
	log      models.VideoLog
	channels models.ChannelLanguageMap
	settings models.Settings
}

// loadDocuments reads and decodes keys. Absent keys decode to empty values and
// settings are always merged over the defaults.
func loadDocuments(ctx context.Context, store storage.Store, keys ...string) (*documents, error) {
	raw, err := store.Get(ctx, keys)
	if err != nil {
		return nil, err
	}

	docs := &documents{
		tallies:  make(models.Tallies),
		log:      make(models.VideoLog),
		channels: make(models.ChannelLanguageMap),
		settings: models.DefaultSettings(),
	}
	for _, k := range keys {
		val, ok := raw[k]
		if !ok || len(val) == 0 {
			continue
		}
		var target any
		switch k {
		case storage.KeyTrackingData:
			target = &docs.tallies
		case storage.KeyVideoLog:
			target = &docs.log
		case storage.KeyChannelLanguages:
			target = &docs.channels
		case storage.KeySettings:
			target = &docs.settings
		default:
			continue
		}
		if err := json.Unmarshal(val, target); err != nil {
			return nil, fmt.Errorf("decode %s: %w", k, err)
		}
	}
	if docs.tallies == nil {
		docs.tallies = make(models.Tallies)
	}
	if docs.log == nil {
		docs.log = make(models.VideoLog)
	}
	if docs.channels == nil {
		docs.channels = make(models.ChannelLanguageMap)
	}
	if docs.settings.LanguageGoals == nil {
		docs.settings.LanguageGoals = map[string]int{}
	}
	if docs.settings.TargetLanguages == nil {
		docs.settings.TargetLanguages = []string{}
	}
	return docs, nil
}

// encodeDocuments marshals the named keys of docs for one Set call.
func encodeDocuments(docs *documents, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		var value any
		switch k {
		case storage.KeyTrackingData:
			value = docs.tallies
		case storage.KeyVideoLog:
			value = docs.log
		case storage.KeyChannelLanguages:
			value = docs.channels
		case storage.KeySettings:
			value = docs.settings
		default:
			return nil, fmt.Errorf("unknown document %q", k)
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		out[k] = data
	}
	return out, nil
}
