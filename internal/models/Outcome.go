package models

type SkipReason string

const (
	SkipTrackingDisabled    SkipReason = "trackingDisabled"
	SkipLanguageNotTargeted SkipReason = "languageNotTargeted"
	SkipStorageUnavailable  SkipReason = "storageUnavailable"
)

// Outcome is the result of a ledger mutation. A skipped but accepted outcome is a
// deliberate policy no-op; storageUnavailable is reported with Accepted false.
type Outcome struct {
	Accepted      bool       `json:"accepted"`
	SkippedReason SkipReason `json:"skippedReason,omitempty"`
}

func Accepted() Outcome {
	return Outcome{Accepted: true}
}

func Skipped(reason SkipReason) Outcome {
	return Outcome{Accepted: true, SkippedReason: reason}
}

func StorageUnavailable() Outcome {
	return Outcome{Accepted: false, SkippedReason: SkipStorageUnavailable}
}

// Label is the outcome name used for metrics.
func (o Outcome) Label() string {
	if o.SkippedReason != "" {
		return string(o.SkippedReason)
	}
	if o.Accepted {
		return "accepted"
	}
	return "rejected"
}
