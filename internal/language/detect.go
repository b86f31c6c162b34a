package language

// CaptionTrack is one caption track offered for a video.
type CaptionTrack struct {
	Code string `json:"code"`
	ASR  bool   `json:"asr"`
}

// Signals bundles everything known about a video's language at one moment.
type Signals struct {
	Captions      []CaptionTrack `json:"captions,omitempty"`
	DeclaredAudio string         `json:"declaredAudio,omitempty"`
	Title         string         `json:"title,omitempty"`
}

// Source names the signal that decided a detection.
type Source string

const (
	SourceNone      Source = ""
	SourceASR       Source = "captions-asr"
	SourceCaption   Source = "captions"
	SourceMetadata  Source = "metadata"
	SourceTitle     Source = "title"
	SourceTitleSwap Source = "title-override"
)

// Detect returns the best language for s. ok is false when nothing resolved, in
// which case the caller decides whether to retry or settle on Unknown.
func Detect(s Signals) (string, bool) {
	lang, src := DetectWithSource(s)
	return lang, src != SourceNone
}

// DetectWithSource is Detect that also reports which signal won.
func DetectWithSource(s Signals) (string, Source) {
	if lang, src := fromCaptions(s.Captions); src != SourceNone {
		return lang, src
	}

	titleLang, titleOK := DetectFromTitle(s.Title)

	if declared, ok := Normalize(s.DeclaredAudio); ok {
		// Platform metadata swaps es and fr often enough that a title guess
		// for the other one of the pair wins.
		if titleOK && isSwappedPair(titleLang, declared) {
			return titleLang, SourceTitleSwap
		}
		return declared, SourceMetadata
	}

	if titleOK {
		return titleLang, SourceTitle
	}
	return "", SourceNone
}

// fromCaptions trusts the first ASR track when it names a code, even an
// unsupported one, and otherwise the first track.
func fromCaptions(tracks []CaptionTrack) (string, Source) {
	for _, t := range tracks {
		if !t.ASR {
			continue
		}
		if t.Code == "" {
			break
		}
		if lang, ok := Normalize(t.Code); ok {
			return lang, SourceASR
		}
		return "", SourceNone
	}
	if len(tracks) > 0 && tracks[0].Code != "" {
		if lang, ok := Normalize(tracks[0].Code); ok {
			return lang, SourceCaption
		}
	}
	return "", SourceNone
}

func isSwappedPair(a, b string) bool {
	return (a == "es" && b == "fr") || (a == "fr" && b == "es")
}
