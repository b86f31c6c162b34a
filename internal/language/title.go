package language

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	minScriptMatches = 3
	minWordScore     = 2
)

type runeRange struct{ lo, hi rune }

// Japanese precedes Chinese: kana decides before the shared CJK ideographs do.
var scriptRanges = []struct {
	lang   string
	ranges []runeRange
}{
	{"ja", []runeRange{{0x3040, 0x309f}, {0x30a0, 0x30ff}}},
	{"ko", []runeRange{{0xac00, 0xd7af}, {0x1100, 0x11ff}}},
	{"zh", []runeRange{{0x4e00, 0x9fff}, {0x3400, 0x4dbf}}},
	{"ar", []runeRange{{0x0600, 0x06ff}, {0x0750, 0x077f}}},
	{"ru", []runeRange{{0x0400, 0x04ff}}},
	{"el", []runeRange{{0x0370, 0x03ff}}},
	{"th", []runeRange{{0x0e00, 0x0e7f}}},
	{"hi", []runeRange{{0x0900, 0x097f}}},
}

const (
	spanishMarks  = "ñ¿¡"
	spanishAcutes = "áéíóú"
	frenchMarks   = "àâçèêëîïôûùüÿœæ"
)

// DetectFromTitle guesses a language from title text alone. ok is false when the
// title carries too little evidence or two languages tie.
func DetectFromTitle(title string) (string, bool) {
	if title == "" {
		return "", false
	}
	lower := strings.ToLower(title)

	if lang, ok := detectScript(lower); ok {
		return lang, true
	}

	french := strings.ContainsAny(lower, frenchMarks)
	spanish := strings.ContainsAny(lower, spanishMarks) ||
		(strings.ContainsAny(lower, spanishAcutes) && !french)

	type score struct {
		lang  string
		count int
	}
	tokens := latinTokens(lower)
	var scores []score
	for i, fw := range functionWords {
		count := 0
		for _, tok := range tokens {
			if _, ok := wordSets[i][tok]; ok {
				count++
			}
		}
		if fw.lang == "es" && spanish && count > 0 {
			count++
		}
		if fw.lang == "fr" && french && count > 0 {
			count++
		}
		if count >= 1 {
			scores = append(scores, score{fw.lang, count})
		}
	}

	if len(scores) == 0 {
		switch {
		case spanish:
			return "es", true
		case french:
			return "fr", true
		}
		return "", false
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].count > scores[j].count })
	if scores[0].count < minWordScore {
		return "", false
	}
	if len(scores) == 1 || scores[0].count > scores[1].count {
		return scores[0].lang, true
	}
	return "", false
}

func detectScript(s string) (string, bool) {
	for _, sr := range scriptRanges {
		matches := 0
		for _, r := range s {
			for _, rr := range sr.ranges {
				if r >= rr.lo && r <= rr.hi {
					matches++
					break
				}
			}
		}
		if matches >= minScriptMatches {
			return sr.lang, true
		}
	}
	return "", false
}

// latinTokens strips diacritics and everything that is neither a letter nor
// whitespace, then drops single-letter tokens.
func latinTokens(s string) []string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsSpace(r)
		})),
	)
	cleaned, _, err := transform.String(t, s)
	if err != nil {
		cleaned = s
	}

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
