package language

import "strings"

// Unknown is recorded when detection gave up after every retry.
const Unknown = "unknown"

type entry struct {
	code    string
	display string
}

var languages = []entry{
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"zh", "Chinese"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"ar", "Arabic"},
	{"ru", "Russian"},
	{"tr", "Turkish"},
	{"sv", "Swedish"},
	{"nl", "Dutch"},
	{"pl", "Polish"},
	{"el", "Greek"},
	{"th", "Thai"},
	{"vi", "Vietnamese"},
	{"hi", "Hindi"},
	{"id", "Indonesian"},
}

var byCode map[string]*entry

func init() {
	byCode = make(map[string]*entry, len(languages))
	for i := range languages {
		byCode[languages[i].code] = &languages[i]
	}
}

// Normalize reduces a tag such as "en-US" or "zh_Hans" to its primary subtag and
// returns it when supported. ok is false for anything outside the supported set.
func Normalize(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if _, ok := byCode[code]; !ok {
		return "", false
	}
	return code, true
}

func IsSupported(code string) bool {
	_, ok := byCode[code]
	return ok
}

// DisplayName returns the English name for code. Unknown and unsupported codes
// are returned as given.
func DisplayName(code string) string {
	if e, ok := byCode[code]; ok {
		return e.display
	}
	if code == Unknown {
		return "Unknown"
	}
	return code
}

// Supported lists the supported codes in table order.
func Supported() []string {
	out := make([]string, len(languages))
	for i, e := range languages {
		out[i] = e.code
	}
	return out
}
