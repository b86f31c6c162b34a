package session

import (
	"langtrack/internal/signals"
	"net/url"
	"regexp"
	"strings"
)

var bilibiliVideoPath = regexp.MustCompile(`^/video/([A-Za-z0-9]+)`)

// Page is what a navigation URL says about the surface being watched.
type Page struct {
	URL      string           `json:"url"`
	Platform signals.Platform `json:"platform,omitempty"`
	VideoID  string           `json:"videoId,omitempty"`
	IsWatch  bool             `json:"isWatchPage"`
}

func (p Page) Ref() signals.VideoRef {
	return signals.VideoRef{Platform: p.Platform, VideoID: p.VideoID}
}

// ParsePage recognises YouTube /watch?v=ID and Bilibili /video/ID pages.
// Anything else is a non-watch page.
func ParsePage(rawURL string) Page {
	p := Page{URL: rawURL}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return p
	}
	host := strings.ToLower(u.Hostname())

	switch {
	case hostIs(host, "youtube.com"):
		p.Platform = signals.PlatformYouTube
		if id := u.Query().Get("v"); u.Path == "/watch" && id != "" {
			p.VideoID = id
			p.IsWatch = true
		}
	case hostIs(host, "bilibili.com"):
		p.Platform = signals.PlatformBilibili
		if m := bilibiliVideoPath.FindStringSubmatch(u.Path); m != nil {
			p.VideoID = m[1]
			p.IsWatch = true
		}
	}
	return p
}

func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
