package model

import "strings"

// Kind selects the feed URL rewrite rule for a site
type Kind string

const (
	KindHatenaBlog  Kind = "hatenablog"
	KindSpeakerDeck Kind = "speakerdeck"
	KindScrapbox    Kind = "scrapbox"
	KindSlideShare  Kind = "slideshare"
	KindOther       Kind = "other"
)

// ParseKind maps a kind name to a Kind. Unknown names map to KindOther.
func ParseKind(s string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindHatenaBlog, KindSpeakerDeck, KindScrapbox, KindSlideShare:
		return k
	default:
		return KindOther
	}
}

// Site describes a site whose feed should be checked
type Site struct {
	Kind Kind   `json:"kind"`
	URL  string `json:"url"`
}
