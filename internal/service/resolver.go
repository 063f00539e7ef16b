package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/onk/blogchecker/internal/model"
	"github.com/onk/blogchecker/internal/repository"
)

// rewriteRule maps the path of a site URL to the path of its feed
type rewriteRule func(path string) string

// rewriteRules is keyed by site kind. Kinds without a rule use discovery.
var rewriteRules = map[model.Kind]rewriteRule{
	// https://{blog}.hatenablog.com/feed
	model.KindHatenaBlog: func(string) string {
		return "/feed"
	},
	// https://speakerdeck.com/{username}.atom
	model.KindSpeakerDeck: func(path string) string {
		return "/" + stripSlashes(path) + ".atom"
	},
	// https://scrapbox.io/api/feed/{projectname}
	model.KindScrapbox: func(path string) string {
		return "/api/feed/" + stripSlashes(path)
	},
	// https://www.slideshare.net/rss/user/{username}
	model.KindSlideShare: func(path string) string {
		return "/rss/user/" + stripSlashes(path)
	},
}

func stripSlashes(path string) string {
	return strings.ReplaceAll(path, "/", "")
}

// Resolver derives the feed URL of a site
type Resolver struct {
	discoverer repository.FeedDiscoverer
}

// NewResolver creates a Resolver that falls back to discoverer
func NewResolver(discoverer repository.FeedDiscoverer) *Resolver {
	return &Resolver{discoverer: discoverer}
}

// Resolve returns the feed URL for site. ok is false when no feed was found.
// Platform kinds rewrite the path and keep scheme and host. Other kinds take
// the first candidate from feed discovery.
func (r *Resolver) Resolve(ctx context.Context, site model.Site) (feedURL string, ok bool, err error) {
	if rule, found := rewriteRules[site.Kind]; found {
		u, err := url.Parse(site.URL)
		if err != nil {
			return "", false, fmt.Errorf("%w: invalid site URL %q: %w", model.ErrConfiguration, site.URL, err)
		}
		u.Path = rule(u.Path)
		u.RawPath = ""
		return u.String(), true, nil
	}

	if r.discoverer == nil {
		return "", false, nil
	}

	candidates, err := r.discoverer.Discover(ctx, site.URL)
	if err != nil {
		return "", false, fmt.Errorf("discovering feed for %s: %w", site.URL, err)
	}
	if len(candidates) == 0 {
		return "", false, nil
	}
	return candidates[0], true, nil
}
