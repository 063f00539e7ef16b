package repository

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// FeedDiscoverer finds candidate feed URLs for a page
type FeedDiscoverer interface {
	Discover(ctx context.Context, pageURL string) ([]string, error)
}

var feedMediaTypes = map[string]bool{
	"application/rss+xml":   true,
	"application/atom+xml":  true,
	"application/rdf+xml":   true,
	"application/feed+json": true,
	"application/xml":       true,
	"text/xml":              true,
}

// linkFeedTypes are the link[type] values treated as feeds
var linkFeedTypes = map[string]bool{
	"application/rss+xml":   true,
	"application/atom+xml":  true,
	"application/rdf+xml":   true,
	"application/feed+json": true,
}

// htmlDiscoverer fetches a page and reads its feed autodiscovery links
type htmlDiscoverer struct {
	fetcher FeedFetcher
}

// NewFeedDiscoverer creates a FeedDiscoverer that fetches pages with fetcher
func NewFeedDiscoverer(fetcher FeedFetcher) FeedDiscoverer {
	return &htmlDiscoverer{fetcher: fetcher}
}

// Discover returns feed URLs in document order without duplicates. When the
// page itself is served as a feed, its own URL is the only candidate.
func (d *htmlDiscoverer) Discover(ctx context.Context, pageURL string) ([]string, error) {
	result, err := d.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching page for feed discovery: %w", err)
	}

	if isFeedContentType(result.ContentType) {
		return []string{result.URL}, nil
	}

	base, err := url.Parse(result.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	reader, err := charset.NewReader(bytes.NewReader(result.Body), result.ContentType)
	if err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing page HTML: %w", err)
	}

	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if resolved, err := base.Parse(strings.TrimSpace(href)); err == nil {
			base = resolved
		}
	}

	return FeedLinks(doc, base), nil
}

// FeedLinks extracts alternate feed links from doc, resolved against base
func FeedLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	candidates := []string{}

	doc.Find("link[href]").Each(func(i int, s *goquery.Selection) {
		if !hasRel(s.AttrOr("rel", ""), "alternate") {
			return
		}
		if !linkFeedTypes[strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))] {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(s.AttrOr("href", "")))
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()
		if !seen[resolved] {
			seen[resolved] = true
			candidates = append(candidates, resolved)
		}
	})

	return candidates
}

func hasRel(rel, want string) bool {
	for _, r := range strings.Fields(rel) {
		if strings.EqualFold(r, want) {
			return true
		}
	}
	return false
}

func isFeedContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return feedMediaTypes[mediaType]
}
