package repository

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/onk/blogchecker/internal/model"
)

// FeedParser turns raw feed bytes into a model.Feed
type FeedParser interface {
	Parse(body []byte) (*model.Feed, error)
}

// gofeedParser parses RSS, Atom and JSON feeds
type gofeedParser struct{}

// NewFeedParser creates a FeedParser backed by gofeed
func NewFeedParser() FeedParser {
	return &gofeedParser{}
}

// Parse returns an error wrapping model.ErrParse when body is not a feed
func (p *gofeedParser) Parse(body []byte) (*model.Feed, error) {
	// gofeed.Parser keeps per-call state, so a fresh one is used each time
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrParse, err)
	}

	entries := make([]model.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, model.Entry{
			Title:   item.Title,
			Content: item.Content,
			Summary: item.Description,
			URL:     itemURL(item),
		})
	}

	return &model.Feed{
		Title:   feed.Title,
		Entries: entries,
	}, nil
}

func itemURL(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	if len(item.Links) > 0 {
		return item.Links[0]
	}
	return ""
}
