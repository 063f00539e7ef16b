package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onk/blogchecker/internal/model"
	"github.com/onk/blogchecker/internal/monitoring"
	"github.com/onk/blogchecker/internal/repository"
	"github.com/onk/blogchecker/internal/sanitize"
	"github.com/onk/blogchecker/internal/techword"
)

const (
	DefaultThreshold  = 3
	DefaultFetchDelay = time.Second
)

// FeedResolver derives a feed URL from a site
type FeedResolver interface {
	Resolve(ctx context.Context, site model.Site) (string, bool, error)
}

// MatcherSource supplies the shared techword matcher
type MatcherSource interface {
	Matcher(ctx context.Context) (*techword.Matcher, error)
}

// TechFeedConfig holds the tunables of the pipeline
type TechFeedConfig struct {
	Threshold  int
	FetchDelay time.Duration
}

// TechFeed resolves a site's feed, fetches and parses it, and keeps the
// entries whose text contains at least Threshold technical terms.
type TechFeed struct {
	resolver  FeedResolver
	fetcher   repository.FeedFetcher
	parser    repository.FeedParser
	sanitizer sanitize.Sanitizer
	matchers  MatcherSource
	config    TechFeedConfig
	sleep     func(ctx context.Context, d time.Duration) error
	logger    logrus.FieldLogger
}

func NewTechFeed(
	resolver FeedResolver,
	fetcher repository.FeedFetcher,
	parser repository.FeedParser,
	sanitizer sanitize.Sanitizer,
	matchers MatcherSource,
	config TechFeedConfig,
	logger logrus.FieldLogger,
) *TechFeed {
	if config.Threshold <= 0 {
		config.Threshold = DefaultThreshold
	}
	if config.FetchDelay < 0 {
		config.FetchDelay = 0
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &TechFeed{
		resolver:  resolver,
		fetcher:   fetcher,
		parser:    parser,
		sanitizer: sanitizer,
		matchers:  matchers,
		config:    config,
		sleep:     sleepContext,
		logger:    logger,
	}
}

// Run returns the technical entries of site's feed in feed order
func (s *TechFeed) Run(ctx context.Context, site model.Site) ([]model.FilteredEntry, error) {
	start := time.Now()
	entries, err := s.run(ctx, site)
	monitoring.RecordRun(string(site.Kind), outcome(err), time.Since(start))
	return entries, err
}

func (s *TechFeed) run(ctx context.Context, site model.Site) ([]model.FilteredEntry, error) {
	log := s.logger.WithFields(logrus.Fields{"site": site.URL, "kind": site.Kind})

	matcher, err := s.matchers.Matcher(ctx)
	if err != nil {
		return nil, fmt.Errorf("preparing techword matcher: %w", err)
	}

	feedURL, ok, err := s.resolver.Resolve(ctx, site)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: could not determine a feed URL for this site: %s", model.ErrConfiguration, site.URL)
	}
	log = log.WithField("feed", feedURL)
	log.Info("📡 Feed URL resolved")

	if err := s.sleep(ctx, s.config.FetchDelay); err != nil {
		return nil, err
	}

	result, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", feedURL, err)
	}

	feed, err := s.parser.Parse(result.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", feedURL, err)
	}

	filtered := s.Filter(feed, matcher)
	monitoring.RecordEntries(len(filtered), len(feed.Entries)-len(filtered))
	log.WithFields(logrus.Fields{
		"feed_title": feed.Title,
		"entries":    len(feed.Entries),
		"kept":       len(filtered),
	}).Info("✅ Feed filtered")

	return filtered, nil
}

// Filter keeps entries whose sanitized title and body reach the threshold,
// projected to title and URL in feed order. The result is never nil.
func (s *TechFeed) Filter(feed *model.Feed, matcher *techword.Matcher) []model.FilteredEntry {
	filtered := []model.FilteredEntry{}
	if feed == nil {
		return filtered
	}

	for _, entry := range feed.Entries {
		text := s.sanitizer.Clean(entry.Title + entry.Body())
		if matcher.Count(text) >= s.config.Threshold {
			filtered = append(filtered, model.FilteredEntry{
				Title: entry.Title,
				URL:   entry.URL,
			})
		}
	}
	return filtered
}

// sleepContext pauses for d unless ctx ends first
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrConfiguration):
		return "no_feed"
	case errors.Is(err, model.ErrParse):
		return "parse_error"
	case repository.IsFetchFailure(err):
		return "fetch_error"
	default:
		return "error"
	}
}
