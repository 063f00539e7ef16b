package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/onk/blogchecker/internal/infrastructure"
	"github.com/onk/blogchecker/internal/repository"
	"github.com/onk/blogchecker/internal/sanitize"
	"github.com/onk/blogchecker/internal/service"
	"github.com/onk/blogchecker/internal/techword"
	"github.com/onk/blogchecker/internal/transport/handler"
)

// Application holds the wired components shared by every entry point
type Application struct {
	Config          *infrastructure.Config
	Logger          *logrus.Logger
	Resolver        *service.Resolver
	TechFeed        *service.TechFeed
	Matchers        *techword.Provider
	TechFeedHandler *handler.TechFeedHandler
	cleanup         func() error
}

// New loads configuration and creates the application
func New(ctx context.Context) (*Application, error) {
	cfg, err := infrastructure.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates the application from an already loaded config
func NewWithConfig(ctx context.Context, cfg *infrastructure.Config) (*Application, error) {
	logger := infrastructure.NewLogger(cfg)

	wordList, cleanup, err := newWordListRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Repositories
	fetcher := repository.NewBoundedFetcher(
		cfg.UserAgent,
		cfg.FetchTimeout,
		repository.WithMaxRedirects(cfg.MaxRedirects),
		repository.WithLogger(logger),
	)
	// Site pages may sit behind longer redirect chains than feeds
	discoverer := repository.NewFeedDiscoverer(repository.NewBoundedFetcher(
		cfg.UserAgent,
		cfg.FetchTimeout,
		repository.WithMaxRedirects(repository.DiscoveryMaxRedirects),
		repository.WithLogger(logger),
	))
	parser := repository.NewFeedParser()

	// Services
	resolver := service.NewResolver(discoverer)
	matchers := techword.NewProvider(wordList.Load)
	techFeed := service.NewTechFeed(
		resolver,
		fetcher,
		parser,
		sanitize.HTML{},
		matchers,
		service.TechFeedConfig{
			Threshold:  cfg.Threshold,
			FetchDelay: cfg.FetchDelay,
		},
		logger,
	)

	return &Application{
		Config:          cfg,
		Logger:          logger,
		Resolver:        resolver,
		TechFeed:        techFeed,
		Matchers:        matchers,
		TechFeedHandler: handler.NewTechFeedHandler(techFeed, logger),
		cleanup:         cleanup,
	}, nil
}

// newWordListRepository picks Cloud Storage for gs:// locations and the
// local filesystem otherwise.
func newWordListRepository(ctx context.Context, cfg *infrastructure.Config) (repository.WordListRepository, func() error, error) {
	if !repository.IsObjectLocation(cfg.TechwordsPath) {
		return repository.NewFileWordListRepository(repository.FilePath(cfg.TechwordsPath)), nil, nil
	}

	location, err := repository.ParseObjectLocation(cfg.TechwordsPath)
	if err != nil {
		return nil, nil, err
	}

	client, err := infrastructure.NewStorageClient(ctx, cfg.StorageEndpoint)
	if err != nil {
		return nil, nil, err
	}

	return repository.NewGCSWordListRepository(client, location), client.Close, nil
}

// Close cleans up application resources
func (a *Application) Close() error {
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}
