package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onk/blogchecker/internal/model"
	"github.com/onk/blogchecker/internal/monitoring"
)

const (
	DefaultMaxRedirects = 2
	DefaultFetchTimeout = 30 * time.Second
	MaxBodySize         = int64(10 * 1024 * 1024)

	// DiscoveryMaxRedirects bounds page fetches during feed discovery, which
	// follow ordinary site redirects such as http to https plus a trailing slash
	DiscoveryMaxRedirects = 10
)

// FeedFetcher fetches a URL and returns the response body
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*model.FetchResult, error)
}

// HTTPDoer is the subset of *http.Client used by the fetcher
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BoundedFetcher issues GET requests and follows at most a fixed number of
// redirects itself. Responses are classified by status class. Nothing is
// retried.
type BoundedFetcher struct {
	httpClient   HTTPDoer
	userAgent    string
	maxRedirects int
	logger       logrus.FieldLogger
}

// FetcherOption configures a BoundedFetcher
type FetcherOption func(*BoundedFetcher)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client HTTPDoer) FetcherOption {
	return func(f *BoundedFetcher) {
		f.httpClient = client
	}
}

// WithMaxRedirects sets the redirect budget
func WithMaxRedirects(max int) FetcherOption {
	return func(f *BoundedFetcher) {
		f.maxRedirects = max
	}
}

// WithLogger sets the logger used for redirect warnings
func WithLogger(logger logrus.FieldLogger) FetcherOption {
	return func(f *BoundedFetcher) {
		f.logger = logger
	}
}

// NewBoundedFetcher creates a fetcher sending userAgent on every request
func NewBoundedFetcher(userAgent string, timeout time.Duration, opts ...FetcherOption) *BoundedFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	f := &BoundedFetcher{
		httpClient:   newHTTPClient(timeout),
		userAgent:    userAgent,
		maxRedirects: DefaultMaxRedirects,
		logger:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// newHTTPClient returns a client that hands redirects back to the caller
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Fetch GETs rawURL. A 3xx response is followed while redirects+1 stays
// below the budget; otherwise model.ErrRedirectLimit is returned.
func (f *BoundedFetcher) Fetch(ctx context.Context, rawURL string) (*model.FetchResult, error) {
	target := rawURL
	for redirects := 0; ; redirects++ {
		resp, err := f.get(ctx, target)
		if err != nil {
			monitoring.RecordFetch("error")
			return nil, err
		}

		class := model.ClassifyStatus(resp.StatusCode)
		monitoring.RecordFetch(class.String())

		switch class {
		case model.StatusSuccess:
			return f.readBody(resp, target)

		case model.StatusRedirection:
			location, locErr := resp.Location()
			drain(resp)
			if locErr != nil {
				return nil, &model.StatusError{URL: target, StatusCode: resp.StatusCode, Class: class}
			}
			if redirects+1 >= f.maxRedirects {
				return nil, fmt.Errorf("%w: %s after %d redirect(s)", model.ErrRedirectLimit, rawURL, redirects)
			}
			f.logger.WithFields(logrus.Fields{
				"from":   target,
				"to":     location.String(),
				"status": resp.StatusCode,
			}).Warn("Following redirect")
			target = location.String()

		default:
			drain(resp)
			return nil, &model.StatusError{URL: target, StatusCode: resp.StatusCode, Class: class}
		}
	}
}

func (f *BoundedFetcher) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	return resp, nil
}

func (f *BoundedFetcher) readBody(resp *http.Response, target string) (*model.FetchResult, error) {
	defer resp.Body.Close()

	if resp.ContentLength > MaxBodySize {
		return nil, fmt.Errorf("response body from %s exceeds %d bytes", target, MaxBodySize)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > MaxBodySize {
		return nil, fmt.Errorf("response body from %s exceeds %d bytes", target, MaxBodySize)
	}

	return &model.FetchResult{
		URL:         target,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	resp.Body.Close()
}

// IsFetchFailure reports whether err is one of the classified fetch failures
func IsFetchFailure(err error) bool {
	return errors.Is(err, model.ErrProtocol) ||
		errors.Is(err, model.ErrClient) ||
		errors.Is(err, model.ErrServer) ||
		errors.Is(err, model.ErrRedirectLimit)
}
