package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/onk/blogchecker/internal/model"
)

// MockFetcher serves canned bodies keyed by URL and records every call
type MockFetcher struct {
	Bodies      map[string]string
	Errors      map[string]error
	ContentType string

	mu        sync.Mutex
	requested []string
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*model.FetchResult, error) {
	m.mu.Lock()
	m.requested = append(m.requested, url)
	m.mu.Unlock()

	if err, ok := m.Errors[url]; ok {
		return nil, err
	}
	body, ok := m.Bodies[url]
	if !ok {
		return nil, &model.StatusError{URL: url, StatusCode: 404, Class: model.StatusClientError}
	}

	contentType := m.ContentType
	if contentType == "" {
		contentType = "application/rss+xml"
	}
	return &model.FetchResult{URL: url, ContentType: contentType, Body: []byte(body)}, nil
}

// Calls returns the URLs fetched so far
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requested...)
}

// MockDiscoverer returns fixed candidates for every page
type MockDiscoverer struct {
	Candidates []string
	Err        error
	Pages      []string
}

func (m *MockDiscoverer) Discover(ctx context.Context, pageURL string) ([]string, error) {
	m.Pages = append(m.Pages, pageURL)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates, nil
}

// MockWordList returns a fixed word list
type MockWordList struct {
	Words []string
	Err   error
	Loads int
}

func (m *MockWordList) Load(ctx context.Context) ([]byte, error) {
	m.Loads++
	if m.Err != nil {
		return nil, fmt.Errorf("mock word list: %w", m.Err)
	}
	var data []byte
	for _, w := range m.Words {
		data = append(data, w...)
		data = append(data, '\n')
	}
	return data, nil
}
