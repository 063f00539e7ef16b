package techword

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// LoadFunc returns the raw newline-delimited word list
type LoadFunc func(ctx context.Context) ([]byte, error)

// Provider lazily builds a single Matcher on first use and returns the same
// instance for the life of the process. Concurrent first calls are
// serialized so the word list is loaded and compiled once. A failed build
// is not kept, the next call tries again.
type Provider struct {
	load    LoadFunc
	mu      sync.Mutex
	matcher atomic.Pointer[Matcher]
}

// NewProvider creates a Provider that builds its Matcher from load
func NewProvider(load LoadFunc) *Provider {
	return &Provider{load: load}
}

// StaticProvider returns a Provider already holding m
func StaticProvider(m *Matcher) *Provider {
	p := &Provider{}
	p.matcher.Store(m)
	return p
}

// Matcher returns the shared Matcher, building it on the first call
func (p *Provider) Matcher(ctx context.Context) (*Matcher, error) {
	if m := p.matcher.Load(); m != nil {
		return m, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if m := p.matcher.Load(); m != nil {
		return m, nil
	}
	if p.load == nil {
		return nil, fmt.Errorf("techword provider has no word list source")
	}

	data, err := p.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading word list: %w", err)
	}

	m, err := Compile(ParseWords(data))
	if err != nil {
		return nil, err
	}

	p.matcher.Store(m)
	return m, nil
}

// ParseWords splits a newline-delimited word list into lines, dropping line
// terminators ("\n" or "\r\n").
func ParseWords(data []byte) []string {
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		words = append(words, string(bytes.TrimSuffix(scanner.Bytes(), []byte("\r"))))
	}
	return words
}
