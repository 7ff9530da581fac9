package cli

import (
	"context"
	"sync"

	"github.com/alnah/go-summary/internal/config"
	"github.com/alnah/go-summary/internal/summarize"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock SummarizerFactory + Summarizer
// ---------------------------------------------------------------------------

type factoryCall struct {
	APIKey  string
	BaseURL string
	Model   string
}

type mockSummarizerFactory struct {
	NewSummarizerFunc func(apiKey, baseURL, model string) (summarize.Summarizer, error)

	mockSummarizer *mockSummarizer

	mu    sync.Mutex
	calls []factoryCall
}

func (m *mockSummarizerFactory) NewSummarizer(apiKey, baseURL, model string) (summarize.Summarizer, error) {
	m.mu.Lock()
	m.calls = append(m.calls, factoryCall{APIKey: apiKey, BaseURL: baseURL, Model: model})
	m.mu.Unlock()

	if m.NewSummarizerFunc != nil {
		return m.NewSummarizerFunc(apiKey, baseURL, model)
	}
	if m.mockSummarizer != nil {
		return m.mockSummarizer, nil
	}
	return &mockSummarizer{}, nil
}

func (m *mockSummarizerFactory) Calls() []factoryCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]factoryCall(nil), m.calls...)
}

type mockSummarizer struct {
	SummarizeFunc func(ctx context.Context, req summarize.Request) (string, error)

	mu    sync.Mutex
	calls []summarize.Request
}

func (m *mockSummarizer) Summarize(ctx context.Context, req summarize.Request) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, req)
	}
	return "- summary", nil
}

func (m *mockSummarizer) Calls() []summarize.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]summarize.Request(nil), m.calls...)
}

// ---------------------------------------------------------------------------
// Mock Opener
// ---------------------------------------------------------------------------

type mockOpener struct {
	err error

	mu   sync.Mutex
	urls []string
}

func (m *mockOpener) Open(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, url)
	return m.err
}

func (m *mockOpener) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader         = (*mockConfigLoader)(nil)
	_ SummarizerFactory    = (*mockSummarizerFactory)(nil)
	_ summarize.Summarizer = (*mockSummarizer)(nil)
)
