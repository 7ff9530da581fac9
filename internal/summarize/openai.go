package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-summary/internal/apierr"
)

// Provider configuration.
const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is the hosted model used for every completion.
	DefaultModel = "openai/gpt-oss-20b"
)

// chatCompleter is an internal interface for chat completion.
// *openai.Client implements this implicitly.
// This allows injecting mocks in tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance check.
var _ Summarizer = (*OpenAISummarizer)(nil)

// OpenAISummarizer summarizes transcripts through an OpenAI-compatible chat
// completion API. It performs exactly one call per request and never retries.
type OpenAISummarizer struct {
	client chatCompleter
	model  string
}

// Option configures an OpenAISummarizer.
type Option func(*OpenAISummarizer)

// WithModel sets the model identifier. Empty values are ignored.
func WithModel(model string) Option {
	return func(s *OpenAISummarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// withChatCompleter sets a custom chat completer (for testing).
func withChatCompleter(cc chatCompleter) Option {
	return func(s *OpenAISummarizer) {
		s.client = cc
	}
}

// NewClient creates a provider client for apiKey.
// An empty baseURL selects DefaultBaseURL.
// The client keeps the library's default HTTP behaviour (no explicit timeout).
func NewClient(apiKey, baseURL string) (*openai.Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultBaseURL
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return openai.NewClientWithConfig(cfg), nil
}

// NewOpenAISummarizer creates a summarizer backed by client.
func NewOpenAISummarizer(client *openai.Client, opts ...Option) *OpenAISummarizer {
	s := &OpenAISummarizer{
		client: client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the configured model identifier.
func (s *OpenAISummarizer) Model() string {
	return s.model
}

// Summarize sends the constructed prompt as a single user message and returns
// the first completion's content, or Fallback when there is none.
// Provider failures are classified into apierr sentinels and returned.
func (s *OpenAISummarizer) Summarize(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(req)},
		},
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Fallback, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyError maps provider client errors to apierr sentinel errors.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apierr.FromStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		msg := reqErr.HTTPStatus
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return apierr.FromStatus(reqErr.HTTPStatusCode, msg)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}

	return err
}
