package cli

import (
	"fmt"

	"github.com/alnah/go-summary/internal/config"
	"github.com/alnah/go-summary/internal/summarize"
)

// newSummarizer resolves the provider settings and builds a summarizer.
// The API key comes from the environment only; base URL and model fall back
// to the Groq defaults.
func newSummarizer(env *Env, cfg config.Config) (summarize.Summarizer, error) {
	apiKey := env.Getenv(config.EnvAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w (set it with: export %s=gsk_...)", ErrAPIKeyMissing, config.EnvAPIKey)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = summarize.DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = summarize.DefaultModel
	}

	return env.SummarizerFactory.NewSummarizer(apiKey, baseURL, model)
}
