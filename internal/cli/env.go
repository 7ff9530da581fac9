package cli

import (
	"io"
	"net"
	"os"

	"go.uber.org/zap"

	"github.com/alnah/go-summary/internal/config"
	"github.com/alnah/go-summary/internal/server"
	"github.com/alnah/go-summary/internal/share"
	"github.com/alnah/go-summary/internal/summarize"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Factories for domain objects
	ConfigLoader      ConfigLoader
	SummarizerFactory SummarizerFactory
	Opener            share.Opener

	// Server wiring
	NewLogger func(dev bool) (*zap.Logger, error)
	Listen    func(network, addr string) (net.Listener, error)
}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// SummarizerFactory creates summarizers bound to a provider endpoint.
type SummarizerFactory interface {
	NewSummarizer(apiKey, baseURL, model string) (summarize.Summarizer, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithSummarizerFactory sets the summarizer factory.
func WithSummarizerFactory(f SummarizerFactory) EnvOption {
	return func(e *Env) {
		e.SummarizerFactory = f
	}
}

// WithOpener sets how compose links are opened.
func WithOpener(o share.Opener) EnvOption {
	return func(e *Env) {
		e.Opener = o
	}
}

// WithListen sets the listener constructor used by serve.
func WithListen(fn func(network, addr string) (net.Listener, error)) EnvOption {
	return func(e *Env) {
		e.Listen = fn
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
		Getenv:            os.Getenv,
		ConfigLoader:      &defaultConfigLoader{},
		SummarizerFactory: &defaultSummarizerFactory{},
		Opener:            share.BrowserOpener{},
		NewLogger:         server.NewLogger,
		Listen:            net.Listen,
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultSummarizerFactory implements SummarizerFactory with go-openai
// pointed at an OpenAI-compatible endpoint.
type defaultSummarizerFactory struct{}

func (defaultSummarizerFactory) NewSummarizer(apiKey, baseURL, model string) (summarize.Summarizer, error) {
	client, err := summarize.NewClient(apiKey, baseURL)
	if err != nil {
		return nil, err
	}
	return summarize.NewOpenAISummarizer(client, summarize.WithModel(model)), nil
}

// Compile-time interface verification.
var (
	_ ConfigLoader      = (*defaultConfigLoader)(nil)
	_ SummarizerFactory = (*defaultSummarizerFactory)(nil)
)
