// Package server exposes the summarizer over HTTP: the JSON completion
// endpoint and a server-rendered workspace page.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alnah/go-summary/internal/summarize"
	"github.com/alnah/go-summary/internal/workspace"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// DefaultIdleTimeout is how long an untouched workspace is kept.
const DefaultIdleTimeout = 2 * time.Hour

// Server wires the HTTP routes to a summarizer and a workspace store.
type Server struct {
	engine      *gin.Engine
	summarizer  summarize.Summarizer
	store       *workspace.Store
	logger      *zap.Logger
	origins     []string
	debug       bool
	idleTimeout time.Duration

	// ctx scopes background generations; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the workspace store.
func WithStore(st *workspace.Store) Option {
	return func(s *Server) {
		if st != nil {
			s.store = st
		}
	}
}

// WithAllowedOrigins restricts CORS to the given origins. Empty allows all.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithDebug enables gin's debug mode.
func WithDebug(debug bool) Option {
	return func(s *Server) {
		s.debug = debug
	}
}

// WithIdleTimeout sets how long an untouched workspace survives.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// New creates a Server. A nil logger is replaced by a no-op logger.
func New(summarizer summarize.Summarizer, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		summarizer:  summarizer,
		store:       workspace.NewStore(),
		logger:      logger,
		idleTimeout: DefaultIdleTimeout,
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Store returns the workspace store.
func (s *Server) Store() *workspace.Store { return s.store }

func (s *Server) routes() *gin.Engine {
	if s.debug {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.logger))
	r.Use(cors.New(s.corsConfig()))
	r.SetHTMLTemplate(pageTemplates())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/templates", s.handleTemplates)
	api.POST("/generate-summary", s.handleGenerateSummary)

	ui := r.Group("/", s.session())
	ui.GET("/", s.handleIndex)
	ui.POST("/transcript", s.handleUpload)
	ui.POST("/transcript/clear", s.handleClearTranscript)
	ui.POST("/instruction", s.handleInstruction)
	ui.POST("/template/:id", s.handleSelectTemplate)
	ui.POST("/generate", s.handleGenerate)
	ui.POST("/summary", s.handleEditSummary)
	ui.POST("/share/open", s.handleShareOpen)
	ui.POST("/share/recipients", s.handleShareAdd)
	ui.POST("/share/recipients/remove", s.handleShareRemove)
	ui.POST("/share/send", s.handleShareSend)
	ui.POST("/share/cancel", s.handleShareCancel)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(s.origins) == 0 {
		// Any origin may call the API, but never with the session cookie.
		cfg.AllowCredentials = false
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}
	allowed := make(map[string]struct{}, len(s.origins))
	for _, o := range s.origins {
		allowed[o] = struct{}{}
	}
	cfg.AllowOriginFunc = func(origin string) bool {
		_, ok := allowed[origin]
		return ok
	}
	return cfg
}

// RunSweeper evicts idle workspaces every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.store.Sweep(s.idleTimeout); n > 0 {
				s.logger.Info("evicted idle workspaces", zap.Int("count", n))
			}
		}
	}
}

// Wait blocks until background generations have finished.
func (s *Server) Wait() { s.wg.Wait() }

// Close cancels background generations and waits for them.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}
