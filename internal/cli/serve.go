package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-summary/internal/format"
	"github.com/alnah/go-summary/internal/server"
)

// Server timing.
const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
	readTimeout     = 30 * time.Second
)

// serveOptions holds validated options for the serve command.
type serveOptions struct {
	addr        string
	dev         bool
	origins     []string
	idleTimeout time.Duration
}

// ServeCmd creates the serve command running the web workspace and JSON API.
func ServeCmd(env *Env) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web workspace and summary API",
		Long: `Run the HTTP server.

The workspace page lets you upload a transcript, pick a preset or write
an instruction, generate and edit the summary, and share it through a
Gmail compose link. POST /api/generate-summary exposes the completion
endpoint as JSON.

The listen address comes from --addr, then the addr config key, then :8080.
Press Ctrl+C to stop; in-flight requests get a grace period.`,
		Example: `  summary serve
  summary serve --addr 127.0.0.1:9000 --dev
  summary serve --origins https://notes.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default: config addr or "+server.DefaultAddr+")")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "Development logging and gin debug mode")
	cmd.Flags().StringSliceVar(&opts.origins, "origins", nil, "Allowed CORS origins (default: any)")
	cmd.Flags().DurationVar(&opts.idleTimeout, "idle-timeout", server.DefaultIdleTimeout, "Evict workspaces untouched for this long")

	return cmd
}

// runServe starts the server and blocks until ctx is cancelled or the
// listener fails.
func runServe(ctx context.Context, env *Env, opts serveOptions) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	s, err := newSummarizer(env, cfg)
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = cfg.Addr
	}
	if addr == "" {
		addr = server.DefaultAddr
	}

	if opts.idleTimeout <= 0 {
		opts.idleTimeout = server.DefaultIdleTimeout
	}

	log, err := env.NewLogger(opts.dev)
	if err != nil {
		return fmt.Errorf("cannot create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	srv := server.New(s, log,
		server.WithAllowedOrigins(opts.origins),
		server.WithDebug(opts.dev),
		server.WithIdleTimeout(opts.idleTimeout),
	)
	defer srv.Close()

	ln, err := env.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", addr, err)
	}

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readTimeout,
	}

	_, _ = fmt.Fprintf(env.Stderr, "Listening on http://%s (Ctrl+C to stop)\n", ln.Addr())
	_, _ = fmt.Fprintf(env.Stderr, "Idle workspaces are dropped after %s\n", format.DurationHuman(opts.idleTimeout))
	log.Info("server started", zap.String("addr", ln.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return srv.RunSweeper(gctx, sweepInterval)
	})

	// Shutdown watcher: stop accepting, drain, then cancel generations.
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpSrv.Shutdown(shutdownCtx)
		srv.Close()
		log.Info("server stopped")
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(env.Stderr, "Server stopped.")
	return nil
}
