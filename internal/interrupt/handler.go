// Package interrupt turns SIGINT/SIGTERM into a two-stage stop: the first
// signal cancels the command context so work can wind down, a second one
// soon after exits immediately.
package interrupt

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ExitInterrupt is the exit code for interrupt (130 = 128 + SIGINT).
const ExitInterrupt = 130

// ForceWindow is how long after the first signal a second one forces exit.
// It matches the server's shutdown grace period.
const ForceWindow = 10 * time.Second

const (
	stoppingMessage = "\nStopping... press Ctrl+C again to quit immediately."
	forcedMessage   = "\nForced exit."
)

// Handler cancels a context on the first signal and exits on a second
// signal inside ForceWindow.
type Handler struct {
	mu             sync.Mutex
	firstInterrupt time.Time
	interrupted    bool
	forced         bool
	stopped        bool
	cancelFunc     context.CancelFunc
	done           chan struct{}

	// Injected dependencies (for testing)
	exitFunc func(int)
	nowFunc  func() time.Time
	stderr   io.Writer
}

// Options holds injectable dependencies for testing.
type Options struct {
	SigCh    <-chan os.Signal
	ExitFunc func(int)
	NowFunc  func() time.Time
	// Stderr must be safe for concurrent writes. Defaults to os.Stderr.
	Stderr io.Writer
}

// NewHandler creates a handler that listens for SIGINT/SIGTERM.
// Returns the handler and a context that is canceled on first interrupt.
func NewHandler(parent context.Context) (*Handler, context.Context) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return NewHandlerWithOptions(parent, Options{SigCh: sigCh})
}

// NewHandlerWithOptions creates a handler with injectable dependencies.
// A nil SigCh starts no listener.
func NewHandlerWithOptions(parent context.Context, opts Options) (*Handler, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	h := &Handler{
		cancelFunc: cancel,
		done:       make(chan struct{}),
		exitFunc:   opts.ExitFunc,
		nowFunc:    opts.NowFunc,
		stderr:     opts.Stderr,
	}
	if h.exitFunc == nil {
		h.exitFunc = os.Exit
	}
	if h.nowFunc == nil {
		h.nowFunc = time.Now
	}
	if h.stderr == nil {
		h.stderr = os.Stderr
	}

	if opts.SigCh != nil {
		go h.listen(opts.SigCh)
	}

	return h, ctx
}

func (h *Handler) listen(sigCh <-chan os.Signal) {
	for {
		select {
		case <-h.done:
			return
		case _, ok := <-sigCh:
			if !ok {
				return
			}
			if h.handle() {
				return
			}
		}
	}
}

// handle processes one signal and reports whether the process was forced out.
func (h *Handler) handle() bool {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return true
	}
	now := h.nowFunc()

	if h.interrupted && now.Sub(h.firstInterrupt) <= ForceWindow {
		h.forced = true
		h.mu.Unlock()
		_, _ = fmt.Fprintln(h.stderr, forcedMessage)
		h.exitFunc(ExitInterrupt)
		return true // exitFunc may return in tests
	}

	// First signal, or a late one that restarts the window.
	h.interrupted = true
	h.firstInterrupt = now
	h.mu.Unlock()

	h.cancelFunc()
	_, _ = fmt.Fprintln(h.stderr, stoppingMessage)
	return false
}

// WasInterrupted reports whether at least one signal was received.
func (h *Handler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}

// WasForced reports whether a second signal forced exit.
func (h *Handler) WasForced() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.forced
}

// Stop releases the signal listener. It is safe to call more than once.
func (h *Handler) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	signal.Reset(syscall.SIGINT, syscall.SIGTERM)
	close(h.done)
	h.cancelFunc()
}
