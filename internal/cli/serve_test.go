package cli

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-summary/internal/config"
)

// listenCapture returns a Listen func bound to a random local port and a
// channel receiving the listener's address.
func listenCapture() (func(network, addr string) (net.Listener, error), <-chan string) {
	addrs := make(chan string, 1)
	return func(network, _ string) (net.Listener, error) {
		ln, err := net.Listen(network, "127.0.0.1:0")
		if err != nil {
			return nil, err
		}
		addrs <- ln.Addr().String()
		return ln, nil
	}, addrs
}

func TestRunServe_ServesUntilCancelled(t *testing.T) {
	t.Parallel()

	env, mocks := testEnv()
	listen, addrs := listenCapture()
	env.Listen = listen

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunServe(ctx, env, serveOptions{}) }()

	var addr string
	select {
	case addr = <-addrs:
	case err := <-done:
		t.Fatalf("RunServe returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, body = %s", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("RunServe after cancel = %v, want nil", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}

	if !strings.Contains(mocks.stderr.String(), "Listening on http://") ||
		!strings.Contains(mocks.stderr.String(), "dropped after 2h") {
		t.Errorf("stderr = %q", mocks.stderr.String())
	}
}

func TestRunServe_AddressResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		flag string
		cfg  string
		want string
	}{
		{"default", "", "", ":8080"},
		{"config", "", "127.0.0.1:9000", "127.0.0.1:9000"},
		{"flag wins", ":7000", "127.0.0.1:9000", ":7000"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := newTestMocks()
			mocks.configLoader = configWith(config.Config{Addr: tt.cfg})
			env, _ := testEnv(withMocks(mocks))

			errListen := errors.New("listen refused")
			var got string
			env.Listen = func(_, addr string) (net.Listener, error) {
				got = addr
				return nil, errListen
			}

			err := RunServe(context.Background(), env, serveOptions{addr: tt.flag})
			if !errors.Is(err, errListen) {
				t.Fatalf("error = %v, want listen error", err)
			}
			if got != tt.want {
				t.Errorf("listen addr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunServe_MissingAPIKey(t *testing.T) {
	t.Parallel()

	env, _ := testEnv(withGetenv(staticEnv(nil)))
	env.Listen = func(string, string) (net.Listener, error) {
		t.Error("listener opened without an API key")
		return nil, errors.New("unreachable")
	}

	if err := RunServe(context.Background(), env, serveOptions{}); !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("error = %v, want ErrAPIKeyMissing", err)
	}
}
