package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-summary/internal/config"
)

// Notes:
// - These tests redirect the config file with XDG_CONFIG_HOME, so they
//   cannot use t.Parallel() (t.Setenv forbids it)

func TestRunConfigSet_ValidKey(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	env, mocks := testEnv()
	if err := RunConfigSet(env, config.KeyModel, "llama-3.1-8b-instant"); err != nil {
		t.Fatalf("RunConfigSet: %v", err)
	}
	if !strings.Contains(mocks.stderr.String(), "Set model = llama-3.1-8b-instant") {
		t.Errorf("stderr = %q", mocks.stderr.String())
	}

	got, err := config.Get(config.KeyModel)
	if err != nil || got != "llama-3.1-8b-instant" {
		t.Errorf("config.Get(model) = %q, %v", got, err)
	}
}

func TestRunConfigSet_OutputDirCreated(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	env, _ := testEnv()
	dir := filepath.Join(t.TempDir(), "summaries")
	if err := RunConfigSet(env, config.KeyOutputDir, dir); err != nil {
		t.Fatalf("RunConfigSet: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("output-dir not created: %v", err)
	}
}

func TestRunConfigSet_Rejects(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"unknown key", "api-key", "secret", config.ErrUnknownKey},
		{"bad addr", config.KeyAddr, "8080", config.ErrInvalidValue},
		{"bad url", config.KeyBaseURL, "ftp://x", config.ErrInvalidValue},
		{"blank model", config.KeyModel, "  ", config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := testEnv()
			if err := RunConfigSet(env, tt.key, tt.value); !errors.Is(err, tt.wantErr) {
				t.Errorf("RunConfigSet(%q, %q) error = %v, want %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}

	if data, _ := config.List(); len(data) != 0 {
		t.Errorf("rejected values were saved: %v", data)
	}
}

func TestRunConfigGet(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := config.Save(config.KeyAddr, ":9000"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name string
		key  string
		env  map[string]string
		want string
	}{
		{"from file", config.KeyAddr, nil, ":9000\n"},
		{"file wins over env", config.KeyAddr, map[string]string{config.EnvAddr: ":1"}, ":9000\n"},
		{"env fallback", config.KeyModel, map[string]string{config.EnvModel: "tiny"}, "tiny\n"},
		{"unset prints nothing", config.KeyBaseURL, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, mocks := testEnv(withGetenv(staticEnv(tt.env)))
			if err := RunConfigGet(env, tt.key); err != nil {
				t.Fatalf("RunConfigGet: %v", err)
			}
			if got := mocks.stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunConfigGet_UnknownKey(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	env, _ := testEnv()
	if err := RunConfigGet(env, "output_dir"); !errors.Is(err, config.ErrUnknownKey) {
		t.Errorf("error = %v, want ErrUnknownKey", err)
	}
}

func TestRunConfigList(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	env, mocks := testEnv(withGetenv(staticEnv(nil)))
	if err := RunConfigList(env); err != nil {
		t.Fatalf("RunConfigList: %v", err)
	}
	if !strings.Contains(mocks.stdout.String(), "No configuration set.") {
		t.Errorf("stdout = %q, want empty notice", mocks.stdout.String())
	}

	if err := config.Save(config.KeyModel, "tiny"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	env, mocks = testEnv(withGetenv(staticEnv(map[string]string{config.EnvAddr: ":7000"})))
	if err := RunConfigList(env); err != nil {
		t.Fatalf("RunConfigList: %v", err)
	}
	want := "addr=:7000 (from env)\nmodel=tiny\n"
	if got := mocks.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}
