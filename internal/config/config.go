// Package config reads and writes the user configuration file
// (~/.config/go-summary/config) with environment variable fallbacks.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Config keys.
const (
	KeyAddr      = "addr"
	KeyBaseURL   = "base-url"
	KeyModel     = "model"
	KeyOutputDir = "output-dir"
)

// Environment variable fallbacks.
const (
	EnvAddr      = "SUMMARY_ADDR"
	EnvBaseURL   = "SUMMARY_BASE_URL"
	EnvModel     = "SUMMARY_MODEL"
	EnvOutputDir = "SUMMARY_OUTPUT_DIR"
)

// EnvAPIKey holds the provider secret. It is read from the environment only
// and never written to the config file.
const EnvAPIKey = "GROQ_API_KEY"

var (
	// ErrInvalidKey indicates a key that cannot be stored in the file format.
	ErrInvalidKey = errors.New("invalid config key")

	// ErrUnknownKey indicates a key that is not one of Keys().
	ErrUnknownKey = errors.New("unknown config key")

	// ErrInvalidValue indicates a value rejected by Validate.
	ErrInvalidValue = errors.New("invalid config value")

	// ErrNotDirectory indicates output-dir points at a file.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrNotWritable indicates output-dir cannot be written to.
	ErrNotWritable = errors.New("directory is not writable")
)

// Config holds user configuration. Empty fields mean "use the default".
type Config struct {
	Addr      string
	BaseURL   string
	Model     string
	OutputDir string
}

var keys = []string{KeyAddr, KeyBaseURL, KeyModel, KeyOutputDir}

var envByKey = map[string]string{
	KeyAddr:      EnvAddr,
	KeyBaseURL:   EnvBaseURL,
	KeyModel:     EnvModel,
	KeyOutputDir: EnvOutputDir,
}

// Keys returns the supported keys in display order.
func Keys() []string {
	return slices.Clone(keys)
}

// IsKnownKey reports whether key is supported.
func IsKnownKey(key string) bool {
	return slices.Contains(keys, key)
}

// EnvVar returns the environment variable that backs key, or "" when the
// key is unknown.
func EnvVar(key string) string {
	return envByKey[key]
}

// Validate checks value for key before it is saved.
func Validate(key, value string) error {
	switch key {
	case KeyAddr:
		if _, _, err := net.SplitHostPort(value); err != nil {
			return fmt.Errorf("%w: %s must be host:port (e.g. :8080): %v", ErrInvalidValue, key, err)
		}
	case KeyBaseURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %s must be an http(s) URL", ErrInvalidValue, key)
		}
	case KeyModel:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrInvalidValue, key)
		}
	case KeyOutputDir:
		return EnsureOutputDir(value)
	default:
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownKey, key, strings.Join(keys, ", "))
	}
	return nil
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/go-summary.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "go-summary"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "go-summary"), nil
}

func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the configuration file and environment variables.
// File values win; environment variables fill the gaps.
// A missing file is not an error.
func Load() (Config, error) {
	p, err := path()
	if err != nil {
		return Config{}, err
	}

	data, err := parseFile(p)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	value := func(key string) string {
		if v := data[key]; v != "" {
			return v
		}
		return os.Getenv(envByKey[key])
	}

	return Config{
		Addr:      value(KeyAddr),
		BaseURL:   value(KeyBaseURL),
		Model:     value(KeyModel),
		OutputDir: value(KeyOutputDir),
	}, nil
}

// parseFile reads a key=value config file.
// Format: one key=value per line, # comments, empty lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid syntax at line %d: %q", lineNum, line)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// Save writes a single key=value to the config file, creating it if needed.
// Existing pairs are kept; comments are not.
func Save(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\n\r#") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("%w: value for %s spans lines", ErrInvalidValue, key)
	}

	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, _ := parseFile(p)
	if existing == nil {
		existing = make(map[string]string)
	}
	existing[key] = value

	return writeFile(p, existing)
}

// writeFile writes the config map sorted by key.
func writeFile(p string, data map[string]string) error {
	// #nosec G302 G304 -- config file with standard permissions, path from home dir
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	names := make([]string, 0, len(data))
	for k := range data {
		names = append(names, k)
	}
	slices.Sort(names)

	w := bufio.NewWriter(f)
	for _, k := range names {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, data[k]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Get reads a single value from the config file.
// Returns an empty string if the key is not set.
func Get(key string) (string, error) {
	data, err := List()
	if err != nil {
		return "", err
	}
	return data[key], nil
}

// List returns all values stored in the config file.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	return data, nil
}

// ResolveOutputPath picks the output file path:
//  1. an absolute output is used as-is
//  2. a relative output is joined to outputDir when set
//  3. an empty output becomes defaultName in outputDir (or the working directory)
func ResolveOutputPath(output, outputDir, defaultName string) string {
	outputDir = ExpandPath(outputDir)
	switch {
	case output != "" && filepath.IsAbs(output):
		return filepath.Clean(output)
	case output != "" && outputDir != "":
		return filepath.Clean(filepath.Join(outputDir, output))
	case output != "":
		return filepath.Clean(output)
	case outputDir != "":
		return filepath.Clean(filepath.Join(outputDir, defaultName))
	default:
		return filepath.Clean(defaultName)
	}
}

// EnsureOutputDir checks that d is a writable directory, creating it if
// it does not exist.
func EnsureOutputDir(d string) error {
	if d == "" {
		return fmt.Errorf("%w: output-dir cannot be empty", ErrInvalidValue)
	}
	d = ExpandPath(d)

	info, err := os.Stat(d)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user output dir
			return fmt.Errorf("cannot create directory: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("cannot access directory: %w", err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s", ErrNotDirectory, d)
	}

	testFile := filepath.Join(d, ".go-summary-write-test")
	f, err := os.Create(testFile) // #nosec G304 -- path is constructed from validated dir
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotWritable, err)
	}
	_ = f.Close()
	_ = os.Remove(testFile)
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
