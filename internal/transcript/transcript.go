// Package transcript reads user-supplied text files into Transcript values.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// PreviewLength is the number of characters shown by Preview.
const PreviewLength = 200

// Transcript is raw text plus the name of the file it came from.
// The zero value is the cleared state.
type Transcript struct {
	Content  string
	Filename string
}

// IsEmpty reports whether there is no usable content.
func (t Transcript) IsEmpty() bool {
	return strings.TrimSpace(t.Content) == ""
}

// Preview returns at most PreviewLength characters, followed by "..." when
// the content is longer.
func (t Transcript) Preview() string {
	if utf8.RuneCountInString(t.Content) <= PreviewLength {
		return t.Content
	}
	runes := []rune(t.Content)
	return string(runes[:PreviewLength]) + "..."
}

// IsText reports whether a file is accepted as a transcript: its media type is
// text/plain (parameters ignored) or its name ends with ".txt".
func IsText(filename, mediaType string) bool {
	if mediaType != "" {
		if mt, _, err := mime.ParseMediaType(mediaType); err == nil && mt == "text/plain" {
			return true
		}
	}
	return strings.HasSuffix(filename, ".txt")
}

// Read decodes r as text. Content is taken as-is: no size limit, no encoding
// detection. Returns ErrNotText when the file is not accepted by IsText.
func Read(filename, mediaType string, r io.Reader) (Transcript, error) {
	if !IsText(filename, mediaType) {
		return Transcript{}, fmt.Errorf("%s: %w", filename, ErrNotText)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Transcript{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return Transcript{Content: string(data), Filename: filename}, nil
}

// Load reads the transcript at path. The reported filename is the base name.
// The media type is inferred from the extension.
func Load(ctx context.Context, path string) (Transcript, error) {
	if err := ctx.Err(); err != nil {
		return Transcript{}, err
	}

	// #nosec G304 -- path is user-provided by design
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Transcript{}, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return Transcript{}, fmt.Errorf("cannot access file: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(path)
	t, err := Read(name, mime.TypeByExtension(filepath.Ext(name)), f)
	if err != nil {
		return Transcript{}, err
	}
	if err := ctx.Err(); err != nil {
		return Transcript{}, err
	}
	return t, nil
}

// Result is the outcome of an asynchronous load.
type Result struct {
	Transcript Transcript
	Err        error
}

// LoadAsync reads path in a goroutine and delivers exactly one Result on the
// returned channel. Cancelling ctx makes the load report ctx.Err() so callers
// can drop superseded reads.
func LoadAsync(ctx context.Context, path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		t, err := Load(ctx, path)
		ch <- Result{Transcript: t, Err: err}
	}()
	return ch
}
