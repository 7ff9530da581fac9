// Package editor holds the generated summary while the user edits it.
package editor

import (
	"errors"
	"strings"
)

// ErrBusy indicates an action was attempted while a summary is being generated.
var ErrBusy = errors.New("summary generation in progress")

// View is what the editor shows for its current state.
type View int

const (
	// Empty means nothing has been generated yet.
	Empty View = iota
	// Busy means a generation is in flight and input is not accepted.
	Busy
	// Ready means a summary is available for editing.
	Ready
)

// String returns the string representation of the View.
func (v View) String() string {
	switch v {
	case Empty:
		return "Empty"
	case Busy:
		return "Busy"
	case Ready:
		return "Ready"
	default:
		return "View(?)"
	}
}

// Editor tracks the summary text and whether the user changed it.
// The edited flag only ever goes from false to true during an editor's
// lifetime; Reset starts a new lifetime.
type Editor struct {
	text   string
	edited bool
}

// Load replaces the text with a generated summary without marking it edited.
func (e *Editor) Load(text string) {
	e.text = text
}

// Edit applies a user change and marks the summary as edited.
func (e *Editor) Edit(text string) {
	e.text = text
	e.edited = true
}

// Reset starts a new editor lifetime: no text, not edited.
func (e *Editor) Reset() {
	*e = Editor{}
}

// Text returns the current summary.
func (e *Editor) Text() string {
	return e.text
}

// Edited reports whether the user changed the summary after generation.
func (e *Editor) Edited() bool {
	return e.edited
}

// WordCount returns the word count of the current summary.
func (e *Editor) WordCount() int {
	return WordCount(e.text)
}

// View returns what should be rendered given the generating flag.
func (e *Editor) View(generating bool) View {
	switch {
	case generating:
		return Busy
	case e.text == "":
		return Empty
	default:
		return Ready
	}
}

// CanShare returns ErrBusy while generating. An empty summary may be shared.
func (e *Editor) CanShare(generating bool) error {
	if generating {
		return ErrBusy
	}
	return nil
}

// WordCount counts whitespace-separated tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(strings.TrimSpace(s)))
}
