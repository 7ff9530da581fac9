package workspace

import (
	"github.com/alnah/go-summary/internal/editor"
	"github.com/alnah/go-summary/internal/share"
	"github.com/alnah/go-summary/internal/template"
)

// Snapshot is a consistent copy of a workspace for rendering.
type Snapshot struct {
	ID string

	HasTranscript bool
	Filename      string
	Size          int
	Preview       string

	Instruction string
	Selected    string
	Templates   []template.Template
	CanGenerate bool
	Generating  bool

	Summary   string
	WordCount int
	Edited    bool
	View      editor.View

	Steps []Step

	Share ShareSnapshot
}

// ShareSnapshot is the share dialog part of a Snapshot.
type ShareSnapshot struct {
	Open       bool
	Recipients []string
	Draft      string
	Subject    string
	Message    string
	CanAdd     bool
	CanSend    bool
}

// Snapshot copies the current state under the lock.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	generating := w.pending != nil
	return Snapshot{
		ID:            w.id,
		HasTranscript: w.transcript.Content != "",
		Filename:      w.transcript.Filename,
		Size:          len(w.transcript.Content),
		Preview:       w.transcript.Preview(),
		Instruction:   w.instruction,
		Selected:      w.selected.String(),
		Templates:     template.All(),
		CanGenerate:   w.canGenerateLocked() && !generating,
		Generating:    generating,
		Summary:       w.editor.Text(),
		WordCount:     w.editor.WordCount(),
		Edited:        w.editor.Edited(),
		View:          w.editor.View(generating),
		Steps:         buildSteps(w.stepLocked()),
		Share:         shareSnapshot(w.dialog),
	}
}

func shareSnapshot(d *share.Dialog) ShareSnapshot {
	return ShareSnapshot{
		Open:       d.IsOpen(),
		Recipients: d.Recipients(),
		Draft:      d.Draft(),
		Subject:    d.Subject(),
		Message:    d.Message(),
		CanAdd:     d.CanAdd(),
		CanSend:    d.CanSend(),
	}
}
