// Package workspace holds one user's summarizing session: the transcript,
// the instruction, the generated summary and the share dialog.
//
// A Workspace is safe for concurrent use. Long calls to the completion
// service happen outside the lock through a Request handle, so a transcript
// change or a newer request can supersede a generation in flight.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/alnah/go-summary/internal/editor"
	"github.com/alnah/go-summary/internal/share"
	"github.com/alnah/go-summary/internal/summarize"
	"github.com/alnah/go-summary/internal/template"
	"github.com/alnah/go-summary/internal/transcript"
)

// NoticeKind distinguishes success toasts from error toasts.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota + 1
	NoticeError
)

// Notice is a one-shot message shown on the next render.
type Notice struct {
	Kind NoticeKind
	Text string
	// Link is set when a compose link should be opened by the page.
	Link string
}

// IsZero reports whether there is no notice.
func (n Notice) IsZero() bool { return n.Kind == 0 }

// IsError reports whether the notice reports a failure.
func (n Notice) IsError() bool { return n.Kind == NoticeError }

// Request is the handle of one generation. It carries the inputs captured
// when the generation began.
type Request struct {
	id          string
	ctx         context.Context
	cancel      context.CancelFunc
	text        string
	instruction string
}

// ID returns the request identifier.
func (r *Request) ID() string { return r.id }

// Context is cancelled when the request is superseded.
func (r *Request) Context() context.Context { return r.ctx }

// Summarize returns the completion request for this generation.
func (r *Request) Summarize() summarize.Request {
	return summarize.NewRequest(r.text, r.instruction)
}

// Workspace is one summarizing session.
type Workspace struct {
	id string

	mu          sync.Mutex
	transcript  transcript.Transcript
	instruction string
	selected    template.Name
	editor      *editor.Editor
	dialog      *share.Dialog
	pending     *Request
	notice      Notice
}

// New returns an empty workspace with a fresh id.
func New() *Workspace {
	return &Workspace{
		id:     uuid.NewString(),
		editor: &editor.Editor{},
		dialog: share.New(),
	}
}

// ID returns the workspace identifier.
func (w *Workspace) ID() string { return w.id }

// ---- Transcript ----

// LoadTranscript replaces the transcript and clears the summary. A generation
// in flight is superseded.
func (w *Workspace) LoadTranscript(t transcript.Transcript) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.transcript = t
	w.editor.Reset()
	w.supersedeLocked()
}

// ClearTranscript returns to the no-transcript state.
func (w *Workspace) ClearTranscript() {
	w.LoadTranscript(transcript.Transcript{})
}

// Transcript returns the loaded transcript.
func (w *Workspace) Transcript() transcript.Transcript {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.transcript
}

// ---- Instruction ----

// SetInstruction stores free-text instructions and clears the template highlight.
func (w *Workspace) SetInstruction(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.instruction = s
	w.selected = template.Name{}
}

// SelectTemplate overwrites the instruction with the preset's prompt and
// highlights the preset.
func (w *Workspace) SelectTemplate(id string) error {
	name, err := template.ParseName(id)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.instruction = name.Prompt()
	w.selected = name
	return nil
}

// Instruction returns the current instruction.
func (w *Workspace) Instruction() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.instruction
}

// Selected returns the highlighted preset, zero if none.
func (w *Workspace) Selected() template.Name {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected
}

// CanGenerate reports whether the transcript has non-whitespace content and
// the instruction is not blank.
func (w *Workspace) CanGenerate() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canGenerateLocked()
}

func (w *Workspace) canGenerateLocked() bool {
	return !w.transcript.IsEmpty() && strings.TrimSpace(w.instruction) != ""
}

// ---- Generation ----

// Generating reports whether a generation is in flight.
func (w *Workspace) Generating() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != nil
}

// BeginGeneration captures the current transcript and instruction into a new
// Request derived from ctx. A previous request still in flight is cancelled.
func (w *Workspace) BeginGeneration(ctx context.Context) (*Request, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.canGenerateLocked() {
		return nil, ErrCannotGenerate
	}
	w.supersedeLocked()

	rctx, cancel := context.WithCancel(ctx)
	req := &Request{
		id:          uuid.NewString(),
		ctx:         rctx,
		cancel:      cancel,
		text:        w.transcript.Content,
		instruction: w.instruction,
	}
	w.pending = req
	return req, nil
}

// Complete applies the outcome of req. If req is no longer current the
// outcome is dropped and ErrSuperseded returned. A failed generation leaves
// the summary untouched and records an error notice.
func (w *Workspace) Complete(req *Request, text string, err error) error {
	req.cancel()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != req {
		return ErrSuperseded
	}
	w.pending = nil

	if err != nil {
		w.notice = Notice{Kind: NoticeError, Text: GenerateFailedMessage}
		return nil
	}
	w.editor.Load(text)
	return nil
}

// Generate runs one generation against s. The summarizer error, if any, is
// returned after being recorded as a notice so callers can log it.
func (w *Workspace) Generate(ctx context.Context, s summarize.Summarizer) error {
	req, err := w.BeginGeneration(ctx)
	if err != nil {
		return err
	}

	text, genErr := s.Summarize(req.Context(), req.Summarize())
	if err := w.Complete(req, text, genErr); err != nil {
		return err
	}
	if genErr != nil {
		return fmt.Errorf("generation %s: %w", req.ID(), genErr)
	}
	return nil
}

func (w *Workspace) supersedeLocked() {
	if w.pending != nil {
		w.pending.cancel()
		w.pending = nil
	}
}

// Close cancels any generation in flight.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.supersedeLocked()
}

// ---- Summary ----

// EditSummary applies a user edit. Rejected while generating.
func (w *Workspace) EditSummary(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		return editor.ErrBusy
	}
	w.editor.Edit(text)
	return nil
}

// Edited reports whether the user changed the summary since the transcript
// was loaded.
func (w *Workspace) Edited() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editor.Edited()
}

// Summary returns the current summary text.
func (w *Workspace) Summary() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editor.Text()
}

// ---- Progress ----

// Step returns the current progress step, 1 to 3.
func (w *Workspace) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stepLocked()
}

func (w *Workspace) stepLocked() int {
	return currentStep(w.transcript.Content != "", w.editor.Text() != "")
}

// Steps returns the three progress descriptors for the current step.
func (w *Workspace) Steps() []Step {
	return buildSteps(w.Step())
}

// ---- Share ----

// OpenShare shows the share dialog. Rejected while generating.
func (w *Workspace) OpenShare() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editor.CanShare(w.pending != nil); err != nil {
		return err
	}
	w.dialog.Open()
	return nil
}

// CancelShare discards the share form.
func (w *Workspace) CancelShare() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dialog.Cancel()
}

// UpdateShare stores the form fields typed so far.
func (w *Workspace) UpdateShare(draft, subject, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dialog.SetDraft(draft)
	w.dialog.SetSubject(subject)
	w.dialog.SetMessage(message)
}

// AddRecipient adds the current draft. Rejections leave the draft in place
// and record no notice; the page keeps the add control disabled instead.
func (w *Workspace) AddRecipient() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dialog.AddDraft()
}

// RemoveRecipient drops addr from the recipients.
func (w *Workspace) RemoveRecipient(addr string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dialog.Remove(addr)
}

// SendShare hands the current summary to opener and records the outcome
// as a notice.
func (w *Workspace) SendShare(opener share.Opener) (share.Handoff, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	h, err := w.dialog.Send(w.editor.Text(), opener)
	switch {
	case errors.Is(err, share.ErrOpenFailed):
		w.notice = Notice{Kind: NoticeError, Text: OpenFailedMessage, Link: h.URL}
	case err != nil:
		w.notice = Notice{Kind: NoticeError, Text: err.Error()}
	default:
		w.notice = Notice{Kind: NoticeSuccess, Text: h.Notice(), Link: h.URL}
	}
	return h, err
}

// ---- Notices ----

// Notify records a notice, replacing any pending one.
func (w *Workspace) Notify(kind NoticeKind, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notice = Notice{Kind: kind, Text: text}
}

// TakeNotice returns the pending notice and clears it.
func (w *Workspace) TakeNotice() Notice {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.notice
	w.notice = Notice{}
	return n
}
