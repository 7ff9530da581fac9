// Package share implements the share dialog: recipient collection and the
// handoff of a summary to a mail-compose link. No email is sent from here.
package share

import (
	"fmt"
	"slices"
	"strings"
)

// Default form values, restored whenever the dialog closes.
const (
	DefaultSubject = "Meeting Summary"
	DefaultMessage = "Please find the meeting summary below:"
)

// State is the dialog lifecycle state.
type State int

const (
	Closed State = iota
	Open
	Sending
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case Sending:
		return "Sending"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Handoff describes a completed send.
type Handoff struct {
	URL        string
	Recipients int
}

// Notice is the success message shown after a handoff.
func (h Handoff) Notice() string {
	suffix := ""
	if h.Recipients > 1 {
		suffix = "s"
	}
	return fmt.Sprintf("Summary sent to %d recipient%s", h.Recipients, suffix)
}

// Dialog holds the transient share form. Use New to get one with defaults.
type Dialog struct {
	state      State
	recipients []string
	draft      string
	subject    string
	message    string
}

// New returns a closed dialog with default subject and message.
func New() *Dialog {
	d := &Dialog{}
	d.reset()
	return d
}

func (d *Dialog) reset() {
	d.state = Closed
	d.recipients = nil
	d.draft = ""
	d.subject = DefaultSubject
	d.message = DefaultMessage
}

// Open shows the dialog. Opening an open dialog is a no-op.
func (d *Dialog) Open() {
	if d.state == Closed {
		d.state = Open
	}
}

// Cancel discards the form and closes the dialog.
func (d *Dialog) Cancel() {
	d.reset()
}

// State returns the current lifecycle state.
func (d *Dialog) State() State { return d.state }

// IsOpen reports whether the dialog is shown.
func (d *Dialog) IsOpen() bool { return d.state != Closed }

// Recipients returns a copy of the recipient list in insertion order.
func (d *Dialog) Recipients() []string { return slices.Clone(d.recipients) }

// Draft returns the address being typed.
func (d *Dialog) Draft() string { return d.draft }

// Subject returns the subject line.
func (d *Dialog) Subject() string { return d.subject }

// Message returns the personal message.
func (d *Dialog) Message() string { return d.message }

// SetDraft updates the address being typed.
func (d *Dialog) SetDraft(s string) { d.draft = s }

// SetSubject updates the subject line.
func (d *Dialog) SetSubject(s string) { d.subject = s }

// SetMessage updates the personal message.
func (d *Dialog) SetMessage(s string) { d.message = s }

// CanAdd reports whether the current draft would be accepted by AddDraft.
func (d *Dialog) CanAdd() bool {
	addr := strings.TrimSpace(d.draft)
	return ValidEmail(addr) && !slices.Contains(d.recipients, addr)
}

// CanSend reports whether Send would proceed past validation.
func (d *Dialog) CanSend() bool {
	return d.state == Open && len(d.recipients) > 0
}

// AddDraft adds the current draft as a recipient.
func (d *Dialog) AddDraft() error {
	return d.Add(d.draft)
}

// Add appends the trimmed address to the recipient set and clears the draft.
// Invalid or duplicate addresses leave both the set and the draft unchanged.
func (d *Dialog) Add(addr string) error {
	addr = strings.TrimSpace(addr)
	if !ValidEmail(addr) {
		return fmt.Errorf("%q: %w", addr, ErrInvalidEmail)
	}
	if slices.Contains(d.recipients, addr) {
		return fmt.Errorf("%q: %w", addr, ErrDuplicate)
	}
	d.recipients = append(d.recipients, addr)
	d.draft = ""
	return nil
}

// Remove drops addr from the recipients. Unknown addresses are ignored.
func (d *Dialog) Remove(addr string) {
	d.recipients = slices.DeleteFunc(d.recipients, func(r string) bool { return r == addr })
}

// Send hands the summary to opener as a compose link, then resets and closes
// the dialog. Without recipients it returns ErrNoRecipients, opens nothing and
// stays open. If the opener fails the dialog still resets, and the failure is
// returned wrapped in ErrOpenFailed together with the attempted handoff.
func (d *Dialog) Send(summary string, opener Opener) (Handoff, error) {
	if d.state != Open {
		return Handoff{}, ErrNotOpen
	}
	if len(d.recipients) == 0 {
		return Handoff{}, ErrNoRecipients
	}

	d.state = Sending
	h := Handoff{
		URL:        ComposeURL(d.recipients, d.subject, Body(d.message, summary)),
		Recipients: len(d.recipients),
	}
	err := opener.Open(h.URL)
	d.reset()

	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	return h, nil
}
