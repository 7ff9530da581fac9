package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/alnah/go-summary/internal/share"
)

// shareOptions holds the recipients and mail fields for a handoff.
type shareOptions struct {
	recipients []string
	subject    string
	message    string
	open       bool
}

// parseRecipients validates addresses. Duplicates are dropped.
func parseRecipients(addrs []string) ([]string, error) {
	d := share.New()
	d.Open()
	for _, a := range addrs {
		if err := d.Add(a); err != nil && !errors.Is(err, share.ErrDuplicate) {
			return nil, err
		}
	}
	return d.Recipients(), nil
}

// printOpener writes the link instead of opening it.
type printOpener struct{ env *Env }

func (p printOpener) Open(url string) error {
	_, err := fmt.Fprintf(p.env.Stderr, "Compose link: %s\n", url)
	return err
}

// handoff builds the compose link for summary and opens or prints it.
func handoff(env *Env, summary string, opts shareOptions) error {
	d := share.New()
	d.Open()
	for _, r := range opts.recipients {
		if err := d.Add(r); err != nil && !errors.Is(err, share.ErrDuplicate) {
			return err
		}
	}
	d.SetSubject(opts.subject)
	d.SetMessage(opts.message)

	var opener share.Opener = printOpener{env: env}
	if opts.open {
		opener = env.Opener
	}

	h, err := d.Send(summary, opener)
	if errors.Is(err, share.ErrOpenFailed) {
		_, _ = fmt.Fprintf(env.Stderr, "Could not open a browser; compose link: %s\n", h.URL)
		return err
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(env.Stderr, h.Notice())
	return nil
}

// addShareFlags registers the recipient and mail flags on a command.
func addShareFlags(flags *pflag.FlagSet, to *[]string, subject, message *string, open *bool) {
	flags.StringSliceVar(to, "to", nil, "Recipient email address (repeatable or comma-separated)")
	flags.StringVar(subject, "subject", share.DefaultSubject, "Email subject")
	flags.StringVar(message, "message", share.DefaultMessage, "Personal message placed above the summary")
	flags.BoolVar(open, "open", false, "Open the compose link in the default browser instead of printing it")
}
