package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ShareCmd creates the share command: hand an existing summary file to a
// mail-compose link.
func ShareCmd(env *Env) *cobra.Command {
	var (
		to      []string
		subject string
		message string
		open    bool
	)

	cmd := &cobra.Command{
		Use:   "share <summary-file>",
		Short: "Build a Gmail compose link for a summary",
		Long: `Build a Gmail compose link prefilled with recipients, subject and
the summary, then print it or open it with --open.

No email is sent: the link opens a draft that you review and send.`,
		Example: `  summary share meeting_summary.md --to a@example.com,b@example.com
  summary share notes.md --to lead@example.com --subject "Sprint review" --open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipients, err := parseRecipients(to)
			if err != nil {
				return err
			}
			return runShare(env, args[0], shareOptions{
				recipients: recipients,
				subject:    subject,
				message:    message,
				open:       open,
			})
		},
	}

	addShareFlags(cmd.Flags(), &to, &subject, &message, &open)
	return cmd
}

// runShare reads the summary file and performs the handoff.
func runShare(env *Env, path string, opts shareOptions) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided by design
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return fmt.Errorf("cannot read summary: %w", err)
	}
	return handoff(env, string(data), opts)
}
