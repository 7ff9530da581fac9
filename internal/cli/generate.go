package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alnah/go-summary/internal/config"
	"github.com/alnah/go-summary/internal/editor"
	"github.com/alnah/go-summary/internal/format"
	"github.com/alnah/go-summary/internal/template"
	"github.com/alnah/go-summary/internal/transcript"
	"github.com/alnah/go-summary/internal/workspace"
)

// generateOptions holds validated options for the generate command.
type generateOptions struct {
	inputPath   string
	output      string
	template    template.Name
	instruction string
	share       shareOptions
}

// GenerateCmd creates the generate command: load, instruct, generate and
// optionally share in one go.
func GenerateCmd(env *Env) *cobra.Command {
	var (
		output      string
		tmpl        string
		instruction string
		to          []string
		subject     string
		message     string
		open        bool
	)

	cmd := &cobra.Command{
		Use:   "generate <transcript.txt>",
		Short: "Summarize a transcript",
		Long: `Summarize a plain-text transcript with an LLM.

Pick a preset with --template or describe the summary you want with
--instruction. The summary is printed to stdout, or written to --output
(or to output-dir when configured).

With --to, a Gmail compose link prefilled with the summary is printed,
or opened in the browser with --open. Nothing is sent from here.`,
		Example: `  summary generate standup.txt -t actionItems
  summary generate meeting.txt -i "Summarize in 3 bullets" -o meeting_summary.md
  summary generate meeting.txt -t executive --to cto@example.com --open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseGenerateOptions(args[0], output, tmpl, instruction, to, subject, message, open)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&tmpl, "template", "t", "", "Preset: "+strings.Join(template.IDs(), ", "))
	cmd.Flags().StringVarP(&instruction, "instruction", "i", "", "Custom summary instructions")
	addShareFlags(cmd.Flags(), &to, &subject, &message, &open)

	cmd.MarkFlagsMutuallyExclusive("template", "instruction")
	cmd.MarkFlagsOneRequired("template", "instruction")

	return cmd
}

// parseGenerateOptions validates all inputs at the CLI boundary.
func parseGenerateOptions(inputPath, output, tmpl, instruction string, to []string, subject, message string, open bool) (generateOptions, error) {
	opts := generateOptions{inputPath: inputPath, output: output}

	if tmpl != "" {
		name, err := template.ParseName(tmpl)
		if err != nil {
			return generateOptions{}, err
		}
		opts.template = name
	} else if strings.TrimSpace(instruction) == "" {
		return generateOptions{}, ErrInstructionMissing
	}
	opts.instruction = instruction

	recipients, err := parseRecipients(to)
	if err != nil {
		return generateOptions{}, err
	}
	opts.share = shareOptions{recipients: recipients, subject: subject, message: message, open: open}

	return opts, nil
}

// runGenerate executes the three-step flow against a fresh workspace.
func runGenerate(ctx context.Context, env *Env, opts generateOptions) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	// Fail fast on missing credentials before touching the file.
	s, err := newSummarizer(env, cfg)
	if err != nil {
		return err
	}

	var t transcript.Transcript
	select {
	case res := <-transcript.LoadAsync(ctx, opts.inputPath):
		if res.Err != nil {
			return res.Err
		}
		t = res.Transcript
	case <-ctx.Done():
		return ctx.Err()
	}

	ws := workspace.New()
	ws.LoadTranscript(t)
	if !opts.template.IsZero() {
		if err := ws.SelectTemplate(opts.template.String()); err != nil {
			return err
		}
	} else {
		ws.SetInstruction(opts.instruction)
	}

	_, _ = fmt.Fprintf(env.Stderr, "Summarizing %s (%s)...\n", t.Filename, format.Size(len(t.Content)))
	start := time.Now()
	if err := ws.Generate(ctx, s); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	summary := ws.Summary()
	if err := writeSummary(env, cfg, opts, summary); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(env.Stderr, "Summary: %s in %s\n",
		format.Count(editor.WordCount(summary), "word"), format.DurationHuman(time.Since(start)))

	if len(opts.share.recipients) > 0 {
		return handoff(env, summary, opts.share)
	}
	return nil
}

// writeSummary prints to stdout unless an output path applies.
func writeSummary(env *Env, cfg config.Config, opts generateOptions, summary string) error {
	if opts.output == "" && cfg.OutputDir == "" {
		_, err := fmt.Fprintln(env.Stdout, summary)
		return err
	}

	path := config.ResolveOutputPath(opts.output, cfg.OutputDir, deriveSummaryName(opts.inputPath))
	if err := writeFileAtomic(path, summary); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(env.Stderr, "Wrote %s\n", path)
	return nil
}
