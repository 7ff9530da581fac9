package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-summary/internal/apierr"
	"github.com/alnah/go-summary/internal/cli"
	"github.com/alnah/go-summary/internal/config"
	"github.com/alnah/go-summary/internal/interrupt"
	"github.com/alnah/go-summary/internal/share"
	"github.com/alnah/go-summary/internal/summarize"
	"github.com/alnah/go-summary/internal/template"
	"github.com/alnah/go-summary/internal/transcript"
	"github.com/alnah/go-summary/internal/workspace"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitProvider   = 5
	ExitInterrupt  = interrupt.ExitInterrupt
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// First Ctrl+C cancels the context, a second one exits at once.
	handler, ctx := interrupt.NewHandler(context.Background())

	env := cli.DefaultEnv()

	err := newRootCmd(env).ExecuteContext(ctx)
	handler.Stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// newRootCmd assembles the command tree.
func newRootCmd(env *cli.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "summary",
		Short:   "Summarize meeting transcripts and share them by email",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(cli.ServeCmd(env))
	rootCmd.AddCommand(cli.GenerateCmd(env))
	rootCmd.AddCommand(cli.TemplatesCmd(env))
	rootCmd.AddCommand(cli.ShareCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	if isCobraUsageError(err) {
		return ExitUsage
	}

	if errors.Is(err, cli.ErrAPIKeyMissing) || errors.Is(err, summarize.ErrEmptyAPIKey) {
		return ExitSetup
	}

	if errors.Is(err, template.ErrUnknown) || errors.Is(err, transcript.ErrNotText) ||
		errors.Is(err, transcript.ErrFileNotFound) || errors.Is(err, cli.ErrFileNotFound) ||
		errors.Is(err, cli.ErrInstructionMissing) || errors.Is(err, cli.ErrOutputExists) ||
		errors.Is(err, workspace.ErrCannotGenerate) ||
		errors.Is(err, share.ErrNoRecipients) || errors.Is(err, share.ErrInvalidEmail) ||
		errors.Is(err, config.ErrUnknownKey) || errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrInvalidKey) || errors.Is(err, config.ErrNotDirectory) ||
		errors.Is(err, config.ErrNotWritable) {
		return ExitValidation
	}

	if apierr.IsProvider(err) {
		return ExitProvider
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"at least one of the flags", // One-required flag group violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
