package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIKeyMissing indicates GROQ_API_KEY environment variable is not set.
	ErrAPIKeyMissing = errors.New("GROQ_API_KEY environment variable not set")

	// ErrInstructionMissing indicates neither a template nor a non-blank
	// instruction was given.
	ErrInstructionMissing = errors.New("instruction is required")

	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")
)
