package workspace

import "errors"

var (
	// ErrCannotGenerate indicates a generation was requested without a
	// transcript or without an instruction.
	ErrCannotGenerate = errors.New("transcript and instruction are required")

	// ErrSuperseded indicates a generation result arrived after a newer
	// request or a transcript change replaced it. The result is discarded.
	ErrSuperseded = errors.New("generation superseded")

	// ErrNotFound indicates an unknown or expired workspace id.
	ErrNotFound = errors.New("workspace not found")
)

// GenerateFailedMessage is shown when a summary could not be produced.
const GenerateFailedMessage = "Something went wrong!, Please try again Later"

// OpenFailedMessage is shown when the compose link could not be opened.
const OpenFailedMessage = "Could not open the email compose link"
