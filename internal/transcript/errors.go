package transcript

import "errors"

var (
	// ErrNotText indicates the input is neither text/plain nor a .txt file.
	ErrNotText = errors.New("not a text file")

	// ErrFileNotFound indicates the specified transcript file does not exist.
	ErrFileNotFound = errors.New("file not found")
)
