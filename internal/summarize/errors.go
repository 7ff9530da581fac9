package summarize

import "errors"

// MissingTextMessage is the client-facing message for a request without text.
const MissingTextMessage = "User text missing in the file."

// ErrTextMissing indicates the request carried no transcript text.
var ErrTextMissing = errors.New("user text missing")

// ErrEmptyAPIKey indicates that the provider API key was not provided.
var ErrEmptyAPIKey = errors.New("API key is required")
