package template

import "errors"

// ErrUnknown indicates an invalid template ID was specified.
var ErrUnknown = errors.New("unknown template")
