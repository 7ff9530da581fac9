package share

import "errors"

var (
	// ErrInvalidEmail indicates an address does not look like local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrDuplicate indicates the address is already a recipient.
	ErrDuplicate = errors.New("recipient already added")

	// ErrNoRecipients indicates a send was attempted without recipients.
	ErrNoRecipients = errors.New("No recipients, Please add atleast one email address")

	// ErrNotOpen indicates an operation that requires an open dialog.
	ErrNotOpen = errors.New("share dialog is not open")

	// ErrOpenFailed indicates the mail-compose link could not be opened.
	ErrOpenFailed = errors.New("could not open mail compose link")
)
