package share

import (
	"regexp"
	"strings"
)

// ComposeBaseURL is the mail-provider compose endpoint the handoff targets.
const ComposeBaseURL = "https://mail.google.com/mail/?view=cm&fs=1"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like local-part@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Body joins the personal message and the summary with a blank line.
func Body(message, summary string) string {
	return message + "\n\n" + summary
}

// ComposeURL builds the compose deep link with recipients (comma-joined),
// subject and body percent-encoded.
func ComposeURL(recipients []string, subject, body string) string {
	var b strings.Builder
	b.WriteString(ComposeBaseURL)
	b.WriteString("&to=")
	b.WriteString(EncodeComponent(strings.Join(recipients, ",")))
	b.WriteString("&su=")
	b.WriteString(EncodeComponent(subject))
	b.WriteString("&body=")
	b.WriteString(EncodeComponent(body))
	return b.String()
}

// EncodeComponent percent-encodes s the way browsers encode a URI component:
// everything except ASCII letters, digits and -_.!~*'() is escaped as UTF-8 bytes.
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
