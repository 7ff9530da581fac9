package share

import "github.com/pkg/browser"

// Opener hands a compose link to whatever will display it.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

// Open calls f(url).
func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// BrowserOpener opens links in the system's default browser.
type BrowserOpener struct{}

// Open launches the default browser on url.
func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}

// Compile-time interface verification.
var (
	_ Opener = OpenerFunc(nil)
	_ Opener = BrowserOpener{}
)
