package browser

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"

	"github.com/pkg/browser"
)

// Opener launches a URL in the user's browser
type Opener interface {
	Open(url string) error
}

// System opens URLs with the platform's default handler.
// Output of the launcher goes to Stdout and Stderr when set.
type System struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Open implements Opener
func (s System) Open(u string) error {
	if s.Stdout != nil {
		browser.Stdout = s.Stdout
	}
	if s.Stderr != nil {
		browser.Stderr = s.Stderr
	}
	return browser.OpenURL(u)
}

// FileURL returns the file:// URL for path, made absolute first
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	slashed := filepath.ToSlash(abs)
	if filepath.VolumeName(abs) != "" {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String(), nil
}
