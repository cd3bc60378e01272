// Package clipboard places snapshot text on the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable reports that the platform offers no clipboard, for example
// a headless session without xclip or xsel.
var ErrUnavailable = errors.New("system clipboard is not available")

// Copy places text on the system clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}
