// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier places text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// System copies to the OS clipboard through pbcopy, xclip, xsel,
// wl-copy or the Windows clipboard API, whichever the platform offers.
type System struct{}

// Copy writes text to the system clipboard.
func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no clipboard tool: install xclip, xsel or wl-clipboard")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Func adapts a function to Copier.
type Func func(text string) error

// Copy calls f.
func (f Func) Copy(text string) error { return f(text) }
