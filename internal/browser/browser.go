// Package browser opens URLs in the user's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a URL.
type Opener interface {
	Open(url string) error
}

// System launches the platform's URL handler without waiting for it.
type System struct{}

// Open starts the default browser on url.
func (System) Open(url string) error {
	name, args, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// command returns the launcher for goos.
func command(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	default:
		return "", nil, fmt.Errorf("open browser: not supported on %s", goos)
	}
}

// Nop ignores every request. Used when browser launching is disabled.
type Nop struct{}

// Open does nothing.
func (Nop) Open(string) error { return nil }
