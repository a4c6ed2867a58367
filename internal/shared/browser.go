package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// openers maps a GOOS to the command that hands a URL to the desktop.
var openers = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"freebsd": {"xdg-open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// OpenBrowser hands url to the platform's opener without waiting for it to exit.
// The serve command uses it to show the song listing once the server is configured.
func OpenBrowser(url string) error {
	goos := getRuntime()
	opener, ok := openers[goos]
	if !ok {
		return fmt.Errorf("%w: cannot open a browser on %s", ErrNotImplemented, goos)
	}

	args := append(opener[1:len(opener):len(opener)], url)
	cmd := exec.Command(opener[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	go cmd.Wait()
	return nil
}
