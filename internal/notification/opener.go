package notification

import (
	"fmt"
	"os/exec"
	"sync"

	"reviewwatch/internal/logging"
)

// BrowserOpener opens URLs in the default browser.
type BrowserOpener struct{}

func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{}
}

func (o *BrowserOpener) Open(url string) error {
	if !isWebURL(url) {
		return fmt.Errorf("refusing to open %q: not a web URL", url)
	}

	name, args := browserCommand(url)
	logging.Logger().Info("Opening browser", "command", name, "url", url)

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Logger().Warn("Browser opener exited with error", "error", err, "command", name)
		}
	}()
	return nil
}

// RecordingOpener collects opened URLs instead of launching a browser.
type RecordingOpener struct {
	mu     sync.Mutex
	opened []string
	Err    error
}

func (o *RecordingOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, url)
	return o.Err
}

// Opened returns the URLs passed to Open, oldest first.
func (o *RecordingOpener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}

var (
	_ Opener = (*BrowserOpener)(nil)
	_ Opener = (*RecordingOpener)(nil)
)
