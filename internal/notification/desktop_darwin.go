//go:build darwin

package notification

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Notifications posted by osascript have no handle: they cannot be cleared
// and clicks are not reported.
func (d *DesktopSurface) show(ctx context.Context, n Notification) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s" subtitle "%s"`,
		appleScriptEscape(n.Body), appleScriptEscape(n.Title), appleScriptEscape(n.URL))
	if err := exec.CommandContext(ctx, "osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

func (d *DesktopSurface) close(ctx context.Context, handle string) error {
	return nil
}

func appleScriptEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
