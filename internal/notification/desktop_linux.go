//go:build linux

package notification

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"reviewwatch/internal/logging"
)

const clickAction = "default"

func (d *DesktopSurface) show(ctx context.Context, n Notification) error {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return fmt.Errorf("notify-send not found: %w", ErrUnsupported)
	}

	args := []string{"--app-name=" + AppName, "--print-id"}
	if h, ok := d.handle(n.ID); ok {
		args = append(args, "--replace-id="+h)
	}
	if n.RequireInteraction {
		args = append(args, "--urgency=critical")
	}

	if d.clicks == nil {
		body := n.Body
		if n.URL != "" {
			body += "\n" + n.URL
		}
		args = append(args, n.Title, body)
		out, err := exec.CommandContext(ctx, "notify-send", args...).Output()
		if err != nil {
			return fmt.Errorf("notify-send failed: %w", err)
		}
		if h := firstLine(string(out)); h != "" {
			d.setHandle(n.ID, h)
		}
		return nil
	}

	args = append(args, "--action="+clickAction+"=Open", "--wait", n.Title, n.Body)
	w := d.startWaiter(n.ID)
	cmd := exec.CommandContext(w.ctx, "notify-send", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		d.waiterDone(n.ID, w)
		return fmt.Errorf("notify-send failed: %w", err)
	}
	if err := cmd.Start(); err != nil {
		d.waiterDone(n.ID, w)
		return fmt.Errorf("notify-send failed: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	if scanner.Scan() {
		if h := strings.TrimSpace(scanner.Text()); h != "" {
			d.setHandle(n.ID, h)
		}
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.waiterDone(n.ID, w)
		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) == clickAction {
				d.emitClick(w, n.ID)
			}
		}
		if err := cmd.Wait(); err != nil && w.ctx.Err() == nil {
			logging.Logger().Debug("notify-send exited with error", "url", n.ID, "error", err)
		}
	}()
	return nil
}

func (d *DesktopSurface) close(ctx context.Context, handle string) error {
	cmd := exec.CommandContext(ctx, "gdbus", "call", "--session",
		"--dest", "org.freedesktop.Notifications",
		"--object-path", "/org/freedesktop/Notifications",
		"--method", "org.freedesktop.Notifications.CloseNotification", handle)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to close notification %s: %w", handle, err)
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
