//go:build !linux && !darwin

package notification

import "context"

func (d *DesktopSurface) show(ctx context.Context, n Notification) error {
	return ErrUnsupported
}

func (d *DesktopSurface) close(ctx context.Context, handle string) error {
	return nil
}
