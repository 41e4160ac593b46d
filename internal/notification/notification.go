// Package notification decides which pull requests deserve a notification,
// shows them on a desktop or console surface and routes clicks back to the
// browser.
package notification

import (
	"context"
	"errors"
)

// DefaultTitle is the heading of every pull request notification.
const DefaultTitle = "New pull request"

// ErrUnsupported is returned by surfaces that cannot run on this platform.
var ErrUnsupported = errors.New("notification surface not supported on this platform")

// Notification is one user-visible alert. ID is the pull request URL, so
// showing the same pull request again replaces the earlier alert.
type Notification struct {
	ID                 string
	Title              string
	Body               string
	URL                string
	RequireInteraction bool
}

// Surface displays notifications.
type Surface interface {
	Show(ctx context.Context, n Notification) error
	Clear(ctx context.Context, id string) error
}

// ClickEvent reports that the user activated the notification with ID.
type ClickEvent struct {
	ID string
}
