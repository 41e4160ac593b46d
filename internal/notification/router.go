package notification

import (
	"context"
	"net/url"
	"sync"

	"reviewwatch/internal/logging"
)

// Opener opens a pull request URL for the user.
type Opener interface {
	Open(url string) error
}

// Router remembers which URL each live notification points to and, for
// every ClickEvent, opens that URL and clears the notification. It is itself
// a Surface wrapping the surface it clears.
type Router struct {
	surface Surface
	opener  Opener

	mu   sync.Mutex
	urls map[string]string
}

func NewRouter(surface Surface, opener Opener) *Router {
	return &Router{surface: surface, opener: opener, urls: make(map[string]string)}
}

func (r *Router) Show(ctx context.Context, n Notification) error {
	if err := r.surface.Show(ctx, n); err != nil {
		return err
	}
	r.mu.Lock()
	r.urls[n.ID] = n.URL
	r.mu.Unlock()
	return nil
}

func (r *Router) Clear(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.urls, id)
	r.mu.Unlock()
	return r.surface.Clear(ctx, id)
}

// Run handles clicks until ctx is cancelled or events is closed.
func (r *Router) Run(ctx context.Context, events <-chan ClickEvent) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			r.HandleClick(ctx, ev)
		}
	}
}

// HandleClick opens the URL behind ev and clears its notification. Clicks
// on ids that were never shown are honoured only when the id itself is a
// web URL.
func (r *Router) HandleClick(ctx context.Context, ev ClickEvent) {
	r.mu.Lock()
	target, ok := r.urls[ev.ID]
	r.mu.Unlock()

	if !ok {
		if !isWebURL(ev.ID) {
			logging.Logger().Warn("ignoring click on unknown notification", "id", ev.ID)
			return
		}
		target = ev.ID
	}

	if err := r.opener.Open(target); err != nil {
		logging.Logger().Warn("failed to open pull request", "url", target, "error", err)
	}
	if err := r.Clear(ctx, ev.ID); err != nil {
		logging.Logger().Debug("failed to clear notification", "url", ev.ID, "error", err)
	}
}

func isWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}

var _ Surface = (*Router)(nil)
