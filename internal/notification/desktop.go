package notification

import (
	"context"
	"sync"
)

// AppName labels desktop notifications.
const AppName = "reviewwatch"

// DesktopSurface shows notifications through the operating system's
// notification service by running its command-line tools. When clicks is
// non-nil, activations are reported on it; Close stops that tracking.
type DesktopSurface struct {
	clicks chan<- ClickEvent

	mu      sync.Mutex
	handles map[string]string
	waiters map[string]*waiter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDesktopSurface(clicks chan<- ClickEvent) *DesktopSurface {
	ctx, cancel := context.WithCancel(context.Background())
	return &DesktopSurface{
		clicks:  clicks,
		handles: make(map[string]string),
		waiters: make(map[string]*waiter),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (d *DesktopSurface) Show(ctx context.Context, n Notification) error {
	return d.show(ctx, n)
}

func (d *DesktopSurface) Clear(ctx context.Context, id string) error {
	d.mu.Lock()
	handle, ok := d.handles[id]
	delete(d.handles, id)
	d.mu.Unlock()
	d.stopWaiter(id)

	if !ok {
		return nil
	}
	return d.close(ctx, handle)
}

// Close stops waiting for clicks on notifications that are still open.
func (d *DesktopSurface) Close() error {
	d.cancel()
	d.wg.Wait()
	return nil
}

func (d *DesktopSurface) handle(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, ok := d.handles[id]
	return h, ok
}

func (d *DesktopSurface) setHandle(id, handle string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handles[id] = handle
}

// waiter is the process listening for clicks on one live notification.
type waiter struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// startWaiter replaces the click listener for id. The previous listener is
// stopped first: replacing a notification does not end its old listener, and
// both would report the same click.
func (d *DesktopSurface) startWaiter(id string) *waiter {
	ctx, cancel := context.WithCancel(d.ctx)
	w := &waiter{ctx: ctx, cancel: cancel}

	d.mu.Lock()
	prev := d.waiters[id]
	d.waiters[id] = w
	d.mu.Unlock()

	if prev != nil {
		prev.cancel()
	}
	return w
}

func (d *DesktopSurface) stopWaiter(id string) {
	d.mu.Lock()
	w := d.waiters[id]
	delete(d.waiters, id)
	d.mu.Unlock()

	if w != nil {
		w.cancel()
	}
}

// waiterDone forgets w once its process has exited, unless it was already
// replaced.
func (d *DesktopSurface) waiterDone(id string, w *waiter) {
	w.cancel()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.waiters[id] == w {
		delete(d.waiters, id)
	}
}

func (d *DesktopSurface) emitClick(w *waiter, id string) {
	if w.ctx.Err() != nil {
		return
	}
	select {
	case d.clicks <- ClickEvent{ID: id}:
	case <-w.ctx.Done():
	}
}

var _ Surface = (*DesktopSurface)(nil)
