package notification

import (
	"context"
	"errors"
	"sync"

	"reviewwatch/internal/logging"
)

// MultiSurface shows every notification on all of its surfaces. A
// notification counts as shown when at least one surface showed it.
type MultiSurface []Surface

func (m MultiSurface) Show(ctx context.Context, n Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Show(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 && len(errs) < len(m) {
		logging.Logger().Warn("notification surface failed", "url", n.ID, "error", errors.Join(errs...))
		return nil
	}
	return errors.Join(errs...)
}

func (m MultiSurface) Clear(ctx context.Context, id string) error {
	var errs []error
	for _, s := range m {
		if err := s.Clear(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FallbackSurface shows on Primary and switches to Fallback for any
// notification Primary rejects. Clear goes to whichever surface showed id.
type FallbackSurface struct {
	Primary  Surface
	Fallback Surface

	mu       sync.Mutex
	fellBack map[string]bool
}

func NewFallbackSurface(primary, fallback Surface) *FallbackSurface {
	return &FallbackSurface{Primary: primary, Fallback: fallback, fellBack: make(map[string]bool)}
}

func (f *FallbackSurface) Show(ctx context.Context, n Notification) error {
	err := f.Primary.Show(ctx, n)
	if err == nil {
		f.setFellBack(n.ID, false)
		return nil
	}

	logging.Logger().Debug("primary notification surface failed, using fallback", "url", n.ID, "error", err)
	if ferr := f.Fallback.Show(ctx, n); ferr != nil {
		return errors.Join(err, ferr)
	}
	f.setFellBack(n.ID, true)
	return nil
}

func (f *FallbackSurface) Clear(ctx context.Context, id string) error {
	f.mu.Lock()
	fellBack := f.fellBack[id]
	delete(f.fellBack, id)
	f.mu.Unlock()

	if fellBack {
		return f.Fallback.Clear(ctx, id)
	}
	return f.Primary.Clear(ctx, id)
}

func (f *FallbackSurface) setFellBack(id string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fellBack[id] = v
}

// MemorySurface records notifications in memory.
type MemorySurface struct {
	mu      sync.Mutex
	shown   []Notification
	cleared []string
	// ShowErr, when set, decides the error returned for each Show.
	ShowErr func(n Notification) error
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (m *MemorySurface) Show(ctx context.Context, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShowErr != nil {
		if err := m.ShowErr(n); err != nil {
			return err
		}
	}
	m.shown = append(m.shown, n)
	return nil
}

func (m *MemorySurface) Clear(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = append(m.cleared, id)
	return nil
}

// Shown returns the notifications shown so far, oldest first.
func (m *MemorySurface) Shown() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.shown...)
}

// Cleared returns the ids cleared so far.
func (m *MemorySurface) Cleared() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.cleared...)
}

var (
	_ Surface = MultiSurface(nil)
	_ Surface = (*FallbackSurface)(nil)
	_ Surface = (*MemorySurface)(nil)
	_ Surface = (*ConsoleSurface)(nil)
)
