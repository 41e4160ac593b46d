package notification

import (
	"context"
	"sync"

	"reviewwatch/internal/ui"
)

// ConsoleSurface prints notifications to a console. It tracks live ids so
// that showing an id again is reported as an update of the same alert.
type ConsoleSurface struct {
	console *ui.Console

	mu   sync.Mutex
	live map[string]struct{}
}

func NewConsoleSurface(console *ui.Console) *ConsoleSurface {
	if console == nil {
		console = ui.Stdout()
	}
	return &ConsoleSurface{console: console, live: make(map[string]struct{})}
}

func (s *ConsoleSurface) Show(ctx context.Context, n Notification) error {
	s.mu.Lock()
	_, updated := s.live[n.ID]
	s.live[n.ID] = struct{}{}
	s.mu.Unlock()

	title := n.Title
	if updated {
		title += " " + ui.Dim("(updated)")
	}
	s.console.Printf("%s %s: %s\n", ui.SymbolBell, ui.Bold(title), n.Body)
	if n.URL != "" {
		s.console.Println(ui.Indent(ui.InfoText(n.URL), 3))
	}
	return nil
}

func (s *ConsoleSurface) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, id)
	return nil
}
