package notification

import (
	"context"
	"fmt"

	"reviewwatch/internal/github"
	"reviewwatch/internal/logging"
	"reviewwatch/internal/storage"
)

// Deduplicator shows each pull request at most once per distinct update.
type Deduplicator struct {
	store   storage.RecordStore
	surface Surface
	title   string
}

// NewDeduplicator creates a deduplicator. An empty title uses DefaultTitle.
func NewDeduplicator(store storage.RecordStore, surface Surface, title string) *Deduplicator {
	if title == "" {
		title = DefaultTitle
	}
	return &Deduplicator{store: store, surface: surface, title: title}
}

// Select returns the pull requests that are new to record or were updated
// after their recorded notification, in input order.
func Select(record storage.NotificationRecord, prs []github.PullRequest) []github.PullRequest {
	selected := make([]github.PullRequest, 0, len(prs))
	for _, pr := range prs {
		last, seen := record[pr.URL]
		if !seen || pr.LastUpdatedMillis() > last {
			selected = append(selected, pr)
		}
	}
	return selected
}

// Notify shows a notification for every pull request in prs that Select
// picks, then records the ones that were actually shown. A pull request whose
// notification fails is left unrecorded so the next cycle retries it.
func (d *Deduplicator) Notify(ctx context.Context, prs []github.PullRequest) ([]github.PullRequest, error) {
	record, err := d.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notification record: %w", err)
	}

	candidates := Select(record, prs)
	if len(candidates) == 0 {
		return []github.PullRequest{}, nil
	}

	shown := make([]github.PullRequest, 0, len(candidates))
	for _, pr := range candidates {
		n := Notification{
			ID:                 pr.URL,
			Title:              d.title,
			Body:               pr.Title,
			URL:                pr.URL,
			RequireInteraction: true,
		}
		if err := d.surface.Show(ctx, n); err != nil {
			logging.Logger().Warn("failed to show notification", "url", pr.URL, "error", err)
			continue
		}
		shown = append(shown, pr)
	}

	if len(shown) == 0 {
		return shown, nil
	}

	// Re-read so entries written since the first load are merged, not lost.
	latest, err := d.store.Load(ctx)
	if err != nil {
		return shown, fmt.Errorf("failed to reload notification record: %w", err)
	}
	if latest == nil {
		latest = storage.NotificationRecord{}
	}
	updates := make(storage.NotificationRecord, len(shown))
	for _, pr := range shown {
		updates[pr.URL] = pr.LastUpdatedMillis()
	}
	latest.Merge(updates)

	if err := d.store.Save(ctx, latest); err != nil {
		return shown, fmt.Errorf("failed to save notification record: %w", err)
	}

	logging.Logger().Debug("notification record updated", "notified", len(shown), "entries", len(latest))
	return shown, nil
}
