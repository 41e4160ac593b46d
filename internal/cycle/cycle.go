// Package cycle runs one check of the viewer's pull requests from fetch to
// notification, and schedules such checks periodically.
package cycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"reviewwatch/internal/badge"
	"reviewwatch/internal/github"
	"reviewwatch/internal/logging"
	"reviewwatch/internal/review"
)

// Notifier shows notifications for pull requests that need them and returns
// the ones it showed.
type Notifier interface {
	Notify(ctx context.Context, prs []github.PullRequest) ([]github.PullRequest, error)
}

// Result describes a completed cycle.
type Result struct {
	CycleID    string
	Viewer     string
	Relevant   []github.PullRequest
	Unreviewed []github.PullRequest
	Notified   []github.PullRequest
	StartedAt  time.Time
	Duration   time.Duration
	// Shared is true when this caller joined a cycle already in flight.
	Shared bool
}

// Options tunes a Checker.
type Options struct {
	// SingleFlight makes overlapping Run calls share one cycle.
	SingleFlight bool
}

// Checker runs check cycles.
type Checker struct {
	fetcher  github.PullRequestFetcher
	badge    badge.Badge
	notifier Notifier
	opts     Options

	group singleflight.Group
	now   func() time.Time
}

func NewChecker(fetcher github.PullRequestFetcher, b badge.Badge, notifier Notifier, opts Options) *Checker {
	if b == nil {
		b = badge.Nop{}
	}
	return &Checker{
		fetcher:  fetcher,
		badge:    b,
		notifier: notifier,
		opts:     opts,
		now:      time.Now,
	}
}

// Run performs one cycle. A fetch failure ends the cycle before the badge or
// any notification is touched and returns a nil Result. A notify failure
// returns the Result so far, with the notifications that were shown, next to
// the error.
func (c *Checker) Run(ctx context.Context) (*Result, error) {
	if !c.opts.SingleFlight {
		return c.run(ctx)
	}

	v, err, shared := c.group.Do("cycle", func() (any, error) {
		return c.run(ctx)
	})
	out, _ := v.(*Result)
	if out == nil {
		return nil, err
	}
	res := *out
	res.Shared = shared
	return &res, err
}

func (c *Checker) run(ctx context.Context) (*Result, error) {
	res := &Result{CycleID: uuid.NewString(), StartedAt: c.now()}
	log := logging.Logger().With("cycle_id", res.CycleID)
	log.Debug("cycle started")

	fetched, err := c.fetcher.Fetch(ctx)
	if err != nil {
		log.Error("cycle failed", "stage", "fetch", "error", err)
		return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
	}
	res.Viewer = fetched.Viewer
	res.Relevant = fetched.PullRequests
	res.Unreviewed = review.Unreviewed(fetched.Viewer, fetched.PullRequests)

	if err := badge.Update(c.badge, len(res.Unreviewed)); err != nil {
		log.Warn("failed to update badge", "error", err)
	}

	notified, err := c.notifier.Notify(ctx, res.Unreviewed)
	res.Notified = notified
	res.Duration = c.now().Sub(res.StartedAt)
	if err != nil {
		log.Error("cycle failed", "stage", "notify", "error", err, "shown", urls(notified))
		return res, fmt.Errorf("failed to notify: %w", err)
	}

	log.Info("cycle finished",
		"viewer", res.Viewer,
		"relevant", len(res.Relevant),
		"unreviewed", len(res.Unreviewed),
		"notified", len(res.Notified),
		"duration", res.Duration,
	)
	return res, nil
}

func urls(prs []github.PullRequest) []string {
	out := make([]string, len(prs))
	for i, pr := range prs {
		out[i] = pr.URL
	}
	return out
}
