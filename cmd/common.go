package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"reviewwatch/internal/badge"
	"reviewwatch/internal/config"
	"reviewwatch/internal/cycle"
	"reviewwatch/internal/github"
	"reviewwatch/internal/logging"
	"reviewwatch/internal/notification"
	"reviewwatch/internal/storage"
	"reviewwatch/internal/ui"
)

// app holds the components a command needs, built from the config file.
type app struct {
	cfg     *config.Config
	creds   *storage.Manager
	tokens  *github.ChainTokenProvider
	fetcher *github.Fetcher
	logPath string

	store   storage.RecordStore
	closers []func() error
}

// newApp loads the config and sets up logging and credentials. The record
// store is opened separately by openStore since only some commands need it.
func newApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if report := cfg.Validate(); !report.IsValid() {
		return nil, fmt.Errorf("invalid config %s: %s", cfg.Path(), report.Errors[0])
	}

	dir := cfg.Storage.Dir
	if dir == "" {
		dir = storage.DefaultDir()
	}

	logPath, err := logging.Initialize(logging.Options{
		Debug:    opts.debug || cfg.Logging.Debug,
		File:     cfg.Logging.File,
		Dir:      filepath.Join(dir, "logs"),
		MaxFiles: cfg.Logging.MaxFiles,
		Verbose:  opts.verbose,
		Stderr:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	creds := storage.NewManager(dir)
	tokens := github.NewChainTokenProvider(creds)

	return &app{
		cfg:     cfg,
		creds:   creds,
		tokens:  tokens,
		fetcher: github.NewFetcher(tokens, cfg.GitHub.APIURL, cfg.Timeout()),
		logPath: logPath,
	}, nil
}

func (a *app) openStore() (storage.RecordStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := storage.Open(a.cfg.Storage.Backend, a.creds.Dir())
	if err != nil {
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		a.closers = append(a.closers, c.Close)
	}
	a.store = store
	return store, nil
}

const badgeLabel = "Awaiting your review:"

// badge returns the configured badge. Terminal badges draw on w.
func (a *app) badge(w io.Writer) badge.Badge {
	switch a.cfg.Badge.Kind {
	case config.BadgeFile:
		return badge.NewFileBadge(a.cfg.Badge.File)
	case config.BadgeBoth:
		return badge.Multi{badge.NewTerminalBadge(w, badgeLabel), badge.NewFileBadge(a.cfg.Badge.File)}
	case config.BadgeNone:
		return badge.Nop{}
	default:
		return badge.NewTerminalBadge(w, badgeLabel)
	}
}

// surface returns the configured notification surface. Desktop
// notifications fall back to console when the platform has no notifier, and
// "both" prints every notification as well. Clicks on desktop notifications
// are sent on clicks when it is non-nil.
func (a *app) surface(console *ui.Console, clicks chan<- notification.ClickEvent) notification.Surface {
	consoleSurface := notification.NewConsoleSurface(console)
	if a.cfg.Notifications.Surface == config.SurfaceConsole {
		return consoleSurface
	}

	desktop := notification.NewDesktopSurface(clicks)
	a.closers = append(a.closers, desktop.Close)
	if a.cfg.Notifications.Surface == config.SurfaceBoth {
		return notification.MultiSurface{desktop, consoleSurface}
	}
	return notification.NewFallbackSurface(desktop, consoleSurface)
}

// checker wires the fetcher, badge and notifier into a cycle checker.
func (a *app) checker(b badge.Badge, surface notification.Surface) (*cycle.Checker, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	dedup := notification.NewDeduplicator(store, surface, a.cfg.Notifications.Title)
	return cycle.NewChecker(a.fetcher, b, dedup, cycle.Options{SingleFlight: a.cfg.Watch.SingleFlight}), nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logging.Logger().Warn("failed to close resource", "error", err)
		}
	}
	a.closers = nil
}

// explain adds a next step to errors the user can act on.
func explain(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, github.ErrNoToken) {
		return fmt.Errorf("%w\n%s", err, ui.Next("run `reviewwatch auth login` or set GITHUB_TOKEN"))
	}
	if github.IsAuthError(err) {
		return fmt.Errorf("%w\n%s", err, ui.Next("your token was rejected; run `reviewwatch auth login` again"))
	}
	return err
}
