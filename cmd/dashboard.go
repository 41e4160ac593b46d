package cmd

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"reviewwatch/internal/badge"
	"reviewwatch/internal/config"
	"reviewwatch/internal/notification"
	"reviewwatch/internal/tui"
	"reviewwatch/internal/ui"
)

func newDashboardCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive view of pull requests awaiting review",
		Long: `Show the pull requests awaiting your review in a full-screen view that
refreshes every interval. Refreshes run full check cycles, so notifications
keep working while the dashboard is open.

Keys: up/down to move, enter to open in the browser, r to refresh, q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			// The dashboard draws its own badge; file badges still update.
			var b badge.Badge = badge.Nop{}
			if a.cfg.Badge.Kind == config.BadgeFile {
				b = a.badge(cmd.OutOrStdout())
			}

			// Console output would overdraw the full-screen view.
			console := ui.Stdout()
			console.Hold()
			defer console.Release()

			clicks := make(chan notification.ClickEvent, 16)
			router := notification.NewRouter(a.surface(console, clicks), notification.NewBrowserOpener())
			checker, err := a.checker(b, router)
			if err != nil {
				return err
			}

			model := tui.NewModel(checker, clicks, a.cfg.Interval())
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

			ctx, cancel := context.WithCancel(cmd.Context())
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return router.Run(gctx, clicks) })
			g.Go(func() error {
				defer cancel()
				_, err := program.Run()
				if errors.Is(err, tea.ErrProgramKilled) {
					return nil
				}
				return err
			})
			return g.Wait()
		},
	}
}
