package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"reviewwatch/internal/cycle"
	"reviewwatch/internal/notification"
	"reviewwatch/internal/ui"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check periodically and show notifications",
		Long: `Run a check immediately and then on every interval (watch.interval_seconds)
until interrupted. Clicking a desktop notification opens the pull request in
your browser. Send SIGHUP to check right away.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			console := ui.NewConsoleWithWriter(out)
			clicks := make(chan notification.ClickEvent, 16)
			router := notification.NewRouter(a.surface(console, clicks), notification.NewBrowserOpener())

			checker, err := a.checker(a.badge(out), router)
			if err != nil {
				return err
			}

			scheduler := cycle.NewScheduler(checker, a.cfg.Interval())
			scheduler.OnResult = func(res *cycle.Result, err error) {
				if res != nil && (err != nil || !quiet) {
					console.Println(summarize(res))
				}
				if err != nil {
					console.Println(ui.Error(explain(err).Error()))
				}
			}

			refresh := make(chan os.Signal, 1)
			signal.Notify(refresh, syscall.SIGHUP)
			defer signal.Stop(refresh)

			console.Println(ui.Dim("Watching every " + a.cfg.Interval().String() + ". Press Ctrl+C to stop."))
			return runWatch(ctx, scheduler, router, clicks, refresh)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print failures")
	return cmd
}

// runWatch runs the scheduler and the click router until ctx is done. Every
// value on refresh asks the scheduler for an immediate cycle.
func runWatch(ctx context.Context, scheduler *cycle.Scheduler, router *notification.Router, clicks <-chan notification.ClickEvent, refresh <-chan os.Signal) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return scheduler.Start(gctx) })
	g.Go(func() error { return router.Run(gctx, clicks) })
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-refresh:
				scheduler.Trigger()
			}
		}
	})
	return g.Wait()
}
