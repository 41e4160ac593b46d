package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewwatch/internal/cycle"
	"reviewwatch/internal/ui"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one check cycle",
		Long: `Fetch the pull requests assigned to you or awaiting your review, update
the badge, and notify about the ones you have not seen since their last update.

Exits with a non-zero status when GitHub cannot be reached or the token is
missing or rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			console := ui.NewConsoleWithWriter(cmd.OutOrStdout())
			checker, err := a.checker(a.badge(cmd.OutOrStdout()), a.surface(console, nil))
			if err != nil {
				return err
			}

			res, err := checker.Run(cmd.Context())
			if err != nil {
				if res != nil {
					console.Println(summarize(res))
				}
				return explain(err)
			}
			console.Println(summarize(res))
			return nil
		},
	}
}

func summarize(res *cycle.Result) string {
	msg := fmt.Sprintf("%d relevant, %d awaiting review, %d notified (@%s)",
		len(res.Relevant), len(res.Unreviewed), len(res.Notified), res.Viewer)
	if len(res.Unreviewed) == 0 {
		return ui.Success(msg)
	}
	return ui.Warning(msg)
}
