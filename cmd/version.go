package cmd

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"reviewwatch/internal/ui"
	"reviewwatch/internal/version"
)

func newVersionCmd() *cobra.Command {
	var checkUpdate bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, build information, and runtime details for reviewwatch.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ui.NewConsoleWithWriter(cmd.OutOrStdout())
			out.Printf("reviewwatch version %s\n", appVersion)
			out.Printf("Commit: %s\n", appCommitHash)
			out.Printf("Built: %s\n", appBuildDate)
			out.Printf("Go version: %s\n", runtime.Version())
			out.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

			if !checkUpdate {
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			msg, err := newVersionChecker().UpdateMessage(ctx, appVersion)
			if err != nil {
				// Update checks never fail the command.
				out.Println(ui.Warning(fmt.Sprintf("Failed to check for updates: %v", err)))
				return nil
			}
			if msg == "" {
				out.Println(ui.Success("You're running the latest version"))
				return nil
			}
			out.Println(msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkUpdate, "check", false, "Check for available updates")
	return cmd
}

// newVersionChecker is replaced in tests.
var newVersionChecker = version.NewChecker
