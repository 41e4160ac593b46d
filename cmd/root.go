package cmd

import (
	"github.com/spf13/cobra"

	"reviewwatch/internal/ui"
)

// Version information (set at build time)
var (
	appVersion    = "dev"
	appCommitHash = "unknown"
	appBuildDate  = "unknown"
)

// SetVersionInfo sets the version information from build-time variables
func SetVersionInfo(version, commitHash, buildDate string) {
	appVersion = version
	appCommitHash = commitHash
	appBuildDate = buildDate
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	debug      bool
	verbose    bool
	noColor    bool
}

// NewRootCmd creates a new instance of the root command.
// Each call builds an independent command tree so tests do not share flag state.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "reviewwatch",
		Short: "Watch GitHub for pull requests awaiting your review",
		Long: `reviewwatch polls GitHub for open pull requests that are assigned to you
or request your review, counts the ones you have not caught up with, and
notifies you once per update.

Examples:
  reviewwatch check        # Run one check and print the count
  reviewwatch watch        # Check every minute and show desktop notifications
  reviewwatch status       # List relevant pull requests and their review state
  reviewwatch dashboard    # Interactive view that refreshes itself
  reviewwatch auth login   # Save a GitHub token`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				ui.SetColorEnabled(false)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $REVIEWWATCH_CONFIG or ~/.config/reviewwatch/config.json)")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs to a file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "mirror logs to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newDashboardCmd(opts))
	cmd.AddCommand(newAuthCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
