package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reviewwatch/internal/config"
	"reviewwatch/internal/ui"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigSetCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			out := ui.NewConsoleWithWriter(cmd.OutOrStdout())
			out.Println(ui.SectionDivider("Configuration"))
			out.Println(ui.KeyValue("file", cfg.Path()))
			for _, key := range config.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				if value == "" {
					value = ui.Dim("(default)")
				}
				out.Println(ui.KeyValue(key, value))
			}

			report := cfg.Validate()
			for _, w := range report.Warnings {
				out.Println(ui.Warning(w))
			}
			for _, e := range report.Errors {
				out.Println(ui.Error(e))
			}
			return nil
		},
	}
}

func newConfigSetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long:  fmt.Sprintf("Change one setting and save the config file.\n\nKeys:\n%s", ui.Indent(strings.Join(config.Keys(), "\n"), 2)),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			out := ui.NewConsoleWithWriter(cmd.OutOrStdout())
			out.Println(ui.Success(fmt.Sprintf("%s = %s", args[0], args[1])))
			return nil
		},
	}
}
