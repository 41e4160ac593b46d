package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"reviewwatch/internal/github"
	"reviewwatch/internal/ui"
)

func newAuthCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication management",
		Long:  `Manage the GitHub token reviewwatch uses.`,
	}
	cmd.AddCommand(newAuthLoginCmd(opts))
	cmd.AddCommand(newAuthStatusCmd(opts))
	cmd.AddCommand(newAuthLogoutCmd(opts))
	return cmd
}

func newAuthLoginCmd(opts *globalOptions) *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a GitHub token",
		Long: `Save a GitHub personal access token in the local credential store.

The token is checked against GitHub before it is saved. When stdin is not a
terminal the token is read from its first line. Create a token at
https://github.com/settings/tokens with the repo scope.

GITHUB_TOKEN, when set, takes priority over the saved token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			token, err := readToken(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			out := ui.NewConsoleWithWriter(cmd.OutOrStdout())
			if !skipVerify {
				verifier := github.NewFetcher(github.StaticTokenProvider{Token: token, Source: "prompt"}, a.cfg.GitHub.APIURL, a.cfg.Timeout())
				user, err := verifier.CurrentUser(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to verify token: %w", err)
				}
				out.Println(ui.Success("Authenticated as " + user))
			}

			if err := a.creds.SaveToken(token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			out.Println(ui.Success("Token saved locally"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "no-verify", false, "save the token without checking it against GitHub")
	return cmd
}

// readToken prompts on a terminal and reads a line otherwise.
func readToken(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && ui.IsTerminal(f.Fd()) {
		var token string
		err := huh.NewInput().
			Title("GitHub token").
			Description("Personal access token with the repo scope").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("token cannot be empty")
				}
				return nil
			}).
			Value(&token).
			Run()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(token), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", errors.New("no token provided")
	}
	return token, nil
}

func newAuthStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check authentication status",
		Long:  `Show which token source is in use and who it authenticates as.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out := ui.NewConsoleWithWriter(cmd.OutOrStdout())
			source, _, err := a.tokens.GetTokenWithSource()
			if err != nil {
				out.Println(ui.Error("Not authenticated"))
				out.Println(ui.Next("reviewwatch auth login"))
				return nil
			}

			user, err := a.fetcher.CurrentUser(cmd.Context())
			if err != nil {
				out.Println(ui.Error(fmt.Sprintf("Token authentication failed (source: %s)", source)))
				out.Println(ui.Indent(err.Error(), 2))
				out.Println(ui.Next("reviewwatch auth login"))
				return nil
			}

			out.Println(ui.Success("Authenticated as " + user))
			out.Println(ui.Success("Token source: " + source))
			return nil
		},
	}
}

func newAuthLogoutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved token",
		Long:  `Remove the locally stored token. GITHUB_TOKEN and gh CLI credentials are left alone.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.creds.RemoveToken(); err != nil {
				return fmt.Errorf("failed to remove local token: %w", err)
			}

			out := ui.NewConsoleWithWriter(cmd.OutOrStdout())
			out.Println(ui.Success("Local authentication removed"))
			out.Println("")
			out.Println("Note: GITHUB_TOKEN and your gh CLI authentication (if any) remain unchanged.")
			return nil
		},
	}
}
