package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reviewwatch/internal/github"
	"reviewwatch/internal/review"
	"reviewwatch/internal/ui"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	var (
		pendingOnly bool
		titleWidth  int
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "List relevant pull requests and whether you have caught up",
		Long: `Fetch and classify the pull requests assigned to you or awaiting your review.
Nothing is notified and the notification record is not touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.fetcher.Fetch(cmd.Context())
			if err != nil {
				return explain(err)
			}

			out := ui.NewConsoleWithWriter(cmd.OutOrStdout())
			out.Println(renderStatus(res, pendingOnly, titleWidth, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "only show pull requests awaiting your review")
	cmd.Flags().IntVar(&titleWidth, "title-width", 50, "truncate titles to this many columns")
	return cmd
}

var titleCaser = cases.Title(language.English)

// reviewStateLabel turns CHANGES_REQUESTED into "Changes Requested".
func reviewStateLabel(state github.ReviewState) string {
	if state == "" {
		return "-"
	}
	return titleCaser.String(strings.ReplaceAll(strings.ToLower(string(state)), "_", " "))
}

// latestReviewState is the state of the viewer's most recent review.
func latestReviewState(viewer string, pr github.PullRequest) github.ReviewState {
	var (
		state  github.ReviewState
		latest time.Time
	)
	for _, r := range pr.Reviews {
		if r.Author == viewer && !r.CreatedAt.Before(latest) {
			state, latest = r.State, r.CreatedAt
		}
	}
	return state
}

func renderStatus(res *github.FetchResult, pendingOnly bool, titleWidth int, now time.Time) string {
	var rows [][]string
	pending := 0
	for _, pr := range res.PullRequests {
		v := review.Classify(res.Viewer, pr)
		if v.Unreviewed {
			pending++
		} else if pendingOnly {
			continue
		}

		state := ui.SymbolSuccess
		if v.Unreviewed {
			state = ui.SymbolWarning
		}
		rows = append(rows, []string{
			state,
			pr.Repository,
			ui.Truncate(pr.Title, titleWidth),
			reviewStateLabel(latestReviewState(res.Viewer, pr)),
			v.Reason(),
			ui.RelativeTime(pr.UpdatedAt, now),
		})
	}

	var b strings.Builder
	b.WriteString(ui.SectionDivider(fmt.Sprintf("Pull requests for @%s", res.Viewer)))
	b.WriteString("\n")
	b.WriteString(ui.KeyValue("Relevant", fmt.Sprint(len(res.PullRequests))))
	b.WriteString("\n")
	b.WriteString(ui.KeyValue("Awaiting review", fmt.Sprint(pending)))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(ui.Success("Nothing to review."))
		return b.String()
	}
	b.WriteString(ui.Table([]string{"", "REPOSITORY", "TITLE", "YOUR REVIEW", "REASON", "UPDATED"}, rows))
	return strings.TrimRight(b.String(), "\n")
}
