package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewwatch/internal/cycle"
	"reviewwatch/internal/github"
	"reviewwatch/internal/notification"
	"reviewwatch/internal/testutil"
)

type stubRunner struct {
	result *cycle.Result
	err    error
	calls  int
}

func (r *stubRunner) Run(ctx context.Context) (*cycle.Result, error) {
	r.calls++
	return r.result, r.err
}

func sampleResult() *cycle.Result {
	prs := []github.PullRequest{
		testutil.NewPR("https://github.com/acme/widgets/pull/1", 0, testutil.WithTitle("Fix flaky test")),
		testutil.NewPR("https://github.com/acme/widgets/pull/2", 10, testutil.WithTitle("Add retries")),
	}
	return &cycle.Result{
		CycleID:    "cycle-1",
		Viewer:     testutil.Viewer,
		Relevant:   prs,
		Unreviewed: prs,
		Notified:   prs[:1],
	}
}

func loaded(t *testing.T, clicks chan notification.ClickEvent) Model {
	t.Helper()
	m := NewModel(&stubRunner{}, clicks, time.Minute)
	m.now = func() time.Time { return testutil.At(60) }
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next, _ = next.Update(cycleDoneMsg{result: sampleResult()})
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboardView_Loading(t *testing.T) {
	m := NewModel(&stubRunner{}, nil, time.Minute)
	assert.Contains(t, m.View(), "Checking pull requests...")
}

func TestDashboardView_ListsUnreviewed(t *testing.T) {
	m := loaded(t, nil)
	view := m.View()

	assert.Contains(t, view, "Pull requests awaiting your review")
	assert.Contains(t, view, "@"+testutil.Viewer)
	assert.Contains(t, view, "Fix flaky test")
	assert.Contains(t, view, "Add retries")
	assert.Contains(t, view, "never reviewed")
	assert.Contains(t, view, "1h ago")
	assert.Contains(t, view, "notified about 1 pull request(s)")
	assert.Contains(t, view, "Last updated:")

	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "Fix flaky test") {
			assert.Contains(t, line, "> ")
		}
	}
}

func TestDashboardView_Empty(t *testing.T) {
	m := NewModel(&stubRunner{}, nil, time.Minute)
	next, _ := m.Update(cycleDoneMsg{result: &cycle.Result{Viewer: testutil.Viewer}})
	assert.Contains(t, next.View(), "all caught up")
}

func TestDashboard_ErrorKeepsLastList(t *testing.T) {
	m := loaded(t, nil)
	next, _ := m.Update(cycleDoneMsg{err: errors.New("credential rejected")})
	view := next.View()

	assert.Contains(t, view, "Last check failed: credential rejected")
	assert.Contains(t, view, "Fix flaky test")
}

func TestDashboard_CursorMovesWithinBounds(t *testing.T) {
	m := loaded(t, nil)

	next, _ := m.Update(key("up"))
	assert.Equal(t, 0, next.(Model).cursor)

	next, _ = next.Update(key("down"))
	next, _ = next.Update(key("j"))
	assert.Equal(t, 1, next.(Model).cursor)

	next, _ = next.Update(key("k"))
	assert.Equal(t, 0, next.(Model).cursor)
}

func TestDashboard_EnterSendsClickEvent(t *testing.T) {
	clicks := make(chan notification.ClickEvent, 1)
	m := loaded(t, clicks)

	next, _ := m.Update(key("down"))
	_, cmd := next.Update(key("enter"))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, openedMsg{url: "https://github.com/acme/widgets/pull/2"}, msg)
	assert.Equal(t, notification.ClickEvent{ID: "https://github.com/acme/widgets/pull/2"}, <-clicks)
}

func TestDashboard_EnterWithoutRowsDoesNothing(t *testing.T) {
	m := NewModel(&stubRunner{}, make(chan notification.ClickEvent, 1), time.Minute)
	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
}

func TestDashboard_RefreshRunsCycle(t *testing.T) {
	runner := &stubRunner{result: sampleResult()}
	m := NewModel(runner, nil, time.Minute)

	_, cmd := m.Update(key("r"))
	assert.Nil(t, cmd, "no refresh while the first cycle is loading")

	next, _ := m.Update(cycleDoneMsg{result: sampleResult()})
	next, cmd = next.Update(key("r"))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).loading)

	msg := next.(Model).runCycle()
	done, ok := msg.(cycleDoneMsg)
	require.True(t, ok)
	assert.Equal(t, "cycle-1", done.result.CycleID)
	assert.Equal(t, 1, runner.calls)
}

func TestDashboard_Quit(t *testing.T) {
	m := loaded(t, nil)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDashboard_CursorClampedWhenListShrinks(t *testing.T) {
	m := loaded(t, nil)
	next, _ := m.Update(key("down"))

	shrunk := sampleResult()
	shrunk.Unreviewed = shrunk.Unreviewed[:1]
	next, _ = next.Update(cycleDoneMsg{result: shrunk})
	assert.Equal(t, 0, next.(Model).cursor)
}
