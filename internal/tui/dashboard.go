package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reviewwatch/internal/badge"
	"reviewwatch/internal/cycle"
	"reviewwatch/internal/notification"
	"reviewwatch/internal/review"
	"reviewwatch/internal/ui"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // Yellow for the cursor row

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func badgeStyle(color badge.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(string(color)))
}

// Model is the dashboard state. Every refresh runs a full cycle, so the
// dashboard also raises notifications and keeps the badge current.
type Model struct {
	runner   cycle.Runner
	clicks   chan<- notification.ClickEvent
	interval time.Duration
	now      func() time.Time

	spinner    spinner.Model
	loading    bool
	result     *cycle.Result
	loadError  error
	cursor     int
	width      int
	height     int
	lastUpdate time.Time
	status     string
}

// NewModel creates a dashboard that refreshes every interval and sends a
// ClickEvent on clicks when the user opens a row.
func NewModel(runner cycle.Runner, clicks chan<- notification.ClickEvent, interval time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	if interval <= 0 {
		interval = cycle.DefaultInterval
	}
	return Model{
		runner:   runner,
		clicks:   clicks,
		interval: interval,
		now:      time.Now,
		spinner:  s,
		loading:  true,
	}
}

// Init starts the first cycle and the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runCycle,
		tickCmd(m.interval),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case cycleDoneMsg:
		m.loading = false
		m.lastUpdate = m.now()
		if msg.err != nil {
			// Keep the last good list on screen.
			m.loadError = msg.err
			return m, nil
		}
		m.loadError = nil
		m.result = msg.result
		if n := len(m.rows()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		if notified := len(msg.result.Notified); notified > 0 {
			m.status = fmt.Sprintf("%s notified about %d pull request(s)", ui.SymbolBell, notified)
		}

	case tickMsg:
		cmd := m.refresh()
		return m, tea.Batch(cmd, tickCmd(m.interval))

	case openedMsg:
		m.status = fmt.Sprintf("%s %s", ui.SymbolNext, msg.url)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows())-1 {
				m.cursor++
			}
		case "enter", "o":
			return m, m.openSelected()
		case "r":
			cmd := m.refresh()
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) refresh() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.runCycle)
}

func (m Model) rows() []rowData {
	if m.result == nil {
		return nil
	}
	rows := make([]rowData, 0, len(m.result.Unreviewed))
	for _, pr := range m.result.Unreviewed {
		rows = append(rows, rowData{
			url:     pr.URL,
			title:   pr.Title,
			repo:    pr.Repository,
			reason:  review.Classify(m.result.Viewer, pr).Reason(),
			updated: pr.UpdatedAt,
		})
	}
	return rows
}

type rowData struct {
	url     string
	title   string
	repo    string
	reason  string
	updated time.Time
}

// View renders the TUI dashboard
func (m Model) View() string {
	if m.result == nil && m.loadError == nil {
		return fmt.Sprintf("\n%s Checking pull requests...\n", m.spinner.View())
	}

	var sections []string
	rows := m.rows()

	header := titleStyle.Render("Pull requests awaiting your review")
	if m.result != nil {
		header = fmt.Sprintf("%s %s  %s", badgeStyle(badge.ColorFor(len(rows))).Render(fmt.Sprint(len(rows))),
			header, dimStyle.Render("@"+m.result.Viewer))
	}
	if m.loading {
		header += " " + m.spinner.View()
	}
	sections = append(sections, header, "")

	if m.loadError != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("%s Last check failed: %s", ui.SymbolWarning, m.loadError)), "")
	}

	if len(rows) == 0 && m.result != nil {
		sections = append(sections, "  Nothing to review. You are all caught up.")
	}

	titleWidth := m.titleWidth()
	now := m.now()
	for i, row := range rows {
		line := fmt.Sprintf("%s  %s  %s",
			ui.Truncate(row.title, titleWidth),
			dimStyle.Render(row.repo),
			dimStyle.Render(row.reason+", "+ui.RelativeTime(row.updated, now)),
		)
		if i == m.cursor {
			sections = append(sections, selectedStyle.Render("> ")+line)
		} else {
			sections = append(sections, "  "+line)
		}
	}
	sections = append(sections, "")

	if m.status != "" {
		sections = append(sections, m.status)
	}
	footer := "enter: open  r: refresh  q: quit"
	if !m.lastUpdate.IsZero() {
		footer = fmt.Sprintf("Last updated: %s  %s", m.lastUpdate.Format("15:04:05"), footer)
	}
	sections = append(sections, dimStyle.Render(footer))

	return strings.Join(sections, "\n")
}

// titleWidth leaves room for the repository and reason columns.
func (m Model) titleWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(m.width/2, 20)
}

func (m Model) openSelected() tea.Cmd {
	rows := m.rows()
	if m.cursor >= len(rows) || m.clicks == nil {
		return nil
	}
	url := rows[m.cursor].url
	clicks := m.clicks
	return func() tea.Msg {
		clicks <- notification.ClickEvent{ID: url}
		return openedMsg{url: url}
	}
}

// Messages

type cycleDoneMsg struct {
	result *cycle.Result
	err    error
}

type tickMsg time.Time

type openedMsg struct {
	url string
}

// Commands

func (m Model) runCycle() tea.Msg {
	res, err := m.runner.Run(context.Background())
	return cycleDoneMsg{result: res, err: err}
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
