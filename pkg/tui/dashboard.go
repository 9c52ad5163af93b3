package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/unowned-ai/aoa/pkg/app"
	"github.com/unowned-ai/aoa/pkg/journal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	emptyCell = "-"

	noLogsText      = "No logs found yet."
	noReadingText   = "No reading logs found."
	noLinkDumpsText = "No link dumps found."
	signInText      = "Please sign in to view your dashboard. Run `aoa checkin` and save an entry to create an account."
)

// Build a bordered table; empty renders a single placeholder row
func newTable(width int, headers []string, rows [][]string, empty string) *table.Table {
	isEmpty := len(rows) == 0
	if isEmpty {
		row := make([]string, len(headers))
		row[0] = empty
		rows = [][]string{row}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case isEmpty:
				return tableEmptyStyle
			}
			return tableCellStyle
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t
}

func orEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyCell
	}
	return s
}

// LogsTable renders date, attention and first learning of every log.
func LogsTable(logs []journal.DailyLog, width int) string {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{l.LogDate, orEmpty(l.InAttention), orEmpty(l.OutTIL1)})
	}
	return newTable(width, []string{"Date", "Attention", "Today I Learned"}, rows, noLogsText).Render()
}

// ReadingTable renders the reading, watching and listening list.
func ReadingTable(logs []journal.DailyLog, width int) string {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{l.LogDate, l.Reading})
	}
	return newTable(width, []string{"Date", "Content"}, rows, noReadingText).Render()
}

// LinkDumpsTable renders every day's links, one per line.
func LinkDumpsTable(logs []journal.DailyLog, width int) string {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{l.LogDate, strings.Join(l.URLs(), "\n")})
	}
	return newTable(width, []string{"Date", "Link(s)"}, rows, noLinkDumpsText).Render()
}

// RenderDashboard draws a loaded dashboard at the given terminal width.
func RenderDashboard(dash *app.Dashboard, width int) string {
	if !dash.SignedIn() {
		return textStyle.Render(signInText) + "\n"
	}

	w := contentWidth(width)
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("My attention and TIL records:") + "\n")
	if dash.Err != "" {
		b.WriteString(textRedStyle.Render(dash.Err) + "\n")
	}
	b.WriteString(LogsTable(dash.Views.All, w) + "\n\n")

	b.WriteString(subtitleStyle.Render("My reading/watching/listening list:") + "\n")
	b.WriteString(ReadingTable(dash.Views.Reading, w) + "\n\n")

	b.WriteString(subtitleStyle.Render("Link Dumps!:") + "\n")
	b.WriteString(LinkDumpsTable(dash.Views.LinkDumps, w) + "\n")
	return b.String()
}

type dashboardModel struct {
	ctx    context.Context
	dash   *app.Dashboard
	loaded bool
	err    error

	width  int
	height int

	quitting bool
}

func newDashboardModel(ctx context.Context, dash *app.Dashboard) dashboardModel {
	return dashboardModel{ctx: ctx, dash: dash}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboard(m.ctx, m.dash)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardLoadedMsg:
		m.loaded = true
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded {
		return "Loading...\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	who, status := "nobody", 2
	if m.dash.SignedIn() {
		who, status = m.dash.User.Email, 1
	}
	info := fmt.Sprintf("Signed in as: %s", TextStatusColorize(who, status))

	titleBar := titleStyle.Width(m.width).Render("AOA - attention, obsession, agency")
	footerBar := footerStyle.Width(m.width).Render("q to quit")
	return titleBar + "\n\n" + RenderDashboard(m.dash, m.width) + "\n" + info + "\n" + footerBar
}
