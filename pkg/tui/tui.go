package tui

import (
	"context"

	"github.com/unowned-ai/aoa/pkg/app"
	"github.com/unowned-ai/aoa/pkg/journal"

	tea "github.com/charmbracelet/bubbletea"
)

// ShowCheckin runs the check-in page until the user quits. It reports whether
// they asked to open the dashboard afterwards.
func ShowCheckin(ctx context.Context, page *app.CheckinPage, lang journal.Language) (bool, error) {
	p := tea.NewProgram(newCheckinModel(ctx, page, lang), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(checkinModel)
	if !ok {
		return false, nil
	}
	if m.err != nil {
		return false, m.err
	}
	return m.openDashboard, nil
}

// ShowDashboard loads and shows the stored user's logs.
func ShowDashboard(ctx context.Context, dash *app.Dashboard) error {
	p := tea.NewProgram(newDashboardModel(ctx, dash), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(dashboardModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
