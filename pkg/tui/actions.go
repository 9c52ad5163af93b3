package tui

import (
	"context"
	"time"

	"github.com/unowned-ai/aoa/pkg/app"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

type bootstrapDoneMsg struct{ err error }

type saveDoneMsg struct{ err error }

type signUpDoneMsg struct{ err error }

type dashboardLoadedMsg struct{ err error }

// Advance the header clock once a second
func tick() tea.Cmd {
	return tea.Tick(clockTickDuration, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Restore the stored user and today's log
func bootstrap(ctx context.Context, page *app.CheckinPage) tea.Cmd {
	return func() tea.Msg {
		return bootstrapDoneMsg{err: page.Bootstrap(ctx)}
	}
}

// Submit the check-in or checkout answers
func save(ctx context.Context, page *app.CheckinPage) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: page.Save(ctx)}
	}
}

// Create the account with its first log, then adopt it on the page
func submitSignUp(ctx context.Context, page *app.CheckinPage) tea.Cmd {
	return func() tea.Msg {
		user, err := page.Dialog.Submit(ctx)
		if err != nil {
			return signUpDoneMsg{err: err}
		}
		return signUpDoneMsg{err: page.CompleteSignUp(ctx, user)}
	}
}

// Fetch every log of the stored user
func loadDashboard(ctx context.Context, dash *app.Dashboard) tea.Cmd {
	return func() tea.Msg {
		return dashboardLoadedMsg{err: dash.Load(ctx)}
	}
}
