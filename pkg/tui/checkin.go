package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unowned-ai/aoa/pkg/app"
	"github.com/unowned-ai/aoa/pkg/journal"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	dialogFieldName = iota
	dialogFieldEmail
)

type checkinModel struct {
	ctx  context.Context
	page *app.CheckinPage
	lang journal.Language
	now  time.Time

	editor      textarea.Model
	nameInput   textinput.Model
	emailInput  textinput.Model
	dialogField int

	// While a request runs the page belongs to the command; the body is
	// rendered from frozen instead.
	busy   bool
	frozen string

	width  int
	height int
	err    error

	quitting      bool
	openDashboard bool
}

// Initialize check-in page model
func newCheckinModel(ctx context.Context, page *app.CheckinPage, lang journal.Language) checkinModel {
	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.CharLimit = 2000
	editor.Focus()

	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 256
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 256

	m := checkinModel{
		ctx:        ctx,
		page:       page,
		lang:       lang,
		now:        page.Now(),
		editor:     editor,
		nameInput:  name,
		emailInput: email,
		busy:       true,
	}
	m.syncEditor()
	m.frozen = m.contentView()
	return m
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m checkinModel) Init() tea.Cmd {
	return tea.Batch(
		bootstrap(m.ctx, m.page),
		tick(),
		textarea.Blink,
	)
}

// Processes clock ticks, finished requests, and key presses
func (m checkinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(contentWidth(m.width))
		return m, nil

	case tickMsg:
		m.now = m.page.Now()
		return m, tick()

	case bootstrapDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.syncEditor()
		return m, nil

	case saveDoneMsg:
		m.busy = false
		if errors.Is(msg.err, app.ErrNoUser) && m.page.Dialog.IsOpen {
			m.openDialog()
		}
		return m, nil

	case signUpDoneMsg:
		m.busy = false
		// Failures after the account was created leave no message of their own.
		if msg.err != nil && m.page.Dialog.Err == "" {
			m.page.Dialog.Err = msg.err.Error()
		}
		if !m.page.Dialog.IsOpen {
			m.syncEditor()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if m.page.Dialog.IsOpen {
			return m.updateDialog(msg)
		}
		return m.updatePage(msg)
	}

	if m.busy || m.page.Dialog.IsOpen {
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m checkinModel) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.page.Form
	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+s":
		if !m.page.CanSave() {
			return m, nil
		}
		return m.startRequest(save(m.ctx, m.page))

	case "ctrl+n":
		if form.Next(form.Expanded) {
			m.syncEditor()
		}
		return m, nil

	case "ctrl+d":
		if m.page.Saved {
			m.openDashboard = true
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case "tab":
		m.moveExpanded(1)
		return m, nil

	case "shift+tab":
		m.moveExpanded(-1)
		return m, nil

	case "alt+1", "alt+2", "alt+3":
		form.Toggle(int(msg.String()[len(msg.String())-1] - '1'))
		m.syncEditor()
		return m, nil
	}

	if form.Expanded == journal.NoneExpanded {
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	form.Set(form.Questions()[form.Expanded].Key, m.editor.Value())
	return m, cmd
}

func (m checkinModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dialog := m.page.Dialog
	switch msg.String() {
	case "esc":
		dialog.Close()
		m.editor.Focus()
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.focusDialogField(1 - m.dialogField)
		return m, nil

	case "enter":
		if !dialog.CanSubmit() {
			return m, nil
		}
		return m.startRequest(submitSignUp(m.ctx, m.page))
	}

	var cmd tea.Cmd
	if m.dialogField == dialogFieldName {
		m.nameInput, cmd = m.nameInput.Update(msg)
		dialog.Name = m.nameInput.Value()
	} else {
		m.emailInput, cmd = m.emailInput.Update(msg)
		dialog.Email = m.emailInput.Value()
	}
	return m, cmd
}

// Hand the page to a command and render from a snapshot until it reports back
func (m checkinModel) startRequest(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.busy = true
	m.frozen = m.contentView()
	return m, cmd
}

func (m *checkinModel) openDialog() {
	m.editor.Blur()
	m.nameInput.SetValue(m.page.Dialog.Name)
	m.emailInput.SetValue(m.page.Dialog.Email)
	m.focusDialogField(dialogFieldName)
}

func (m *checkinModel) focusDialogField(field int) {
	m.dialogField = field
	if field == dialogFieldName {
		m.emailInput.Blur()
		m.nameInput.Focus()
		return
	}
	m.nameInput.Blur()
	m.emailInput.Focus()
}

// Move the open question by delta, wrapping around
func (m *checkinModel) moveExpanded(delta int) {
	form := m.page.Form
	n := len(form.Questions())
	next := 0
	if form.Expanded != journal.NoneExpanded {
		next = (form.Expanded + delta + n) % n
	}
	if next != form.Expanded {
		form.Toggle(next)
	}
	m.syncEditor()
}

// Load the open question's answer into the editor
func (m *checkinModel) syncEditor() {
	form := m.page.Form
	m.editor.Focus()
	if form.Expanded == journal.NoneExpanded {
		m.editor.Reset()
		return
	}
	q := form.Questions()[form.Expanded]
	m.editor.Placeholder = q.Placeholder
	if q.Multiline {
		m.editor.SetHeight(4)
	} else {
		m.editor.SetHeight(1)
	}
	m.editor.SetValue(form.Answer(q.Key))
}

func (m checkinModel) headerView() string {
	date := titleStyle.Render(journal.FormatDate(m.now))
	weekday := weekdayStyle.Render(journal.FormatWeekday(m.now, m.lang))
	left := lipgloss.JoinHorizontal(lipgloss.Top, date, weekday)
	clock := clockStyle.Render(journal.FormatTime(m.now))

	gap := contentWidth(m.width) - lipgloss.Width(left) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + clock
}

// Assembles the questions, save action, and status lines
func (m checkinModel) bodyView() string {
	var b strings.Builder
	form := m.page.Form
	width := contentWidth(m.width)

	heading := "Daily Check-in"
	if form.Mode == journal.ModeCheckout {
		heading = "Evening Checkout"
	}
	b.WriteString(subtitleStyle.Render(heading) + "\n\n")

	questions := form.Questions()
	for i, q := range questions {
		expanded := form.Expanded == i
		title := questionStyle.Render(q.Title)
		marker := expandMarker(expanded)
		gap := width - 2 - lipgloss.Width(title) - lipgloss.Width(marker)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(generateLinePointer(expanded, 2) + title + strings.Repeat(" ", gap) + marker + "\n")

		if expanded {
			b.WriteString(m.editor.View() + "\n")
			if i < len(questions)-1 {
				next := "ctrl+n  Next"
				if form.CanAdvance(i) {
					b.WriteString(selectedStyle.Render(" "+next+" ") + "\n")
				} else {
					b.WriteString(inactiveStyle.Render(" "+next+" ") + "\n")
				}
			}
		}
		b.WriteString("\n")
	}

	if m.page.CanSave() {
		label := " ctrl+s  Save Responses "
		if m.busy {
			label = " Saving... "
		}
		b.WriteString(selectedStyle.Render(label) + "\n")
	}
	if m.page.Err != "" {
		b.WriteString("\n" + textRedStyle.Render(m.page.Err) + "\n")
	}
	if m.page.Saved {
		b.WriteString("\n" + successStyle.Render("Your entry has been saved!") + "\n")
		b.WriteString(textStyle.Render("ctrl+d  View Your Dashboard") + "\n")
	}
	return b.String()
}

func (m checkinModel) dialogView() string {
	dialog := m.page.Dialog
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Save Your Log") + "\n")
	b.WriteString(textStyle.Render("Create a free account to save this entry and track your progress.") + "\n\n")
	b.WriteString(generateLinePointer(m.dialogField == dialogFieldName, 2) + "Name:  " + m.nameInput.View() + "\n")
	b.WriteString(generateLinePointer(m.dialogField == dialogFieldEmail, 2) + "Email: " + m.emailInput.View() + "\n\n")
	if dialog.Err != "" {
		b.WriteString(textRedStyle.Render(dialog.Err) + "\n\n")
	}

	switch {
	case m.busy:
		b.WriteString(inactiveStyle.Render(" Saving... "))
	case dialog.CanSubmit():
		b.WriteString(selectedStyle.Render(" enter  Create Account & Save "))
	default:
		b.WriteString(inactiveStyle.Render(" enter  Create Account & Save "))
	}
	b.WriteString("\n\n" + footerStyle.Render("tab to switch field • esc to close"))
	return dialogStyle.Render(b.String())
}

// Page body, or the sign-up dialog on top of it
func (m checkinModel) contentView() string {
	if !m.page.Dialog.IsOpen {
		return m.bodyView()
	}
	dialog := m.dialogView()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, dialog)
	}
	return dialog
}

// Assembles the UI string for each frame
func (m checkinModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	content := m.frozen
	if !m.busy {
		content = m.contentView()
	}

	footerText := "tab/shift+tab to switch question • alt+1..3 to toggle • ctrl+n next • ctrl+s save • esc to quit"
	footerBar := footerStyle.Width(m.width).Render(footerText)

	return m.headerView() + "\n\n" + content + "\n" + footerBar
}
