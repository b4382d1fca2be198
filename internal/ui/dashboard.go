package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyplanner/internal/planner"
)

type dashboard struct {
	cursor int
	notice *planner.Reminder
}

// scheduleScan arms the entrance delay before a reminder scan. Nothing is
// scheduled for an empty list or while notifications are off; a pending
// scan is superseded either way.
func (m *Model) scheduleScan() tea.Cmd {
	m.timers.cancel(timerScan)
	if len(m.app.Tasks()) == 0 || !m.app.Preferences().NotificationsEnabled {
		return nil
	}
	return m.timers.schedule(timerScan, m.cfg.Timing.ReminderDelay())
}

func (m Model) scanReminders() (Model, tea.Cmd) {
	if !m.app.Preferences().NotificationsEnabled {
		return m, nil
	}
	opts := planner.ScanOptions{HonorOffset: m.cfg.Reminders.HonorOffset}
	r, ok := planner.ScanReminders(m.app.Tasks(), m.now(), opts)
	if !ok {
		return m, nil
	}
	m.log.Info(m.ctx, "reminder surfaced", "task", r.Task.ID, "days_left", r.DaysLeft)
	m.dash.notice = &r
	cmd := m.timers.schedule(timerDismiss, m.cfg.Timing.ReminderDismiss())
	return m, cmd
}

func (m Model) updateDashboard(msg tea.KeyMsg) (Model, tea.Cmd) {
	keys := m.cfg.Keys
	tasks := m.app.Tasks()

	switch msg.String() {
	case keys.Quit:
		return m, tea.Quit
	case keys.Down, "down":
		m.dash.cursor = clampCursor(m.dash.cursor+1, len(tasks))
	case keys.Up, "up":
		m.dash.cursor = clampCursor(m.dash.cursor-1, len(tasks))
	case keys.Toggle, keys.Confirm:
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[clampCursor(m.dash.cursor, len(tasks))]
		if err := m.app.ToggleTask(m.ctx, t.ID); err != nil {
			m = m.reportErr("save", err)
		}
		cmd := m.scheduleScan()
		return m, cmd
	case keys.Dismiss:
		m.timers.cancel(timerDismiss)
		m.dash.notice = nil
	case keys.Add:
		return m.navigate(func() error { return m.app.OpenAddTask(m.ctx) })
	case keys.Progress:
		return m.navigate(func() error { return m.app.Open(m.ctx, planner.ViewProgress) })
	case keys.Settings:
		return m.navigate(func() error { return m.app.Open(m.ctx, planner.ViewSettings) })
	case keys.Focus:
		return m.navigate(func() error { return m.app.Open(m.ctx, planner.ViewFocus) })
	}
	return m, nil
}

// navigate fires a controller transition and runs the view hooks.
func (m Model) navigate(fire func() error) (Model, tea.Cmd) {
	from := m.app.View()
	if err := fire(); err != nil {
		m.log.Warn(m.ctx, "navigation rejected", "from", from, "err", err)
		return m, nil
	}
	return m.moved(from)
}

func (m Model) viewDashboard() string {
	th := m.theme()
	keys := m.cfg.Keys
	tasks := m.app.Tasks()
	prefs := m.app.Preferences()

	var b strings.Builder
	header := th.subtle.Render("STUDY PLANNER")
	if prefs.OfflineMode {
		header += "  " + th.badge.Render("OFFLINE")
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(th.title.Render(fmt.Sprintf("Hello, %s!", m.app.Session().DisplayName())))
	b.WriteString(th.gap)

	if m.dash.notice != nil {
		body := th.accent.Render("DEADLINE APPROACHING!") + "\n" + m.dash.notice.Message()
		b.WriteString(th.notice.Render(body))
		b.WriteString("\n")
		b.WriteString(m.keyHelp(keys.Dismiss, "dismiss"))
		b.WriteString(th.gap)
	}

	p := planner.Summarize(tasks)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(th, p.Total, "TOTAL TASKS"),
		statCard(th, p.Completed, "COMPLETED"),
		statCard(th, p.Pending, "PENDING"),
	))
	b.WriteString(th.gap)

	title := th.text.Bold(true).Render("DEADLINES")
	if planner.RemindersActive(tasks) {
		title += "  " + th.badge.Render("ⓘ REMINDERS ACTIVE")
	}
	b.WriteString(title)
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(th.subtle.Render("No tasks scheduled yet."))
		b.WriteString("\n")
	}
	cursor := clampCursor(m.dash.cursor, len(tasks))
	for i, t := range tasks {
		b.WriteString(renderTaskRow(th, t, i == cursor))
		b.WriteString("\n")
	}
	b.WriteString(th.gap)
	b.WriteString(m.keyHelp(
		keys.Up+"/"+keys.Down, "move",
		keys.Toggle, "toggle",
		keys.Add, "add",
		keys.Progress, "progress",
		keys.Focus, "focus",
		keys.Settings, "settings",
		keys.Quit, "quit",
	))
	return b.String()
}

func statCard(th theme, n int, label string) string {
	return th.card.Render(th.accent.Render(fmt.Sprintf("%d", n)) + "\n" + th.subtle.Render(label))
}

func renderTaskRow(th theme, t planner.Task, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s  %s", check, t.Subject, dueLabel(t))
	if !t.Completed && t.HasReminder() {
		line += "  " + fmt.Sprintf("%dD REMINDER", t.Offset())
	}
	switch {
	case selected:
		return th.selected.Render("> " + line)
	case t.Completed:
		return "  " + th.done.Render(line)
	default:
		return "  " + th.text.Render(line)
	}
}

// dueLabel renders "JUN 1 • 14:00". An unparsable date is shown verbatim.
func dueLabel(t planner.Task) string {
	day := t.Date
	if d, err := time.Parse(planner.DateLayout, t.Date); err == nil {
		day = strings.ToUpper(d.Format("Jan 2"))
	}
	return day + " • " + t.Time
}
