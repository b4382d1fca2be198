package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyplanner/internal/planner"
)

func (m Model) back() (Model, tea.Cmd) {
	return m.navigate(func() error { return m.app.Back(m.ctx) })
}

func (m Model) header(title string) string {
	th := m.theme()
	return th.subtle.Render("‹ "+m.cfg.Keys.Cancel) + "  " + th.title.Render(title)
}

func (m Model) updateProgress(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel:
		return m.back()
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewProgress() string {
	th := m.theme()
	p := planner.Summarize(m.app.Tasks())

	var b strings.Builder
	b.WriteString(m.header("Progress Tracker"))
	b.WriteString(th.gap)
	b.WriteString(th.text.Bold(true).Render("Overall Completion"))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(p.Ratio()))
	b.WriteString("  ")
	b.WriteString(th.accent.Render(fmt.Sprintf("%d%%", p.Percent)))
	b.WriteString(" ")
	b.WriteString(th.subtle.Render("COMPLETED"))
	b.WriteString(th.gap)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(th, p.Completed, "completed"),
		statCard(th, p.Pending, "pending"),
	))
	b.WriteString(th.gap)
	b.WriteString(m.keyHelp(m.cfg.Keys.Cancel, "back"))
	return b.String()
}

const (
	settingDarkMode = iota
	settingFontSize
	settingNotifications
	settingOffline
	settingCount
)

type settingsPanel struct {
	cursor int
}

func (m Model) updateSettings(msg tea.KeyMsg) (Model, tea.Cmd) {
	keys := m.cfg.Keys
	prefs := m.app.Preferences()

	switch msg.String() {
	case keys.Cancel:
		return m.back()
	case keys.Quit:
		return m, tea.Quit
	case keys.Down, "down", keys.NextField:
		m.settings.cursor = wrapIndex(m.settings.cursor+1, settingCount)
	case keys.Up, "up", keys.PrevField:
		m.settings.cursor = wrapIndex(m.settings.cursor-1, settingCount)
	case keys.OptionNext:
		if m.settings.cursor == settingFontSize {
			prefs.FontSize = prefs.FontSize.Step(1)
		}
	case keys.OptionPrev:
		if m.settings.cursor == settingFontSize {
			prefs.FontSize = prefs.FontSize.Step(-1)
		}
	case keys.Toggle, keys.Confirm:
		switch m.settings.cursor {
		case settingDarkMode:
			prefs.DarkMode = !prefs.DarkMode
		case settingNotifications:
			prefs.NotificationsEnabled = !prefs.NotificationsEnabled
		case settingOffline:
			prefs.OfflineMode = !prefs.OfflineMode
		case settingFontSize:
			prefs.FontSize = prefs.FontSize.Step(1)
		}
		m.log.Debug(m.ctx, "preferences changed",
			"dark_mode", prefs.DarkMode,
			"font_size", prefs.FontSize,
			"notifications", prefs.NotificationsEnabled,
			"offline", prefs.OfflineMode,
		)
	}
	return m, nil
}

func (m Model) viewSettings() string {
	th := m.theme()
	prefs := m.app.Preferences()

	row := func(i int, name, value string) string {
		line := fmt.Sprintf("%-20s %s", name, value)
		if i == m.settings.cursor {
			return th.selected.Render("> " + line)
		}
		return "  " + th.text.Render(line)
	}

	sizes := make([]string, 0, 3)
	for _, s := range []planner.FontSize{planner.FontSmall, planner.FontMedium, planner.FontLarge} {
		label := strings.ToUpper(s.String())
		if s == prefs.FontSize {
			label = "[" + label + "]"
		}
		sizes = append(sizes, label)
	}

	var b strings.Builder
	b.WriteString(m.header("Settings"))
	b.WriteString(th.gap)
	b.WriteString(th.text.Bold(true).Render("Appearance"))
	b.WriteString("\n")
	b.WriteString(row(settingDarkMode, "Dark Mode", onOff(prefs.DarkMode)) + "\n")
	b.WriteString(row(settingFontSize, "Font Size", strings.Join(sizes, " ")) + "\n")
	b.WriteString(th.gap)
	b.WriteString(th.text.Bold(true).Render("Notifications & Connectivity"))
	b.WriteString("\n")
	b.WriteString(row(settingNotifications, "Push Notifications", onOff(prefs.NotificationsEnabled)) + "\n")
	b.WriteString(row(settingOffline, "Offline Mode", onOff(prefs.OfflineMode)) + "\n")
	b.WriteString(th.gap)
	b.WriteString(m.keyHelp(
		m.cfg.Keys.Toggle, "toggle",
		m.cfg.Keys.OptionPrev+"/"+m.cfg.Keys.OptionNext, "font size",
		m.cfg.Keys.Cancel, "back",
	))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func (m Model) updateFocus(msg tea.KeyMsg) (Model, tea.Cmd) {
	keys := m.cfg.Keys
	switch msg.String() {
	case keys.Cancel:
		return m.back()
	case keys.Quit:
		return m, tea.Quit
	case keys.Toggle, keys.Confirm:
		if !m.focus.Toggle() {
			m.timers.cancel(timerFocusTick)
			return m, nil
		}
		m.status = ""
		cmd := m.timers.schedule(timerFocusTick, time.Second)
		return m, cmd
	case keys.Reset:
		m.timers.cancel(timerFocusTick)
		m.focus.Reset()
	}
	return m, nil
}

func (m Model) viewFocus() string {
	th := m.theme()
	keys := m.cfg.Keys

	action := "start"
	if m.focus.Running() {
		action = "pause"
	}

	var b strings.Builder
	b.WriteString(m.header("Focus Mode"))
	b.WriteString(th.gap)
	b.WriteString(th.card.Render(th.accent.Render(m.focus.String()) + "\n" + th.subtle.Render("FOCUS TIME")))
	b.WriteString(th.gap)
	b.WriteString(m.keyHelp(keys.Toggle, action, keys.Reset, "reset", keys.Cancel, "back"))
	return b.String()
}
