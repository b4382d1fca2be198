package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const onboardingBlurb = "Organization and self-management have been shown to increase academic " +
	"progress by as much as 2.4x. With Study Planner you've got the tools to make it happen."

func (m Model) updateSplash(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == m.cfg.Keys.Quit {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewSplash() string {
	th := m.theme()
	return th.card.Render(th.title.Render("STUDY PLANNER") + "\n\n" + th.text.Render("Hello!"))
}

func (m Model) updateOnboarding(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Confirm:
		from := m.app.View()
		if err := m.app.CompleteOnboarding(m.ctx); err != nil {
			m.log.Warn(m.ctx, "onboarding flag not saved", "err", err)
		}
		return m.moved(from)
	}
	return m, nil
}

func (m Model) viewOnboarding() string {
	th := m.theme()
	var b strings.Builder
	b.WriteString(th.title.Render("Your planner's ready to go!"))
	b.WriteString(th.gap)
	b.WriteString(th.text.Width(60).Render(onboardingBlurb))
	b.WriteString(th.gap)
	b.WriteString(m.keyHelp(m.cfg.Keys.Confirm, "continue", m.cfg.Keys.Quit, "quit"))
	return b.String()
}
