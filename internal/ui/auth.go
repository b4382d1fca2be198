package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"studyplanner/internal/planner"
)

type authMode int

const (
	authSignUp authMode = iota
	authLogin
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	authFieldCount
)

const accountCreatedBanner = "Account created! Now log in."

type authForm struct {
	mode    authMode
	inputs  [authFieldCount]textinput.Model
	focus   int
	reveal  bool
	created bool
	err     string
}

// newAuthForm opens in login mode once an account has been stored.
func newAuthForm(accountExists bool) authForm {
	f := authForm{mode: authSignUp}
	if accountExists {
		f.mode = authLogin
	}
	placeholders := [authFieldCount]string{
		fieldName:     "Full name",
		fieldEmail:    "Email address",
		fieldPassword: "Password",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	f.inputs[fieldPassword].EchoCharacter = '•'
	return f
}

func (f authForm) fields() []int {
	if f.mode == authLogin {
		return []int{fieldEmail, fieldPassword}
	}
	return []int{fieldName, fieldEmail, fieldPassword}
}

func (f authForm) focused() int {
	fields := f.fields()
	return fields[wrapIndex(f.focus, len(fields))]
}

func (f *authForm) focusFirst() tea.Cmd {
	f.focus = 0
	return f.applyFocus()
}

func (f *authForm) applyFocus() tea.Cmd {
	f.focus = wrapIndex(f.focus, len(f.fields()))
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focused()].Focus()
}

// switchMode keeps typed values so a fresh sign-up can log in right away.
func (f *authForm) switchMode(mode authMode) tea.Cmd {
	f.mode = mode
	f.err = ""
	f.created = false
	return f.focusFirst()
}

func (f *authForm) toggleReveal() {
	f.reveal = !f.reveal
	if f.reveal {
		f.inputs[fieldPassword].EchoMode = textinput.EchoNormal
		return
	}
	f.inputs[fieldPassword].EchoMode = textinput.EchoPassword
}

// edit forwards a keystroke to the focused input. Any change clears the
// inline error.
func (f *authForm) edit(msg tea.KeyMsg) tea.Cmd {
	idx := f.focused()
	before := f.inputs[idx].Value()
	var cmd tea.Cmd
	f.inputs[idx], cmd = f.inputs[idx].Update(msg)
	if f.inputs[idx].Value() != before {
		f.err = ""
	}
	return cmd
}

func (f *authForm) setWidth(w int) {
	if w < 20 {
		return
	}
	for i := range f.inputs {
		f.inputs[i].Width = min(w, 50)
	}
}

func (f authForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

func (m Model) updateAuth(msg tea.KeyMsg) (Model, tea.Cmd) {
	keys := m.cfg.Keys
	switch msg.String() {
	case keys.Confirm:
		return m.submitAuth()
	case keys.NextField, "down":
		m.auth.focus++
		cmd := m.auth.applyFocus()
		return m, cmd
	case keys.PrevField, "up":
		m.auth.focus--
		cmd := m.auth.applyFocus()
		return m, cmd
	case keys.Login:
		m.timers.cancel(timerSignUp)
		cmd := m.auth.switchMode(authLogin)
		return m, cmd
	case keys.SignUp:
		m.timers.cancel(timerSignUp)
		cmd := m.auth.switchMode(authSignUp)
		return m, cmd
	case keys.Reveal:
		m.auth.toggleReveal()
		return m, nil
	}
	cmd := m.auth.edit(msg)
	return m, cmd
}

func (m Model) submitAuth() (Model, tea.Cmd) {
	f := &m.auth
	email := f.value(fieldEmail)
	password := f.inputs[fieldPassword].Value()

	if f.mode == authLogin {
		err := m.app.Login(m.ctx, email, password)
		switch {
		case err == nil:
			return m.moved(planner.ViewAuth)
		case errors.Is(err, planner.ErrMissingField):
			f.err = "Email and password are required."
		case errors.Is(err, planner.ErrInvalidCredentials):
			f.err = "Invalid email or password. Please try again."
		default:
			return m.reportErr("login", err), nil
		}
		return m, nil
	}

	if f.created {
		return m, nil
	}
	err := m.app.SignUp(m.ctx, f.value(fieldName), email, password)
	switch {
	case err == nil:
		f.created = true
		f.err = ""
		f.inputs[fieldPassword].SetValue("")
		cmd := m.timers.schedule(timerSignUp, m.cfg.Timing.SignUpConfirm())
		return m, cmd
	case errors.Is(err, planner.ErrMissingField):
		f.err = "Name, email and password are required."
	default:
		return m.reportErr("sign up", err), nil
	}
	return m, nil
}

func (m Model) viewAuth() string {
	th := m.theme()
	f := m.auth
	keys := m.cfg.Keys

	var b strings.Builder
	b.WriteString(th.title.Render("STUDY PLANNER"))
	b.WriteString("\n")
	if f.mode == authLogin {
		b.WriteString(th.text.Render("Welcome back. Log in to continue."))
	} else {
		b.WriteString(th.text.Render("Create your account."))
	}
	b.WriteString(th.gap)

	if f.created {
		b.WriteString(th.ok.Render(accountCreatedBanner))
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString(th.err.Render(f.err))
		b.WriteString("\n")
	}

	labels := [authFieldCount]string{
		fieldName:     "Name",
		fieldEmail:    "Email",
		fieldPassword: "Password",
	}
	focused := f.focused()
	for _, idx := range f.fields() {
		label := labels[idx]
		if idx == focused {
			label = th.accent.Render(label)
		} else {
			label = th.subtle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.inputs[idx].View())
		b.WriteString("\n")
	}
	b.WriteString(th.gap)

	reveal := "show password"
	if f.reveal {
		reveal = "hide password"
	}
	switchHelp := []string{keys.SignUp, "sign up instead"}
	if f.mode == authSignUp {
		switchHelp = []string{keys.Login, "log in instead"}
	}
	help := append([]string{keys.Confirm, "submit", keys.NextField, "next field", keys.Reveal, reveal}, switchHelp...)
	b.WriteString(m.keyHelp(help...))
	return b.String()
}
