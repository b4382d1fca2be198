package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"studyplanner/internal/config"
	"studyplanner/internal/logging"
	"studyplanner/internal/planner"
	"studyplanner/internal/scheduler"
)

// DayChangedMsg is sent by the scheduler when the calendar day rolls over.
type DayChangedMsg struct{}

type screen struct {
	update func(Model, tea.KeyMsg) (Model, tea.Cmd)
	render func(Model) string
}

var screens = [...]screen{
	planner.ViewSplash:     {Model.updateSplash, Model.viewSplash},
	planner.ViewOnboarding: {Model.updateOnboarding, Model.viewOnboarding},
	planner.ViewAuth:       {Model.updateAuth, Model.viewAuth},
	planner.ViewDashboard:  {Model.updateDashboard, Model.viewDashboard},
	planner.ViewAddTask:    {Model.updateAddTask, Model.viewAddTask},
	planner.ViewProgress:   {Model.updateProgress, Model.viewProgress},
	planner.ViewSettings:   {Model.updateSettings, Model.viewSettings},
	planner.ViewFocus:      {Model.updateFocus, Model.viewFocus},
}

// Every view has exactly one screen.
var (
	_ [len(screens) - int(planner.ViewCount)]struct{}
	_ [int(planner.ViewCount) - len(screens)]struct{}
)

func screenFor(v planner.View) screen {
	if !v.Valid() {
		v = planner.ViewDashboard
	}
	return screens[v]
}

type Model struct {
	ctx    context.Context
	app    *planner.Controller
	cfg    config.Config
	log    logging.Logger
	now    func() time.Time
	timers timers
	start  tea.Cmd
	width  int
	status string

	auth     authForm
	form     taskForm
	dash     dashboard
	settings settingsPanel
	focus    planner.FocusTimer
	bar      progress.Model
}

// New builds the root model on the controller's current view and arms the
// splash timer.
func New(ctx context.Context, app *planner.Controller, cfg config.Config, log logging.Logger) Model {
	bar := progress.New(progress.WithSolidFill("#00C2CB"), progress.WithoutPercentage())
	bar.Width = 40

	m := Model{
		ctx:   ctx,
		app:   app,
		cfg:   cfg,
		log:   log.With("component", "ui"),
		now:   time.Now,
		auth:  newAuthForm(app.AccountExists()),
		form:  newTaskForm(),
		focus: planner.NewFocusTimer(cfg.Timing.FocusSeconds),
		bar:   bar,
	}
	m, m.start = m.enter(app.View())
	return m
}

type Options struct {
	Controller *planner.Controller
	Config     config.Config
	Logger     logging.Logger
	// Scheduler, when set, drives the daily reminder rescan.
	Scheduler *scheduler.Scheduler
}

func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts.Controller, opts.Config, opts.Logger)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	if opts.Scheduler != nil {
		_, err := opts.Scheduler.ScheduleDaily(opts.Config.Reminders.RolloverAt, func() {
			program.Send(DayChangedMsg{})
		})
		if err != nil {
			return fmt.Errorf("schedule day rollover: %w", err)
		}
		opts.Scheduler.Start()
		defer opts.Scheduler.Stop()
	}

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return m.start
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return screenFor(m.app.View()).update(m, msg)
	case timerMsg:
		if !m.timers.live(msg) {
			return m, nil
		}
		return m.onTimer(msg.kind)
	case DayChangedMsg:
		if m.app.View() != planner.ViewDashboard {
			return m, nil
		}
		m.log.Debug(m.ctx, "day changed, rescanning reminders")
		cmd := m.scheduleScan()
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-20, 10), 60)
		m.auth.setWidth(msg.Width - 10)
		m.form.setWidth(msg.Width - 10)
	}
	return m, nil
}

func (m Model) View() string {
	th := m.theme()
	body := screenFor(m.app.View()).render(m)
	if m.status == "" {
		return body
	}
	return body + th.gap + th.subtle.Render(m.status) + "\n"
}

func (m Model) theme() theme {
	return newTheme(*m.app.Preferences())
}

func (m Model) onTimer(kind timerKind) (Model, tea.Cmd) {
	switch kind {
	case timerSplash:
		from := m.app.View()
		if _, err := m.app.SplashElapsed(m.ctx); err != nil {
			m.log.Warn(m.ctx, "splash transition rejected", "err", err)
			return m, nil
		}
		return m.moved(from)
	case timerSignUp:
		m.auth.switchMode(authLogin)
		cmd := m.auth.focusFirst()
		return m, cmd
	case timerScan:
		return m.scanReminders()
	case timerDismiss:
		m.dash.notice = nil
	case timerFocusTick:
		finished := m.focus.Tick()
		if finished {
			m.status = "Focus session complete. Take a break."
			m.log.Info(m.ctx, "focus session complete")
			return m, nil
		}
		if m.focus.Running() {
			cmd := m.timers.schedule(timerFocusTick, time.Second)
			return m, cmd
		}
	}
	return m, nil
}

// moved runs the leave and enter hooks when the controller changed view.
func (m Model) moved(from planner.View) (Model, tea.Cmd) {
	to := m.app.View()
	if to == from {
		return m, nil
	}
	m = m.leave(from)
	m.status = ""
	return m.enter(to)
}

func (m Model) leave(v planner.View) Model {
	switch v {
	case planner.ViewSplash:
		m.timers.cancel(timerSplash)
	case planner.ViewAuth:
		m.timers.cancel(timerSignUp)
	case planner.ViewDashboard:
		m.timers.cancel(timerScan, timerDismiss)
		m.dash.notice = nil
	case planner.ViewFocus:
		m.timers.cancel(timerFocusTick)
		m.focus.Reset()
	}
	return m
}

func (m Model) enter(v planner.View) (Model, tea.Cmd) {
	switch v {
	case planner.ViewSplash:
		cmd := m.timers.schedule(timerSplash, m.cfg.Timing.Splash())
		return m, cmd
	case planner.ViewAuth:
		m.auth = newAuthForm(m.app.AccountExists())
		m.auth.setWidth(m.width - 10)
		cmd := m.auth.focusFirst()
		return m, cmd
	case planner.ViewDashboard:
		m.dash.cursor = clampCursor(m.dash.cursor, len(m.app.Tasks()))
		cmd := m.scheduleScan()
		return m, cmd
	case planner.ViewAddTask:
		m.form = newTaskForm()
		m.form.setWidth(m.width - 10)
		cmd := m.form.focusCurrent()
		return m, cmd
	case planner.ViewSettings:
		m.settings = settingsPanel{}
	case planner.ViewFocus:
		m.focus = planner.NewFocusTimer(m.cfg.Timing.FocusSeconds)
	}
	return m, nil
}

// reportErr surfaces a non-fatal failure on the status line.
func (m Model) reportErr(action string, err error) Model {
	m.log.Error(m.ctx, action+" failed", "err", err)
	m.status = fmt.Sprintf("%s failed: %v", action, err)
	return m
}

func (m Model) keyHelp(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, fmt.Sprintf("%s %s", keyLabel(pairs[i]), pairs[i+1]))
	}
	return m.theme().subtle.Render(strings.Join(parts, " • "))
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
