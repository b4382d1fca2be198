package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplanner/internal/config"
	"studyplanner/internal/logging"
	"studyplanner/internal/planner"
	"studyplanner/internal/storage"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv(config.EnvDBPath, "")
	cfg, err := config.LoadOrCreate(filepath.Join(t.TempDir(), config.DefaultConfigFileName))
	require.NoError(t, err)
	return cfg
}

// seededKV holds a finished onboarding and the account Ann / a@x.com / pw1.
func seededKV(t *testing.T, loggedIn bool) *storage.Memory {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemory()
	s, err := planner.LoadSessionStore(ctx, kv, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, s.CompleteOnboarding(ctx))
	require.NoError(t, s.SignUp(ctx, "Ann", "a@x.com", "pw1"))
	if loggedIn {
		_, err = s.Login(ctx, "a@x.com", "pw1")
		require.NoError(t, err)
	}
	return kv
}

func newModel(t *testing.T, kv storage.KV, cfg config.Config) Model {
	t.Helper()
	ctx := context.Background()
	app, err := planner.Load(ctx, kv, planner.PreferencesFromConfig(cfg.Preferences), logging.Nop())
	require.NoError(t, err)
	m := New(ctx, app, cfg, logging.Nop())
	m.now = func() time.Time { return testNow }
	return m
}

// dashboardModel starts logged in and already past the splash screen.
func dashboardModel(t *testing.T) Model {
	t.Helper()
	m := newModel(t, seededKV(t, true), testConfig(t))
	m = fire(t, m, timerSplash)
	require.Equal(t, planner.ViewDashboard, m.app.View())
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = send(t, m, keyMsg(k))
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// fire delivers the live tick for kind.
func fire(t *testing.T, m Model, kind timerKind) Model {
	t.Helper()
	m, _ = send(t, m, timerMsg{kind: kind, gen: m.timers[kind]})
	return m
}

func addTask(t *testing.T, m Model, subject, date, clock string) Model {
	t.Helper()
	m = press(t, m, "a")
	require.Equal(t, planner.ViewAddTask, m.app.View())
	m = typeText(t, m, subject)
	m = press(t, m, "tab")
	m = typeText(t, m, date)
	m = press(t, m, "tab")
	m = typeText(t, m, clock)
	return press(t, m, "enter")
}

func TestFirstLaunch_SplashOnboardingThenSignUpMode(t *testing.T) {
	m := newModel(t, storage.NewMemory(), testConfig(t))
	require.Equal(t, planner.ViewSplash, m.app.View())
	assert.NotNil(t, m.Init(), "splash timer should be armed")
	assert.Contains(t, m.View(), "Hello!")

	m = press(t, m, "enter")
	assert.Equal(t, planner.ViewSplash, m.app.View(), "splash ignores input")

	m = fire(t, m, timerSplash)
	require.Equal(t, planner.ViewOnboarding, m.app.View())
	assert.Contains(t, m.View(), "Your planner's ready to go!")

	m = press(t, m, "enter")
	require.Equal(t, planner.ViewAuth, m.app.View())
	assert.Equal(t, authSignUp, m.auth.mode)
	assert.True(t, m.app.Session().OnboardingComplete)
}

func TestSplash_StaleTickIsDropped(t *testing.T) {
	m := newModel(t, storage.NewMemory(), testConfig(t))
	stale := timerMsg{kind: timerSplash, gen: m.timers[timerSplash] - 1}

	m, _ = send(t, m, stale)
	assert.Equal(t, planner.ViewSplash, m.app.View())
}

func TestSplash_ReturningUserLandsOnDashboard(t *testing.T) {
	m := newModel(t, seededKV(t, true), testConfig(t))
	m = fire(t, m, timerSplash)
	assert.Equal(t, planner.ViewDashboard, m.app.View())
	assert.Contains(t, m.View(), "Hello, Ann!")
}

func TestAuth_SignUpShowsBannerThenSwitchesToLogin(t *testing.T) {
	m := newModel(t, storage.NewMemory(), testConfig(t))
	m = fire(t, m, timerSplash)
	m = press(t, m, "enter")
	require.Equal(t, planner.ViewAuth, m.app.View())

	m = typeText(t, m, "Ann")
	m = press(t, m, "tab")
	m = typeText(t, m, "a@x.com")
	m = press(t, m, "tab")
	m = typeText(t, m, "pw1")
	m = press(t, m, "enter")

	assert.Equal(t, planner.ViewAuth, m.app.View())
	assert.True(t, m.auth.created)
	assert.Empty(t, m.auth.inputs[fieldPassword].Value(), "password is cleared after sign-up")
	assert.Contains(t, m.View(), accountCreatedBanner)
	assert.True(t, m.app.AccountExists())

	m = fire(t, m, timerSignUp)
	assert.Equal(t, authLogin, m.auth.mode)
	assert.False(t, m.auth.created)
	assert.Equal(t, fieldEmail, m.auth.focused())

	m = press(t, m, "tab")
	m = typeText(t, m, "pw1")
	m = press(t, m, "enter")
	require.Equal(t, planner.ViewDashboard, m.app.View())
	assert.Equal(t, planner.Session{UserName: "Ann", LoggedIn: true, OnboardingComplete: true}, m.app.Session())
}

func TestAuth_RejectedLoginShowsErrorUntilNextEdit(t *testing.T) {
	m := newModel(t, seededKV(t, false), testConfig(t))
	m = fire(t, m, timerSplash)
	require.Equal(t, planner.ViewAuth, m.app.View())
	require.Equal(t, authLogin, m.auth.mode, "an existing account opens in login mode")

	m = typeText(t, m, "a@x.com")
	m = press(t, m, "tab")
	m = typeText(t, m, "nope")
	m = press(t, m, "enter")

	assert.Equal(t, planner.ViewAuth, m.app.View())
	assert.Contains(t, m.View(), "Invalid email or password")
	assert.False(t, m.app.Session().LoggedIn)

	m = typeText(t, m, "x")
	assert.Empty(t, m.auth.err)
}

func TestAuth_MissingFieldsAndModeSwitch(t *testing.T) {
	m := newModel(t, seededKV(t, false), testConfig(t))
	m = fire(t, m, timerSplash)

	m = press(t, m, "enter")
	assert.Equal(t, "Email and password are required.", m.auth.err)

	m = press(t, m, "ctrl+n")
	assert.Equal(t, authSignUp, m.auth.mode)
	assert.Empty(t, m.auth.err, "switching mode clears the error")
	assert.Equal(t, fieldName, m.auth.focused())

	m = press(t, m, "ctrl+l")
	assert.Equal(t, authLogin, m.auth.mode)
}

func TestAuth_RevealTogglesPasswordEcho(t *testing.T) {
	m := newModel(t, seededKV(t, false), testConfig(t))
	m = fire(t, m, timerSplash)
	m = press(t, m, "tab")
	m = typeText(t, m, "pw1")

	assert.NotContains(t, m.View(), "pw1")
	assert.Contains(t, m.View(), "•••")

	m = press(t, m, "ctrl+r")
	assert.Contains(t, m.View(), "pw1")
}

func TestAddTask_SavesAndSurfacesReminder(t *testing.T) {
	m := dashboardModel(t)
	m = addTask(t, m, "Physics", "2024-06-02", "14:00")

	require.Equal(t, planner.ViewDashboard, m.app.View())
	tasks := m.app.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Physics", tasks[0].Subject)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, 1, tasks[0].Offset(), "reminder defaults to one day before")

	view := m.View()
	assert.Contains(t, view, "JUN 2 • 14:00")
	assert.Contains(t, view, "1D REMINDER")
	assert.Contains(t, view, "REMINDERS ACTIVE")

	m = fire(t, m, timerScan)
	require.NotNil(t, m.dash.notice)
	assert.Contains(t, m.View(), "DEADLINE APPROACHING!")
	assert.Contains(t, m.View(), "Physics is due tomorrow at 14:00")

	m = fire(t, m, timerDismiss)
	assert.Nil(t, m.dash.notice)
}

func TestAddTask_DismissKeyHidesNotice(t *testing.T) {
	m := dashboardModel(t)
	m = addTask(t, m, "Math", "2024-06-01", "08:00")
	m = fire(t, m, timerScan)
	require.NotNil(t, m.dash.notice)
	assert.True(t, m.dash.notice.DueToday())

	dismissGen := m.timers[timerDismiss]
	m = press(t, m, "x")
	assert.Nil(t, m.dash.notice)
	assert.NotEqual(t, dismissGen, m.timers[timerDismiss], "auto-dismiss is cancelled")
}

func TestAddTask_RefusesIncompleteOrInvalidForm(t *testing.T) {
	m := dashboardModel(t)
	m = press(t, m, "a")

	m = press(t, m, "enter")
	assert.Equal(t, planner.ViewAddTask, m.app.View())
	assert.Equal(t, "Subject, date and time are required.", m.form.err)

	m = typeText(t, m, "Chem")
	assert.Empty(t, m.form.err, "editing clears the error")
	m = press(t, m, "tab")
	m = typeText(t, m, "06/01/2024")
	m = press(t, m, "tab")
	m = typeText(t, m, "14:00")
	m = press(t, m, "enter")
	assert.Equal(t, planner.ViewAddTask, m.app.View())
	assert.Contains(t, m.form.err, "date")
	assert.Empty(t, m.app.Tasks())
}

func TestAddTask_OffsetSelectorAndCancel(t *testing.T) {
	m := dashboardModel(t)
	m = press(t, m, "a")
	m = typeText(t, m, "Bio")
	m = press(t, m, "tab")
	m = typeText(t, m, "2024-06-10")
	m = press(t, m, "tab")
	m = typeText(t, m, "10:30")
	m = press(t, m, "tab")
	require.Equal(t, stopOffset, m.form.focus)

	m = press(t, m, "right", "right")
	assert.Equal(t, "3 days before", offsetChoices[m.form.offset].label)
	m = press(t, m, "right", "right", "right")
	assert.Equal(t, "1 week before", offsetChoices[m.form.offset].label, "selector clamps at the end")
	m = press(t, m, "left")

	m = press(t, m, "enter")
	require.Len(t, m.app.Tasks(), 1)
	assert.Equal(t, 3, m.app.Tasks()[0].Offset())

	m = press(t, m, "a")
	m = typeText(t, m, "Discarded")
	m = press(t, m, "esc")
	assert.Equal(t, planner.ViewDashboard, m.app.View())
	assert.Len(t, m.app.Tasks(), 1, "cancel never mutates the list")
}

func TestDashboard_ToggleReschedulesScan(t *testing.T) {
	m := dashboardModel(t)
	m = addTask(t, m, "Math", "2024-06-01", "08:00")
	before := m.timers[timerScan]

	m = press(t, m, " ")
	assert.True(t, m.app.Tasks()[0].Completed)
	assert.NotEqual(t, before, m.timers[timerScan])

	m = fire(t, m, timerScan)
	assert.Nil(t, m.dash.notice, "completed tasks never surface")
	assert.NotContains(t, m.View(), "1D REMINDER")
}

func TestDashboard_LeavingCancelsPendingScan(t *testing.T) {
	m := dashboardModel(t)
	m = addTask(t, m, "Math", "2024-06-01", "08:00")
	pending := timerMsg{kind: timerScan, gen: m.timers[timerScan]}

	m = press(t, m, "p")
	require.Equal(t, planner.ViewProgress, m.app.View())
	assert.Contains(t, m.View(), "Progress Tracker")
	assert.Contains(t, m.View(), "0%")

	m, _ = send(t, m, pending)
	assert.Nil(t, m.dash.notice)

	m = press(t, m, "esc")
	assert.Equal(t, planner.ViewDashboard, m.app.View())
	assert.NotEqual(t, pending.gen, m.timers[timerScan], "re-entering schedules a fresh scan")
}

func TestDashboard_DayChangeRescans(t *testing.T) {
	m := dashboardModel(t)
	m = addTask(t, m, "Math", "2024-06-05", "08:00")
	before := m.timers[timerScan]

	m, cmd := send(t, m, DayChangedMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, before+2, m.timers[timerScan], "pending scan superseded by a new one")
}

func TestDashboard_EmptyListSchedulesNothing(t *testing.T) {
	m := dashboardModel(t)
	assert.Contains(t, m.View(), "No tasks scheduled yet.")

	m, cmd := send(t, m, DayChangedMsg{})
	assert.Nil(t, cmd)
	m = fire(t, m, timerScan)
	assert.Nil(t, m.dash.notice)
}

func TestSettings_NotificationsOffSuppressesReminders(t *testing.T) {
	m := dashboardModel(t)
	m = addTask(t, m, "Math", "2024-06-01", "08:00")

	m = press(t, m, "s")
	require.Equal(t, planner.ViewSettings, m.app.View())
	m = press(t, m, "down", "down", " ")
	assert.False(t, m.app.Preferences().NotificationsEnabled)

	m = press(t, m, "esc")
	require.Equal(t, planner.ViewDashboard, m.app.View())
	m = fire(t, m, timerScan)
	assert.Nil(t, m.dash.notice)
}

func TestSettings_FontSizeAndDarkMode(t *testing.T) {
	m := dashboardModel(t)
	m = press(t, m, "s")

	m = press(t, m, " ")
	assert.True(t, m.app.Preferences().DarkMode)

	m = press(t, m, "down", "right")
	assert.Equal(t, planner.FontLarge, m.app.Preferences().FontSize)
	m = press(t, m, "right")
	assert.Equal(t, planner.FontLarge, m.app.Preferences().FontSize, "clamped at large")
	m = press(t, m, "left", "left", "left")
	assert.Equal(t, planner.FontSmall, m.app.Preferences().FontSize)
	assert.Contains(t, m.View(), "[SMALL]")

	m = press(t, m, "esc")
	assert.True(t, m.app.Preferences().DarkMode, "preferences outlive the settings view")
}

func TestFocus_TicksOnlyWhileRunning(t *testing.T) {
	m := dashboardModel(t)
	m = press(t, m, "f")
	require.Equal(t, planner.ViewFocus, m.app.View())
	assert.Contains(t, m.View(), "25:00")

	m = press(t, m, " ")
	require.True(t, m.focus.Running())
	m = fire(t, m, timerFocusTick)
	assert.Equal(t, 1499, m.focus.Remaining())
	assert.Contains(t, m.View(), "24:59")

	inFlight := timerMsg{kind: timerFocusTick, gen: m.timers[timerFocusTick]}
	m = press(t, m, " ")
	assert.False(t, m.focus.Running())
	m, _ = send(t, m, inFlight)
	assert.Equal(t, 1499, m.focus.Remaining(), "a tick in flight is dropped after pause")

	m = press(t, m, "r")
	assert.Equal(t, 1500, m.focus.Remaining())

	m = press(t, m, " ")
	m = fire(t, m, timerFocusTick)
	m = press(t, m, "esc")
	assert.Equal(t, planner.ViewDashboard, m.app.View())
	assert.False(t, m.focus.Running())

	m = press(t, m, "f")
	assert.Equal(t, 1500, m.focus.Remaining(), "re-entering starts fresh")
}

func TestFocus_CompletesAndStops(t *testing.T) {
	cfg := testConfig(t)
	cfg.Timing.FocusSeconds = 2
	m := newModel(t, seededKV(t, true), cfg)
	m = fire(t, m, timerSplash)
	m = press(t, m, "f", " ")

	m = fire(t, m, timerFocusTick)
	m, cmd := send(t, m, timerMsg{kind: timerFocusTick, gen: m.timers[timerFocusTick]})
	assert.Nil(t, cmd, "no tick after completion")
	assert.Equal(t, 0, m.focus.Remaining())
	assert.False(t, m.focus.Running())
	assert.Contains(t, m.View(), "Focus session complete")

	m = press(t, m, " ")
	assert.False(t, m.focus.Running(), "an exhausted timer does not restart")
}

func TestQuitKeys(t *testing.T) {
	m := dashboardModel(t)

	_, cmd := send(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = press(t, m, "a")
	m, _ = send(t, m, keyMsg("q"))
	assert.Equal(t, "q", m.form.inputs[stopSubject].Value(), "q is text inside a form")

	_, cmd = send(t, m, keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPersistFailureIsReportedNotFatal(t *testing.T) {
	kv := &failingKV{Memory: seededKV(t, true)}
	m := newModel(t, kv, testConfig(t))
	m = fire(t, m, timerSplash)
	kv.failSet = true

	m = addTask(t, m, "Math", "2024-06-01", "08:00")
	assert.Equal(t, planner.ViewDashboard, m.app.View())
	assert.Len(t, m.app.Tasks(), 1)
	assert.Contains(t, m.View(), "save failed")
}

func TestDueLabel(t *testing.T) {
	assert.Equal(t, "JUN 1 • 14:00", dueLabel(planner.Task{Date: "2024-06-01", Time: "14:00"}))
	assert.Equal(t, "someday • 09:00", dueLabel(planner.Task{Date: "someday", Time: "09:00"}))
}

func TestTimers_CancelInvalidatesInFlightTicks(t *testing.T) {
	var ts timers
	cmd := ts.schedule(timerScan, time.Millisecond)
	require.NotNil(t, cmd)
	msg := timerMsg{kind: timerScan, gen: ts[timerScan]}
	assert.True(t, ts.live(msg))

	ts.cancel(timerScan)
	assert.False(t, ts.live(msg))
	assert.False(t, ts.live(timerMsg{kind: timerKinds, gen: 1}))

	fired, ok := cmd().(timerMsg)
	require.True(t, ok)
	assert.Equal(t, msg, fired)
}

type failingKV struct {
	*storage.Memory
	failSet bool
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return assert.AnError
	}
	return f.Memory.Set(ctx, key, value)
}
