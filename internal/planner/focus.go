package planner

import "fmt"

// DefaultFocusSeconds is one 25-minute focus block.
const DefaultFocusSeconds = 25 * 60

type TimerState int

const (
	TimerPaused TimerState = iota
	TimerRunning
)

func (s TimerState) String() string {
	if s == TimerRunning {
		return "running"
	}
	return "paused"
}

// FocusTimer is a single countdown. The caller supplies the one-second
// ticks; the timer only tracks state.
type FocusTimer struct {
	total     int
	remaining int
	state     TimerState
}

func NewFocusTimer(seconds int) FocusTimer {
	if seconds <= 0 {
		seconds = DefaultFocusSeconds
	}
	return FocusTimer{total: seconds, remaining: seconds, state: TimerPaused}
}

func (f FocusTimer) Remaining() int    { return f.remaining }
func (f FocusTimer) Total() int        { return f.total }
func (f FocusTimer) State() TimerState { return f.state }
func (f FocusTimer) Running() bool     { return f.state == TimerRunning }

// Start resumes the countdown. It refuses to run an exhausted timer.
func (f *FocusTimer) Start() bool {
	if f.remaining <= 0 {
		f.state = TimerPaused
		return false
	}
	f.state = TimerRunning
	return true
}

func (f *FocusTimer) Pause() {
	f.state = TimerPaused
}

// Toggle flips between running and paused and reports whether it now runs.
func (f *FocusTimer) Toggle() bool {
	if f.Running() {
		f.Pause()
		return false
	}
	return f.Start()
}

// Reset pauses and restores the full duration regardless of state.
func (f *FocusTimer) Reset() {
	f.state = TimerPaused
	f.remaining = f.total
}

// Tick consumes one second while running. It returns true on the tick that
// reaches zero, after which the timer is paused.
func (f *FocusTimer) Tick() bool {
	if !f.Running() || f.remaining <= 0 {
		return false
	}
	f.remaining--
	if f.remaining == 0 {
		f.state = TimerPaused
		return true
	}
	return false
}

// String renders the remaining time as MM:SS.
func (f FocusTimer) String() string {
	return fmt.Sprintf("%02d:%02d", f.remaining/60, f.remaining%60)
}
