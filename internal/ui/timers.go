package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timerKind int

const (
	timerSplash timerKind = iota
	timerSignUp
	timerScan
	timerDismiss
	timerFocusTick

	timerKinds
)

// timerMsg is delivered when a scheduled tick elapses. It is acted on only
// if its generation still matches; cancel bumps the generation so a tick
// already in flight is dropped on arrival.
type timerMsg struct {
	kind timerKind
	gen  uint64
}

type timers [timerKinds]uint64

func (t *timers) schedule(kind timerKind, d time.Duration) tea.Cmd {
	t[kind]++
	msg := timerMsg{kind: kind, gen: t[kind]}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (t *timers) cancel(kinds ...timerKind) {
	for _, k := range kinds {
		t[k]++
	}
}

func (t timers) live(msg timerMsg) bool {
	return msg.kind >= 0 && msg.kind < timerKinds && t[msg.kind] == msg.gen
}
