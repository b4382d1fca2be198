package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"studyplanner/internal/planner"
)

// Form stops in display order. The offset selector is not a text input.
const (
	stopSubject = iota
	stopDate
	stopTime
	stopOffset
	stopNotes
	stopCount
)

type offsetChoice struct {
	days  int
	label string
}

var offsetChoices = []offsetChoice{
	{0, "Same day"},
	{1, "1 day before"},
	{2, "2 days before"},
	{3, "3 days before"},
	{7, "1 week before"},
}

const defaultOffsetChoice = 1

type taskForm struct {
	inputs [stopCount]textinput.Model
	focus  int
	offset int
	err    string
}

func newTaskForm() taskForm {
	f := taskForm{offset: defaultOffsetChoice}
	stops := []struct {
		stop        int
		placeholder string
		limit       int
	}{
		{stopSubject, "e.g. UX DESIGN PROJECT", 80},
		{stopDate, "YYYY-MM-DD", 10},
		{stopTime, "HH:MM", 5},
		{stopNotes, "Key points, requirements...", 256},
	}
	for _, s := range stops {
		ti := textinput.New()
		ti.Placeholder = s.placeholder
		ti.CharLimit = s.limit
		ti.Width = 40
		f.inputs[s.stop] = ti
	}
	return f
}

func (f *taskForm) focusCurrent() tea.Cmd {
	f.focus = wrapIndex(f.focus, stopCount)
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	if f.focus == stopOffset {
		return nil
	}
	return f.inputs[f.focus].Focus()
}

func (f *taskForm) setWidth(w int) {
	if w < 20 {
		return
	}
	for i := range f.inputs {
		f.inputs[i].Width = min(w, 60)
	}
}

func (f taskForm) value(stop int) string {
	return strings.TrimSpace(f.inputs[stop].Value())
}

// input validates the form. Empty required fields and unparsable date or
// time values keep the form open.
func (f taskForm) input() (planner.TaskInput, error) {
	in := planner.TaskInput{
		Subject:        f.value(stopSubject),
		Date:           f.value(stopDate),
		Time:           f.value(stopTime),
		Notes:          f.value(stopNotes),
		ReminderOffset: planner.IntPtr(offsetChoices[f.offset].days),
	}
	if in.Subject == "" || in.Date == "" || in.Time == "" {
		return in, planner.ErrMissingField
	}
	if _, err := time.Parse(planner.DateLayout, in.Date); err != nil {
		return in, errors.New("date must look like 2024-06-01")
	}
	if _, err := time.Parse(planner.TimeLayout, in.Time); err != nil {
		return in, errors.New("time must look like 14:00")
	}
	return in, nil
}

func (f taskForm) ready() bool {
	_, err := f.input()
	return err == nil
}

func (m Model) updateAddTask(msg tea.KeyMsg) (Model, tea.Cmd) {
	keys := m.cfg.Keys
	f := &m.form

	switch msg.String() {
	case keys.Cancel:
		return m.navigate(func() error { return m.app.CancelAddTask(m.ctx) })
	case keys.Confirm:
		return m.saveTask()
	case keys.NextField, "down":
		f.focus++
		cmd := f.focusCurrent()
		return m, cmd
	case keys.PrevField, "up":
		f.focus--
		cmd := f.focusCurrent()
		return m, cmd
	}

	if f.focus == stopOffset {
		switch msg.String() {
		case keys.OptionNext, keys.Down:
			f.offset = clampCursor(f.offset+1, len(offsetChoices))
		case keys.OptionPrev, keys.Up:
			f.offset = clampCursor(f.offset-1, len(offsetChoices))
		}
		return m, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return m, cmd
}

func (m Model) saveTask() (Model, tea.Cmd) {
	in, err := m.form.input()
	if err != nil {
		if errors.Is(err, planner.ErrMissingField) {
			m.form.err = "Subject, date and time are required."
		} else {
			m.form.err = err.Error()
		}
		return m, nil
	}

	from := m.app.View()
	t, err := m.app.SaveTask(m.ctx, in)
	if t.ID == "" {
		if err != nil {
			m.form.err = err.Error()
		}
		return m, nil
	}
	next, cmd := m.moved(from)
	next.dash.cursor = len(next.app.Tasks()) - 1
	if err != nil {
		next = next.reportErr("save", err)
	}
	return next, cmd
}

func (m Model) viewAddTask() string {
	th := m.theme()
	keys := m.cfg.Keys
	f := m.form

	label := func(stop int, text string) string {
		if f.focus == stop {
			return th.accent.Render(text)
		}
		return th.subtle.Render(text)
	}

	var b strings.Builder
	b.WriteString(th.title.Render("New Task"))
	b.WriteString(th.gap)
	if f.err != "" {
		b.WriteString(th.err.Render(f.err))
		b.WriteString("\n")
	}

	b.WriteString(label(stopSubject, "SUBJECT NAME*") + "\n" + f.inputs[stopSubject].View() + "\n")
	b.WriteString(label(stopDate, "DATE*") + "\n" + f.inputs[stopDate].View() + "\n")
	b.WriteString(label(stopTime, "TIME*") + "\n" + f.inputs[stopTime].View() + "\n")

	b.WriteString(label(stopOffset, "SUGGESTION DAY (REMINDER)") + "\n")
	choice := fmt.Sprintf("‹ %s ›", offsetChoices[f.offset].label)
	if f.focus == stopOffset {
		choice = th.selected.Render(choice)
	}
	b.WriteString(choice + "\n")
	b.WriteString(th.subtle.Render("We'll notify you this many days before the deadline.") + "\n")

	b.WriteString(label(stopNotes, "NOTES") + "\n" + f.inputs[stopNotes].View())
	b.WriteString(th.gap)

	save := "[ SAVE TASK ]"
	if f.ready() {
		save = th.selected.Render(save)
	} else {
		save = th.subtle.Render(save)
	}
	b.WriteString(save)
	b.WriteString("\n")
	b.WriteString(m.keyHelp(
		keys.Confirm, "save",
		keys.NextField, "next field",
		keys.OptionPrev+"/"+keys.OptionNext, "reminder",
		keys.Cancel, "cancel",
	))
	return b.String()
}
