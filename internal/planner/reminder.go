package planner

import (
	"fmt"
	"math"
	"time"
)

// Reminder is the single notification a scan surfaces.
type Reminder struct {
	Task     Task
	DaysLeft int
}

func (r Reminder) DueToday() bool {
	return r.DaysLeft == 0
}

// Message is the notification body.
func (r Reminder) Message() string {
	switch r.DaysLeft {
	case 0:
		return fmt.Sprintf("%s is due today at %s", r.Task.Subject, r.Task.Time)
	case 1:
		return fmt.Sprintf("%s is due tomorrow at %s", r.Task.Subject, r.Task.Time)
	default:
		return fmt.Sprintf("%s is due in %d days", r.Task.Subject, r.DaysLeft)
	}
}

type ScanOptions struct {
	// HonorOffset widens the window of tasks that carry a reminder offset to
	// [due - offset days, due]. Tasks without an offset keep the default
	// today/tomorrow window.
	HonorOffset bool
}

// ScanReminders returns the first incomplete task, in list order, whose
// calendar date is today or tomorrow in now's location. Time of day is
// ignored and tasks with unparsable dates are skipped.
func ScanReminders(tasks []Task, now time.Time, opts ScanOptions) (Reminder, bool) {
	today := StartOfDay(now)

	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, err := time.ParseInLocation(DateLayout, t.Date, now.Location())
		if err != nil {
			continue
		}
		days := daysBetween(today, due)
		switch {
		case days == 0 || days == 1:
			return Reminder{Task: t, DaysLeft: days}, true
		case opts.HonorOffset && t.HasReminder() && days > 0 && days <= t.Offset():
			return Reminder{Task: t, DaysLeft: days}, true
		}
	}
	return Reminder{}, false
}

// daysBetween counts calendar days from a to b; both must be midnights.
// Rounding absorbs DST shifts.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
