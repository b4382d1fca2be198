package planner

import "math"

// Progress is derived from a task snapshot and never stored.
type Progress struct {
	Total     int
	Completed int
	Pending   int
	Percent   int
}

func Summarize(tasks []Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	p.Pending = p.Total - p.Completed
	if p.Total > 0 {
		p.Percent = int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
	}
	return p
}

// Ratio is Percent as a fraction for progress bars.
func (p Progress) Ratio() float64 {
	return float64(p.Percent) / 100
}

// RemindersActive reports whether any incomplete task asks for a reminder
// at least one day ahead.
func RemindersActive(tasks []Task) bool {
	for _, t := range tasks {
		if !t.Completed && t.Offset() > 0 {
			return true
		}
	}
	return false
}
