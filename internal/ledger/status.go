package ledger

import "time"

// Classify derives the display status of an entry as of a reference date.
// The comparison is calendar-date only: an entry due today is still open.
// The result is never written back to the entry.
func Classify(e *Entry, asOf time.Time) Status {
	if e.Settled() {
		return StatusSettled
	}

	due := dateOnly(e.DueDate)
	if due.Before(dateOnly(asOf)) {
		return StatusOverdue
	}

	return StatusOpen
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
