// Package habits contains the pure habit domain engine: the completion
// ledger, the streak calculator and the rolling target aggregator. It does
// no I/O and never reads the clock; callers supply "today" and persist the
// mutated habit themselves.
package habits

import (
	"errors"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used by the completion ledger.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate is returned when a completion date does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid completion date")
	// ErrInvalidValue is returned when a logged value is negative.
	ErrInvalidValue = errors.New("completion value must be non-negative")
)

// UpsertCompletion records a completion for the given date on the habit.
// If a completion for that date already exists its completed flag, value and
// completed-at timestamp are replaced in place; otherwise a new record is
// appended. The ledger never holds two completions for the same date.
//
// The caller must recompute streaks (RecomputeStreaks) and persist the habit
// afterwards; the ledger itself does neither.
func UpsertCompletion(h *models.Habit, date string, completed bool, value int) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	if value < 0 {
		return ErrInvalidValue
	}

	now := time.Now()
	for i := range h.Completions {
		if h.Completions[i].Date == date {
			h.Completions[i].Completed = completed
			h.Completions[i].Value = value
			h.Completions[i].CompletedAt = now
			return nil
		}
	}

	h.Completions = append(h.Completions, models.Completion{
		ID:          uuid.NewString(),
		Date:        date,
		Completed:   completed,
		Value:       value,
		CompletedAt: now,
	})
	return nil
}
