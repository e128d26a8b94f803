package habits

import (
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
)

// CurrentStreak counts consecutive calendar days with a completed record,
// walking backward one day at a time starting at today. A missing record and
// an explicit completed=false record both break the streak.
//
// The walk is daily regardless of the habit's declared frequency; a weekly
// habit that is only marked on Sundays therefore never builds a streak past 1.
func CurrentStreak(h *models.Habit, today time.Time) int {
	done := make(map[string]bool, len(h.Completions))
	for _, c := range h.Completions {
		if c.Completed {
			done[c.Date] = true
		}
	}

	streak := 0
	for offset := 0; ; offset++ {
		expected := today.AddDate(0, 0, -offset).Format(DateLayout)
		if !done[expected] {
			break
		}
		streak++
	}
	return streak
}

// RecomputeStreaks recalculates the habit's current streak and advances its
// longest streak high-water mark, storing both on the habit. The longest
// streak is never rebuilt by scanning history: it only ever ratchets up when
// the current streak exceeds it.
func RecomputeStreaks(h *models.Habit, today time.Time) (current, longest int) {
	current = CurrentStreak(h, today)

	longest = h.LongestStreak
	if current > longest {
		longest = current
	}

	h.CurrentStreak = current
	h.LongestStreak = longest
	return current, longest
}
