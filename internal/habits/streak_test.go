package habits

import (
	"testing"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var streakToday = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

// habitWithCompletions builds a habit completed on the given day offsets
// relative to streakToday (0 = today, 1 = yesterday, ...).
func habitWithCompletions(t *testing.T, offsets ...int) *models.Habit {
	t.Helper()
	h := &models.Habit{GoalType: models.GoalTypeYesNo}
	for _, off := range offsets {
		date := streakToday.AddDate(0, 0, -off).Format(DateLayout)
		require.NoError(t, UpsertCompletion(h, date, true, 0))
	}
	return h
}

func TestCurrentStreak_EmptyLedger(t *testing.T) {
	h := &models.Habit{}
	assert.Equal(t, 0, CurrentStreak(h, streakToday))
}

func TestCurrentStreak_ConsecutiveDays(t *testing.T) {
	h := habitWithCompletions(t, 0, 1, 2, 3, 4)
	assert.Equal(t, 5, CurrentStreak(h, streakToday))
}

func TestCurrentStreak_StopsAtGap(t *testing.T) {
	// today, yesterday, then a hole at today-2
	h := habitWithCompletions(t, 0, 1, 3)
	assert.Equal(t, 2, CurrentStreak(h, streakToday))
}

func TestCurrentStreak_MissingToday(t *testing.T) {
	h := habitWithCompletions(t, 1, 2, 3)
	assert.Equal(t, 0, CurrentStreak(h, streakToday))
}

func TestCurrentStreak_ExplicitFalseBreaks(t *testing.T) {
	h := habitWithCompletions(t, 0, 1, 2)
	// Yesterday gets downgraded to not-completed; identical to a missing record.
	yesterday := streakToday.AddDate(0, 0, -1).Format(DateLayout)
	require.NoError(t, UpsertCompletion(h, yesterday, false, 0))

	assert.Equal(t, 1, CurrentStreak(h, streakToday))
}

func TestCurrentStreak_IgnoresFrequency(t *testing.T) {
	// A weekly habit marked a week apart still walks day by day.
	h := habitWithCompletions(t, 0, 7)
	h.Frequency = models.FrequencyWeekly
	assert.Equal(t, 1, CurrentStreak(h, streakToday))
}

func TestRecomputeStreaks_StoresDerivedFields(t *testing.T) {
	h := habitWithCompletions(t, 0, 1, 2)

	current, longest := RecomputeStreaks(h, streakToday)
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, longest)
	assert.Equal(t, 3, h.CurrentStreak)
	assert.Equal(t, 3, h.LongestStreak)
}

func TestRecomputeStreaks_LongestIsHighWaterMark(t *testing.T) {
	h := habitWithCompletions(t, 0, 1, 2, 3, 4)

	prevLongest := 0
	// Walk today forward past the last completion: the current streak decays
	// to zero while the longest streak never decreases.
	for dayOffset := 0; dayOffset < 8; dayOffset++ {
		today := streakToday.AddDate(0, 0, dayOffset)
		current, longest := RecomputeStreaks(h, today)

		assert.GreaterOrEqual(t, longest, current)
		assert.GreaterOrEqual(t, longest, prevLongest, "longest streak must be non-decreasing")
		prevLongest = longest
	}

	assert.Equal(t, 0, h.CurrentStreak)
	assert.Equal(t, 5, h.LongestStreak)
}

func TestRecomputeStreaks_NoRetroactiveDiscovery(t *testing.T) {
	// A long historical run that predates tracking is not rediscovered:
	// longest only ratchets from recomputations that observed it as current.
	h := habitWithCompletions(t, 10, 11, 12, 13, 14, 15)
	h.LongestStreak = 2 // value carried over from before the data import

	current, longest := RecomputeStreaks(h, streakToday)
	assert.Equal(t, 0, current)
	assert.Equal(t, 2, longest)
}

func TestStreaks_Deterministic(t *testing.T) {
	h := habitWithCompletions(t, 0, 1, 3, 4)

	first := CurrentStreak(h, streakToday)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CurrentStreak(h, streakToday))
	}
}
