package habits

import (
	"testing"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCompletion_AppendsNewRecord(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity}

	err := UpsertCompletion(h, "2026-08-30", true, 5)
	require.NoError(t, err)

	require.Len(t, h.Completions, 1)
	c := h.Completions[0]
	assert.Equal(t, "2026-08-30", c.Date)
	assert.True(t, c.Completed)
	assert.Equal(t, 5, c.Value)
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CompletedAt.IsZero())
}

func TestUpsertCompletion_ReplacesExistingDate(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity}

	require.NoError(t, UpsertCompletion(h, "2026-08-30", true, 5))
	firstID := h.Completions[0].ID

	require.NoError(t, UpsertCompletion(h, "2026-08-30", false, 2))

	require.Len(t, h.Completions, 1, "second mark for the same date must not append")
	c := h.Completions[0]
	assert.Equal(t, firstID, c.ID, "record identity survives an overwrite")
	assert.False(t, c.Completed)
	assert.Equal(t, 2, c.Value)
}

func TestUpsertCompletion_Idempotent(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity}

	require.NoError(t, UpsertCompletion(h, "2026-08-30", true, 3))
	require.NoError(t, UpsertCompletion(h, "2026-08-30", true, 3))

	require.Len(t, h.Completions, 1)
	assert.True(t, h.Completions[0].Completed)
	assert.Equal(t, 3, h.Completions[0].Value)
}

func TestUpsertCompletion_UniquePerDate(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity}

	dates := []string{"2026-08-28", "2026-08-29", "2026-08-28", "2026-08-30", "2026-08-29"}
	for _, d := range dates {
		require.NoError(t, UpsertCompletion(h, d, true, 1))
	}

	seen := make(map[string]int)
	for _, c := range h.Completions {
		seen[c.Date]++
	}
	for date, count := range seen {
		assert.Equalf(t, 1, count, "date %s appears %d times", date, count)
	}
	assert.Len(t, h.Completions, 3)
}

func TestUpsertCompletion_RejectsInvalidInput(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity}

	assert.ErrorIs(t, UpsertCompletion(h, "30-08-2026", true, 1), ErrInvalidDate)
	assert.ErrorIs(t, UpsertCompletion(h, "not-a-date", true, 1), ErrInvalidDate)
	assert.ErrorIs(t, UpsertCompletion(h, "2026-08-30", true, -1), ErrInvalidValue)
	assert.Empty(t, h.Completions, "rejected upserts must not touch the ledger")
}
