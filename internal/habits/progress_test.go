package habits

import (
	"testing"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var progressToday = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

func TestRollingProgress_WeekWindowBoundary(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity, Target: 1, Frequency: models.FrequencyDaily}

	inside := progressToday.AddDate(0, 0, -6).Format(DateLayout)
	outside := progressToday.AddDate(0, 0, -7).Format(DateLayout)
	require.NoError(t, UpsertCompletion(h, inside, true, 3))
	require.NoError(t, UpsertCompletion(h, outside, true, 100))

	progress := RollingProgress(h, progressToday)
	assert.Equal(t, 3, progress[PeriodWeek].Progress, "today-6 is inside the 7-day window, today-7 is not")
	assert.Equal(t, 103, progress[PeriodMonth].Progress)
}

func TestRollingProgress_SumsRegardlessOfCompletedFlag(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity, Target: 10, Frequency: models.FrequencyDaily}

	require.NoError(t, UpsertCompletion(h, progressToday.Format(DateLayout), false, 4))
	require.NoError(t, UpsertCompletion(h, progressToday.AddDate(0, 0, -1).Format(DateLayout), true, 6))

	progress := RollingProgress(h, progressToday)
	assert.Equal(t, 4, progress[PeriodToday].Progress)
	assert.Equal(t, 10, progress[PeriodWeek].Progress)
}

func TestRollingProgress_DailyTargetScaling(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity, Target: 2, Frequency: models.FrequencyDaily}

	progress := RollingProgress(h, progressToday)
	assert.Equal(t, float64(2), progress[PeriodToday].Target)
	assert.Equal(t, float64(14), progress[PeriodWeek].Target)
	assert.Equal(t, float64(60), progress[PeriodMonth].Target)
	assert.Equal(t, float64(180), progress[PeriodQuarter].Target)
	assert.Equal(t, float64(730), progress[PeriodYear].Target)
}

func TestRollingProgress_WeeklyTargetScaling(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity, Target: 3, Frequency: models.FrequencyWeekly}

	progress := RollingProgress(h, progressToday)
	assert.Equal(t, float64(3), progress[PeriodWeek].Target)
	assert.Equal(t, float64(12), progress[PeriodMonth].Target, "month = target x floor(30/7)")
	assert.Equal(t, float64(36), progress[PeriodQuarter].Target, "quarter = target x floor(90/7)")
	assert.Equal(t, float64(156), progress[PeriodYear].Target, "year = target x floor(365/7)")
}

func TestRollingProgress_MonthlyTargetScaling(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity, Target: 30, Frequency: models.FrequencyMonthly}

	progress := RollingProgress(h, progressToday)
	assert.Equal(t, float64(30), progress[PeriodMonth].Target)
	assert.Equal(t, float64(90), progress[PeriodQuarter].Target)
	assert.Equal(t, float64(360), progress[PeriodYear].Target)
	// Week target stays fractional until render time.
	assert.InDelta(t, 7.0, progress[PeriodWeek].Target, 1e-9)
}

func TestRollingProgress_UnrecognizedFrequencyFallsBackToDaily(t *testing.T) {
	h := &models.Habit{GoalType: models.GoalTypeQuantity, Target: 2, Frequency: "fortnightly"}

	progress := RollingProgress(h, progressToday)
	assert.Equal(t, float64(14), progress[PeriodWeek].Target)
	assert.Equal(t, float64(730), progress[PeriodYear].Target)
}

func TestVisiblePeriods(t *testing.T) {
	tests := []struct {
		frequency string
		want      []Period
	}{
		{models.FrequencyDaily, []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}},
		{models.FrequencyWeekly, []Period{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}},
		{models.FrequencyMonthly, []Period{PeriodMonth, PeriodQuarter, PeriodYear}},
		{models.FrequencyCustom, []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}},
		{"", []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, VisiblePeriods(tt.frequency), "frequency %q", tt.frequency)
	}
}

func TestEngine_EndToEnd(t *testing.T) {
	h := &models.Habit{
		GoalType:  models.GoalTypeQuantity,
		Target:    10,
		Frequency: models.FrequencyDaily,
	}

	require.NoError(t, UpsertCompletion(h, progressToday.Format(DateLayout), true, 12))
	current, longest := RecomputeStreaks(h, progressToday)

	assert.Equal(t, 1, current)
	assert.Equal(t, 1, longest)

	progress := RollingProgress(h, progressToday)
	assert.Equal(t, 12, progress[PeriodToday].Progress)
	assert.Equal(t, float64(10), progress[PeriodToday].Target)
}
