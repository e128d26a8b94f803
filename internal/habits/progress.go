package habits

import (
	"math"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
)

// Period is a fixed backward-looking calendar window used to aggregate
// progress against a scaled target.
type Period string

const (
	PeriodToday   Period = "today"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// AllPeriods lists every period in display order.
var AllPeriods = []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}

// periodDays is the window length in calendar days, inclusive of today.
var periodDays = map[Period]int{
	PeriodToday:   1,
	PeriodWeek:    7,
	PeriodMonth:   30,
	PeriodQuarter: 90,
	PeriodYear:    365,
}

// PeriodProgress pairs the summed progress of a window with its scaled target.
// Target is fractional only for the week window of a monthly habit; every
// other target is already a whole number.
type PeriodProgress struct {
	Progress int     `json:"progress"`
	Target   float64 `json:"target"`
}

// RollingProgress computes progress-vs-target for all five rolling windows.
// Progress sums the logged values of every completion inside the window
// regardless of its completed flag. Completions with unparsable dates are
// skipped; they cannot be placed in any window.
func RollingProgress(h *models.Habit, today time.Time) map[Period]PeriodProgress {
	result := make(map[Period]PeriodProgress, len(AllPeriods))

	// ISO dates order lexically, so the window check is a string comparison.
	todayStr := today.Format(DateLayout)
	for _, p := range AllPeriods {
		n := periodDays[p]
		startStr := today.AddDate(0, 0, -(n - 1)).Format(DateLayout)

		sum := 0
		for _, c := range h.Completions {
			if _, err := time.Parse(DateLayout, c.Date); err != nil {
				continue
			}
			if c.Date >= startStr && c.Date <= todayStr {
				sum += c.Value
			}
		}

		result[p] = PeriodProgress{
			Progress: sum,
			Target:   periodTarget(h.Frequency, h.Target, p),
		}
	}
	return result
}

// periodTarget scales the habit's single target to the given window.
// Unrecognized frequencies (including custom intervals) fall back to the
// daily rule.
func periodTarget(frequency string, target int, p Period) float64 {
	t := float64(target)

	switch frequency {
	case models.FrequencyWeekly:
		switch p {
		case PeriodToday:
			return math.Round(t / 7)
		case PeriodWeek:
			return t
		case PeriodMonth:
			return math.Round(t * math.Floor(30.0/7))
		case PeriodQuarter:
			return math.Round(t * math.Floor(90.0/7))
		case PeriodYear:
			return math.Round(t * math.Floor(365.0/7))
		}
	case models.FrequencyMonthly:
		switch p {
		case PeriodToday:
			return math.Round(t / 30)
		case PeriodWeek:
			// Fractional by design; rounding happens at render time.
			return t * 7 / 30
		case PeriodMonth:
			return t
		case PeriodQuarter:
			return t * 3
		case PeriodYear:
			return t * 12
		}
	}

	return t * float64(periodDays[p])
}

// VisiblePeriods reports which windows are meaningful for the given
// frequency. This is a display filter on top of the numeric computation:
// RollingProgress always computes all five.
func VisiblePeriods(frequency string) []Period {
	switch frequency {
	case models.FrequencyWeekly:
		return []Period{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}
	case models.FrequencyMonthly:
		return []Period{PeriodMonth, PeriodQuarter, PeriodYear}
	default:
		return AllPeriods
	}
}
