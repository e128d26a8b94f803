package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal types determine whether a completion is a plain yes/no mark or a
// logged numeric amount.
const (
	GoalTypeYesNo    = "yes_no"
	GoalTypeQuantity = "quantity"
	GoalTypeTime     = "time"
)

// Frequencies govern target scaling and which rolling periods are shown.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyCustom  = "custom"
)

var AllowedGoalTypes = map[string]bool{
	GoalTypeYesNo:    true,
	GoalTypeQuantity: true,
	GoalTypeTime:     true,
}

var AllowedFrequencies = map[string]bool{
	FrequencyDaily:   true,
	FrequencyWeekly:  true,
	FrequencyMonthly: true,
	FrequencyCustom:  true,
}

// Habit is a user-defined recurring goal tracked per calendar date.
// CurrentStreak and LongestStreak are derived fields: they are recomputed
// after every completion mutation and never edited directly.
type Habit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	GoalType      string             `bson:"goal_type" json:"goal_type"`
	Target        int                `bson:"target" json:"target"`
	Frequency     string             `bson:"frequency" json:"frequency"`
	IntervalDays  int                `bson:"interval_days,omitempty" json:"interval_days,omitempty"` // only for custom frequency
	Completions   []Completion       `bson:"completions" json:"completions"`
	CurrentStreak int                `bson:"current_streak" json:"current_streak"`
	LongestStreak int                `bson:"longest_streak" json:"longest_streak"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Completion is a single date's record of whether/how much a habit's goal
// was met. At most one Completion exists per (habit, date) pair.
type Completion struct {
	ID          string    `bson:"id" json:"id"`
	Date        string    `bson:"date" json:"date"` // YYYY-MM-DD, date-only granularity
	Completed   bool      `bson:"completed" json:"completed"`
	Value       int       `bson:"value" json:"value"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"` // audit-only
}
