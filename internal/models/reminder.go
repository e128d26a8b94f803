package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RepeatNone   = ""
	RepeatDaily  = "daily"
	RepeatWeekly = "weekly"
)

// Reminder is a user-scheduled alert. The cron scanner materializes a
// Notification once RemindAt passes; push delivery happens outside this service.
type Reminder struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Title       string              `bson:"title" json:"title"`
	Message     string              `bson:"message,omitempty" json:"message,omitempty"`
	RemindAt    time.Time           `bson:"remind_at" json:"remind_at"`
	Repeat      string              `bson:"repeat,omitempty" json:"repeat,omitempty"` // "", "daily", "weekly"
	TargetID    *primitive.ObjectID `bson:"target_id,omitempty" json:"target_id,omitempty"`
	LastFiredAt time.Time           `bson:"last_fired_at,omitempty" json:"last_fired_at,omitempty"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}
