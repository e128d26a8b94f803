package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template is a reusable starting point for a note or a task.
type Template struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Kind      string             `bson:"kind" json:"kind"` // "note" or "task"
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Content   string             `bson:"content,omitempty" json:"content,omitempty"`
	Subtasks  []Subtask          `bson:"subtasks,omitempty" json:"subtasks,omitempty"`
	Public    bool               `bson:"public" json:"public"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
