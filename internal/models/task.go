package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"` // "open", "completed"
	DueDate     time.Time          `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Subtasks    []Subtask          `bson:"subtasks,omitempty" json:"subtasks,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type Subtask struct {
	Title string `bson:"title" json:"title"`
	Done  bool   `bson:"done" json:"done"`
}
