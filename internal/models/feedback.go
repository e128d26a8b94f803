package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"` // "bug", "feature", "other"
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type BetaSignup struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Platform  string             `bson:"platform,omitempty" json:"platform,omitempty"` // "ios", "android"
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
