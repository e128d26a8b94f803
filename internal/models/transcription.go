package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transcription job lifecycle. Stage transitions are pushed to the owning
// client over the WebSocket feed as they happen.
const (
	TranscriptionUploaded   = "uploaded"
	TranscriptionQueued     = "queued"
	TranscriptionProcessing = "processing"
	TranscriptionCompleted  = "completed"
	TranscriptionFailed     = "failed"
)

type TranscriptionJob struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	FileName   string             `bson:"file_name" json:"file_name"`
	FilePath   string             `bson:"file_path" json:"-"`
	Status     string             `bson:"status" json:"status"`
	Progress   int                `bson:"progress" json:"progress"` // 0-100
	Transcript string             `bson:"transcript,omitempty" json:"transcript,omitempty"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
