package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TranscriptionRepository handles database operations for transcription jobs.
type TranscriptionRepository struct {
	collection *mongo.Collection
}

func NewTranscriptionRepository(db *mongo.Database) *TranscriptionRepository {
	return &TranscriptionRepository{
		collection: db.Collection("transcription_jobs"),
	}
}

// CreateJob inserts a new transcription job.
func (r *TranscriptionRepository) CreateJob(ctx context.Context, job *models.TranscriptionJob) (*models.TranscriptionJob, error) {
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, job)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert transcription job")
		return nil, fmt.Errorf("failed to insert transcription job: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	job.ID = insertedID

	logger.Log.WithField("job_id", job.ID.Hex()).Info("Transcription job created")
	return job, nil
}

// GetJobByID fetches a transcription job by its ID.
func (r *TranscriptionRepository) GetJobByID(ctx context.Context, id primitive.ObjectID) (*models.TranscriptionJob, error) {
	var job models.TranscriptionJob
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		return nil, fmt.Errorf("failed to find transcription job: %v", err)
	}
	return &job, nil
}

// GetJobsByUser lists a user's transcription jobs, newest first.
func (r *TranscriptionRepository) GetJobsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.TranscriptionJob, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcription jobs: %v", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.TranscriptionJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode transcription jobs: %v", err)
	}
	return jobs, nil
}

// UpdateJobStatus advances a job's stage and progress, optionally recording
// the transcript or a failure message.
func (r *TranscriptionRepository) UpdateJobStatus(ctx context.Context, id primitive.ObjectID, status string, progress int, transcript, errMsg string) error {
	update := bson.M{
		"status":     status,
		"progress":   progress,
		"updated_at": time.Now(),
	}
	if transcript != "" {
		update["transcript"] = transcript
	}
	if errMsg != "" {
		update["error"] = errMsg
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logger.Log.WithError(err).WithField("job_id", id.Hex()).Error("Failed to update transcription job")
		return fmt.Errorf("failed to update transcription job: %v", err)
	}
	return nil
}

// DeleteJob deletes a transcription job by its ID.
func (r *TranscriptionRepository) DeleteJob(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete transcription job: %v", err)
	}
	return nil
}
