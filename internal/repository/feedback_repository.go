package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedbackRepository handles feedback submissions and beta signups.
type FeedbackRepository struct {
	feedback *mongo.Collection
	signups  *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{
		feedback: db.Collection("feedback"),
		signups:  db.Collection("beta_signups"),
	}
}

// CreateFeedback inserts a feedback submission.
func (r *FeedbackRepository) CreateFeedback(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	fb.CreatedAt = time.Now()

	result, err := r.feedback.InsertOne(ctx, fb)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert feedback")
		return nil, fmt.Errorf("failed to insert feedback: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	fb.ID = insertedID
	return fb, nil
}

// GetAllFeedback lists recent feedback submissions (admin use).
func (r *FeedbackRepository) GetAllFeedback(ctx context.Context, limit int64) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.feedback.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %v", err)
	}
	defer cursor.Close(ctx)

	var items []models.Feedback
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %v", err)
	}
	return items, nil
}

// CreateBetaSignup inserts a beta signup unless the email is already registered.
func (r *FeedbackRepository) CreateBetaSignup(ctx context.Context, signup *models.BetaSignup) (*models.BetaSignup, error) {
	var existing models.BetaSignup
	err := r.signups.FindOne(ctx, bson.M{"email": signup.Email}).Decode(&existing)
	if err == nil {
		return nil, fmt.Errorf("email already signed up")
	}

	signup.CreatedAt = time.Now()
	result, err := r.signups.InsertOne(ctx, signup)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert beta signup")
		return nil, fmt.Errorf("failed to insert beta signup: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	signup.ID = insertedID
	return signup, nil
}

// GetBetaSignups lists beta signups (admin use).
func (r *FeedbackRepository) GetBetaSignups(ctx context.Context) ([]models.BetaSignup, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.signups.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch beta signups: %v", err)
	}
	defer cursor.Close(ctx)

	var signups []models.BetaSignup
	if err := cursor.All(ctx, &signups); err != nil {
		return nil, fmt.Errorf("failed to decode beta signups: %v", err)
	}
	return signups, nil
}
