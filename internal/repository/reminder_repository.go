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

// ReminderRepository handles database operations related to reminders.
type ReminderRepository struct {
	collection *mongo.Collection
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{
		collection: db.Collection("reminders"),
	}
}

// CreateReminder inserts a new reminder.
func (r *ReminderRepository) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, reminder)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert reminder")
		return nil, fmt.Errorf("failed to insert reminder: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	reminder.ID = insertedID

	logger.Log.WithField("reminder_id", reminder.ID.Hex()).Info("Reminder created successfully")
	return reminder, nil
}

// GetReminderByID fetches a reminder by its ID.
func (r *ReminderRepository) GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reminder)
	if err != nil {
		return nil, fmt.Errorf("failed to find reminder: %v", err)
	}
	return &reminder, nil
}

// GetReminders fetches all reminders belonging to a user, soonest first.
func (r *ReminderRepository) GetReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "remind_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders: %v", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %v", err)
	}
	return reminders, nil
}

// GetDueReminders fetches reminders whose remind-at time has passed and that
// have not fired since it passed.
func (r *ReminderRepository) GetDueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	filter := bson.M{
		"remind_at": bson.M{"$lte": now},
		"$or": bson.A{
			bson.M{"last_fired_at": bson.M{"$exists": false}},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$last_fired_at", "$remind_at"}}},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due reminders: %v", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode due reminders: %v", err)
	}
	return reminders, nil
}

// MarkFired records a firing and, for repeating reminders, advances remind-at
// to the next occurrence.
func (r *ReminderRepository) MarkFired(ctx context.Context, reminder *models.Reminder, firedAt time.Time) error {
	update := bson.M{
		"last_fired_at": firedAt,
		"updated_at":    firedAt,
	}

	switch reminder.Repeat {
	case models.RepeatDaily:
		update["remind_at"] = reminder.RemindAt.AddDate(0, 0, 1)
	case models.RepeatWeekly:
		update["remind_at"] = reminder.RemindAt.AddDate(0, 0, 7)
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": reminder.ID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to mark reminder fired: %v", err)
	}
	return nil
}

// UpdateReminder replaces the stored reminder document.
func (r *ReminderRepository) UpdateReminder(ctx context.Context, id primitive.ObjectID, reminder *models.Reminder) (*models.Reminder, error) {
	reminder.UpdatedAt = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": reminder})
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %v", err)
	}
	return reminder, nil
}

// DeleteReminder deletes a reminder by its ID.
func (r *ReminderRepository) DeleteReminder(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %v", err)
	}

	logger.Log.WithField("reminder_id", id.Hex()).Info("Reminder deleted successfully")
	return nil
}
