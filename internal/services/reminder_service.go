package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/repository"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderService encapsulates the business logic for reminders.
type ReminderService struct {
	repo *repository.ReminderRepository
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(repo *repository.ReminderRepository) *ReminderService {
	return &ReminderService{repo: repo}
}

// CreateReminder validates and stores a new reminder.
func (s *ReminderService) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	if reminder.Title == "" {
		return nil, fmt.Errorf("reminder title is required")
	}
	if reminder.RemindAt.IsZero() || reminder.RemindAt.Before(time.Now()) {
		return nil, fmt.Errorf("remind-at time must be in the future")
	}
	switch reminder.Repeat {
	case models.RepeatNone, models.RepeatDaily, models.RepeatWeekly:
	default:
		return nil, fmt.Errorf("invalid repeat value: %s", reminder.Repeat)
	}

	created, err := s.repo.CreateReminder(ctx, reminder)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create reminder")
		return nil, fmt.Errorf("failed to create reminder: %v", err)
	}
	return created, nil
}

// GetReminder retrieves a reminder by its ID.
func (s *ReminderService) GetReminder(ctx context.Context, id string) (*models.Reminder, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder ID: %v", err)
	}

	reminder, err := s.repo.GetReminderByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %v", err)
	}
	return reminder, nil
}

// GetReminders retrieves all reminders of a user.
func (s *ReminderService) GetReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	return s.repo.GetReminders(ctx, userID)
}

// GetDueReminders returns reminders that should fire at the given time.
func (s *ReminderService) GetDueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	return s.repo.GetDueReminders(ctx, now)
}

// MarkFired records that a reminder fired and advances repeating reminders.
func (s *ReminderService) MarkFired(ctx context.Context, reminder *models.Reminder, firedAt time.Time) error {
	return s.repo.MarkFired(ctx, reminder, firedAt)
}

// UpdateReminder updates an existing reminder.
func (s *ReminderService) UpdateReminder(ctx context.Context, id string, updated *models.Reminder) (*models.Reminder, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder ID: %v", err)
	}

	existing, err := s.repo.GetReminderByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("reminder not found: %v", err)
	}

	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	reminder, err := s.repo.UpdateReminder(ctx, objID, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %v", err)
	}
	return reminder, nil
}

// DeleteReminder removes a reminder.
func (s *ReminderService) DeleteReminder(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid reminder ID: %v", err)
	}
	return s.repo.DeleteReminder(ctx, objID)
}
