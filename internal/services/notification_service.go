package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// CreateNotification logs a new notification for a user
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Read:     false,
		TargetID: targetID,
	}
	return s.repo.CreateNotification(ctx, notif)
}

// GetUserNotifications returns all notifications for a user
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkNotificationAsRead sets the "read" status of a notification to true
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, notifID)
}

// DeleteNotification deletes a specific notification
func (s *NotificationService) DeleteNotification(ctx context.Context, notifID primitive.ObjectID) error {
	return s.repo.DeleteNotification(ctx, notifID)
}

// DeleteExpiredNotifications is called by cron to drop notifications past
// their seven-day expiry.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	return s.repo.DeleteExpiredNotifications(ctx)
}

// CheckInactiveUsers nudges users who have not opened the app for three days.
func (s *NotificationService) CheckInactiveUsers(ctx context.Context) error {
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	now := time.Now()
	for _, user := range users {
		if user.LastActiveAt.IsZero() || now.Sub(user.LastActiveAt) >= 3*24*time.Hour {
			// Skip if they already got a recent inactivity notification
			existing, err := s.repo.GetLatestNotificationByType(ctx, user.ID, "user_inactive")
			if err == nil && existing != nil && now.Sub(existing.CreatedAt) < 3*24*time.Hour {
				continue
			}

			err = s.CreateNotification(ctx, user.ID, "user_inactive",
				"We miss you!",
				"You haven't been active for a few days. Come back and check in on your habits!",
				nil,
			)
			if err != nil {
				logrus.WithError(err).Warnf("Failed to send inactivity notification to user %s", user.ID.Hex())
			}
		}
	}

	return nil
}
