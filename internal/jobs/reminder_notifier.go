package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/sirupsen/logrus"
)

type ReminderNotifier struct {
	ReminderService     *services.ReminderService
	NotificationService *services.NotificationService
}

// NewReminderNotifier creates a new instance of ReminderNotifier
func NewReminderNotifier(reminderService *services.ReminderService, notifService *services.NotificationService) *ReminderNotifier {
	return &ReminderNotifier{
		ReminderService:     reminderService,
		NotificationService: notifService,
	}
}

// RunDueScan materializes a notification for every reminder whose fire time
// has passed and marks it fired. Repeating reminders get their next fire time
// advanced instead of being retired.
func (r *ReminderNotifier) RunDueScan(ctx context.Context) error {
	now := time.Now()

	due, err := r.ReminderService.GetDueReminders(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to fetch due reminders: %v", err)
	}

	for i := range due {
		reminder := &due[i]

		message := reminder.Message
		if message == "" {
			message = fmt.Sprintf("Reminder: %s", reminder.Title)
		}

		if err := r.NotificationService.CreateNotification(
			ctx,
			reminder.UserID,
			"reminder_due",
			reminder.Title,
			message,
			reminder.TargetID,
		); err != nil {
			logrus.WithError(err).WithField("reminderID", reminder.ID.Hex()).Error("Failed to create reminder notification")
			continue
		}

		if err := r.ReminderService.MarkFired(ctx, reminder, now); err != nil {
			logrus.WithError(err).WithField("reminderID", reminder.ID.Hex()).Error("Failed to mark reminder fired")
		}
	}

	if len(due) > 0 {
		logrus.Infof("Reminder scan completed: %d fired", len(due))
	}
	return nil
}
