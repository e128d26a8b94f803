package cron

import (
	"context"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/jobs"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func StartCronJobs(notificationService *services.NotificationService, reminderNotifier *jobs.ReminderNotifier) {
	c := cron.New()

	// Due reminder scan
	c.AddFunc("* * * * *", func() {
		err := reminderNotifier.RunDueScan(context.Background())
		if err != nil {
			logrus.WithError(err).Error("Reminder due scan failed")
		}
	})

	// Expired notification cleanup
	c.AddFunc("@hourly", func() {
		err := notificationService.DeleteExpiredNotifications(context.Background())
		if err != nil {
			logrus.WithError(err).Error("DeleteExpiredNotifications failed")
		}
	})

	// Inactive user reminders
	c.AddFunc("0 0 * * *", func() {
		err := notificationService.CheckInactiveUsers(context.Background())
		if err != nil {
			logrus.WithError(err).Error("CheckInactiveUsers failed")
		}
	})

	c.Start()
}
