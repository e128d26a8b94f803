package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/habits"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/repository"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// streakMilestoneInterval is the cadence (in consecutive days) at which a
// streak milestone notification is produced.
const streakMilestoneInterval = 7

// HabitService encapsulates the business logic for habits. Completion
// recording is its central operation: ledger upsert, streak recompute and
// persistence happen inside one service call so the stored derived fields
// can never drift from the ledger.
type HabitService struct {
	repo                *repository.HabitRepository
	NotificationService *NotificationService
}

// NewHabitService creates a new instance of HabitService.
func NewHabitService(repo *repository.HabitRepository, notificationService *NotificationService) *HabitService {
	return &HabitService{
		repo:                repo,
		NotificationService: notificationService,
	}
}

// CreateHabit validates and stores a new habit with an empty ledger.
func (s *HabitService) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	if habit.Name == "" {
		logger.Log.Warn("Habit name is empty during creation")
		return nil, fmt.Errorf("habit name is required")
	}
	if !models.AllowedGoalTypes[habit.GoalType] {
		return nil, fmt.Errorf("invalid goal type: %s", habit.GoalType)
	}
	if !models.AllowedFrequencies[habit.Frequency] {
		return nil, fmt.Errorf("invalid frequency: %s", habit.Frequency)
	}
	if habit.Frequency == models.FrequencyCustom && habit.IntervalDays <= 0 {
		return nil, fmt.Errorf("custom frequency requires a positive interval")
	}
	if habit.GoalType != models.GoalTypeYesNo && habit.Target <= 0 {
		return nil, fmt.Errorf("measurable habits require a positive target")
	}

	habit.Completions = []models.Completion{}
	habit.CurrentStreak = 0
	habit.LongestStreak = 0

	created, err := s.repo.CreateHabit(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create habit")
		return nil, fmt.Errorf("failed to create habit: %v", err)
	}

	logger.Log.WithField("habit_id", created.ID.Hex()).Info("Habit created in service layer")
	return created, nil
}

// GetHabit retrieves a habit by its ID.
func (s *HabitService) GetHabit(ctx context.Context, id string) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("habit_id", id).WithError(err).Warn("Invalid habit ID in GetHabit")
		return nil, fmt.Errorf("invalid habit ID: %v", err)
	}

	habit, err := s.repo.GetHabitByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %v", err)
	}
	return habit, nil
}

// GetHabits retrieves all habits of a user.
func (s *HabitService) GetHabits(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	habitList, err := s.repo.GetHabits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch habits: %v", err)
	}
	return habitList, nil
}

// UpdateHabit updates a habit's descriptive fields. The completion ledger and
// derived streaks are never replaced through this path.
func (s *HabitService) UpdateHabit(ctx context.Context, id string, updated *models.Habit) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid habit ID: %v", err)
	}

	existing, err := s.repo.GetHabitByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("habit not found: %v", err)
	}

	if updated.GoalType != "" && !models.AllowedGoalTypes[updated.GoalType] {
		return nil, fmt.Errorf("invalid goal type: %s", updated.GoalType)
	}
	if updated.Frequency != "" && !models.AllowedFrequencies[updated.Frequency] {
		return nil, fmt.Errorf("invalid frequency: %s", updated.Frequency)
	}

	// Carry over everything the caller may not overwrite.
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.Completions = existing.Completions
	updated.CurrentStreak = existing.CurrentStreak
	updated.LongestStreak = existing.LongestStreak
	updated.CreatedAt = existing.CreatedAt

	habit, err := s.repo.UpdateHabit(ctx, objID, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update habit: %v", err)
	}

	logger.Log.WithField("habit_id", id).Info("Habit updated successfully in service layer")
	return habit, nil
}

// DeleteHabit removes a habit and its completions.
func (s *HabitService) DeleteHabit(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid habit ID: %v", err)
	}

	if err := s.repo.DeleteHabit(ctx, objID); err != nil {
		return fmt.Errorf("failed to delete habit: %v", err)
	}

	logger.Log.WithField("habit_id", id).Info("Habit deleted successfully in service layer")
	return nil
}

// RecordCompletion upserts a completion for the given date, recomputes the
// streaks and persists the habit in one unit of work. today anchors the
// streak walk and normally matches the completion date.
func (s *HabitService) RecordCompletion(ctx context.Context, id string, date string, completed bool, value int, today time.Time) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid habit ID: %v", err)
	}

	habit, err := s.repo.GetHabitByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("habit not found: %v", err)
	}

	if habit.GoalType == models.GoalTypeYesNo {
		value = 0
	}

	prevStreak := habit.CurrentStreak

	if err := habits.UpsertCompletion(habit, date, completed, value); err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"habit_id": id,
			"date":     date,
		}).WithError(err).Warn("Completion upsert rejected")
		return nil, err
	}
	habits.RecomputeStreaks(habit, today)

	persisted, err := s.repo.UpdateHabit(ctx, objID, habit)
	if err != nil {
		return nil, fmt.Errorf("failed to persist completion: %v", err)
	}

	// Milestone every 7 consecutive days, only on crossing it.
	if persisted.CurrentStreak > prevStreak &&
		persisted.CurrentStreak > 0 &&
		persisted.CurrentStreak%streakMilestoneInterval == 0 {
		streak := persisted.CurrentStreak
		go func() {
			err := s.NotificationService.CreateNotification(
				context.Background(),
				persisted.UserID,
				"streak_milestone",
				"🔥 Streak Milestone",
				fmt.Sprintf("You're on a %d-day streak for \"%s\"! Keep it up!", streak, persisted.Name),
				&persisted.ID,
			)
			if err != nil {
				logrus.WithError(err).Warn("Failed to send streak milestone notification")
			}
		}()
	}

	logrus.WithFields(logrus.Fields{
		"habit_id": id,
		"date":     date,
		"streak":   persisted.CurrentStreak,
	}).Info("Completion recorded")
	return persisted, nil
}

// GetAllHabits fetches every habit in the system (admin use).
func (s *HabitService) GetAllHabits(ctx context.Context, limit int64) ([]models.Habit, error) {
	all, err := s.repo.GetAllHabits(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch habits: %v", err)
	}
	return all, nil
}

// Progress returns the rolling progress of every visible period for a habit.
func (s *HabitService) Progress(ctx context.Context, id string, today time.Time) (map[habits.Period]habits.PeriodProgress, []habits.Period, error) {
	habit, err := s.GetHabit(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	progress := habits.RollingProgress(habit, today)
	visible := habits.VisiblePeriods(habit.Frequency)
	return progress, visible, nil
}
