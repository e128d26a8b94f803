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

// TaskService encapsulates the business logic for tasks.
type TaskService struct {
	repo *repository.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// rollupStatus marks the task completed when every subtask is done. Tasks
// without subtasks keep whatever status the caller set.
func rollupStatus(task *models.Task) {
	if len(task.Subtasks) == 0 {
		return
	}
	for _, sub := range task.Subtasks {
		if !sub.Done {
			task.Status = "open"
			return
		}
	}
	task.Status = "completed"
}

// CreateTask validates and stores a new task.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Title == "" {
		logger.Log.Warn("Task title is empty during creation")
		return nil, fmt.Errorf("task title is required")
	}
	if !task.DueDate.IsZero() && task.DueDate.Before(time.Now()) {
		return nil, fmt.Errorf("due date cannot be in the past")
	}

	task.Status = "open"
	rollupStatus(task)

	created, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create task")
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	return created, nil
}

// GetTask retrieves a task by its ID.
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID: %v", err)
	}

	task, err := s.repo.GetTaskByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %v", err)
	}
	return task, nil
}

// GetTasks retrieves tasks for a user with an optional status filter.
func (s *TaskService) GetTasks(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Task, error) {
	tasks, err := s.repo.GetTasks(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %v", err)
	}
	return tasks, nil
}

// GetAllTasks fetches every task in the system (admin use).
func (s *TaskService) GetAllTasks(ctx context.Context, limit int64) ([]models.Task, error) {
	tasks, err := s.repo.GetAllTasks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %v", err)
	}
	return tasks, nil
}

// UpdateTask updates an existing task, re-deriving its completion status
// from its subtasks.
func (s *TaskService) UpdateTask(ctx context.Context, id string, updated *models.Task) (*models.Task, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID: %v", err)
	}

	rollupStatus(updated)

	task, err := s.repo.UpdateTask(ctx, objID, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}

	logger.Log.WithField("task_id", id).Info("Task updated successfully in service layer")
	return task, nil
}

// CompleteTask marks a task (and all its subtasks) completed.
func (s *TaskService) CompleteTask(ctx context.Context, id string) (*models.Task, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID: %v", err)
	}

	task, err := s.repo.GetTaskByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("task not found: %v", err)
	}

	for i := range task.Subtasks {
		task.Subtasks[i].Done = true
	}
	task.Status = "completed"

	return s.repo.UpdateTask(ctx, objID, task)
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid task ID: %v", err)
	}

	if err := s.repo.DeleteTask(ctx, objID); err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	return nil
}
