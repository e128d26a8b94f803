package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskHandler handles HTTP requests related to tasks.
type TaskHandler struct {
	Service         *services.TaskService
	ActivityService *services.ActivityService
}

// NewTaskHandler creates a new instance of TaskHandler.
func NewTaskHandler(taskService *services.TaskService, activityService *services.ActivityService) *TaskHandler {
	return &TaskHandler{
		Service:         taskService,
		ActivityService: activityService,
	}
}

// CreateTaskHandler handles the creation of a new task.
func (h *TaskHandler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during task creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}
	task.UserID = userID

	created, err := h.Service.CreateTask(r.Context(), &task)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create task")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_ = h.ActivityService.LogActivity(r.Context(), userID, "task_created", created.ID, fmt.Sprintf("Created task: %s", created.Title))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// GetTaskHandler handles fetching a single task by its ID.
func (h *TaskHandler) GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := h.Service.GetTask(r.Context(), taskID)
	if err != nil || task == nil {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}

	if task.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: You can only view your own tasks", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// GetTasksHandler handles listing the logged-in user's tasks.
func (h *TaskHandler) GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	status := r.URL.Query().Get("status")

	tasks, err := h.Service.GetTasks(r.Context(), userID, status)
	if err != nil {
		logrus.WithError(err).Error("Failed to retrieve user tasks")
		http.Error(w, "Failed to retrieve tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// UpdateTaskHandler handles updating an existing task.
func (h *TaskHandler) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]
	log := logrus.WithField("taskID", taskID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetTask(r.Context(), taskID)
	if err != nil || existing == nil {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}

	if existing.UserID.Hex() != claims.UserID {
		log.Warn("Forbidden: Update attempt by non-owner")
		http.Error(w, "Forbidden: You can only update your own tasks", http.StatusForbidden)
		return
	}

	var updated models.Task
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		log.WithError(err).Warn("Invalid update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	task, err := h.Service.UpdateTask(r.Context(), taskID, &updated)
	if err != nil {
		log.WithError(err).Error("Failed to update task")
		http.Error(w, "Failed to update task", http.StatusInternalServerError)
		return
	}

	log.Info("Task successfully updated")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// CompleteTaskHandler marks a task and all its subtasks completed.
func (h *TaskHandler) CompleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]
	log := logrus.WithField("taskID", taskID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetTask(r.Context(), taskID)
	if err != nil || existing == nil {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	if existing.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	task, err := h.Service.CompleteTask(r.Context(), taskID)
	if err != nil {
		log.WithError(err).Error("Failed to complete task")
		http.Error(w, "Failed to complete task", http.StatusInternalServerError)
		return
	}

	_ = h.ActivityService.LogActivity(r.Context(), task.UserID, "task_completed", task.ID, fmt.Sprintf("Completed task: %s", task.Title))

	log.Info("Task completed successfully")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// DeleteTaskHandler handles deleting a task by its ID.
func (h *TaskHandler) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]
	log := logrus.WithField("taskID", taskID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := h.Service.GetTask(r.Context(), taskID)
	if err != nil || task == nil {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	if task.UserID.Hex() != claims.UserID {
		log.Warn("Forbidden: User tried to delete another user's task")
		http.Error(w, "Forbidden: You can only delete your own tasks", http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteTask(r.Context(), taskID); err != nil {
		log.WithError(err).Error("Failed to delete task")
		http.Error(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}

	log.Info("Task deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// AdminGetAllTasksHandler lists every task (admin only).
func (h *TaskHandler) AdminGetAllTasksHandler(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	var limit int64 = 100
	if limitParam != "" {
		if parsed, err := strconv.ParseInt(limitParam, 10, 64); err == nil {
			limit = parsed
		}
	}

	tasks, err := h.Service.GetAllTasks(r.Context(), limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch all tasks")
		http.Error(w, "Failed to fetch tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}
