package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderHandler handles HTTP requests related to reminders.
type ReminderHandler struct {
	Service         *services.ReminderService
	ActivityService *services.ActivityService
}

// NewReminderHandler creates a new instance of ReminderHandler.
func NewReminderHandler(service *services.ReminderService, activityService *services.ActivityService) *ReminderHandler {
	return &ReminderHandler{Service: service, ActivityService: activityService}
}

// CreateReminderHandler handles the creation of a new reminder.
func (h *ReminderHandler) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var reminder models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&reminder); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}
	reminder.UserID = userID

	created, err := h.Service.CreateReminder(r.Context(), &reminder)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create reminder")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ActivityService.LogActivity(r.Context(), userID, "reminder_created", created.ID, "Scheduled reminder: "+created.Title); err != nil {
		logrus.WithError(err).Error("Failed to log reminder creation activity")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// GetRemindersHandler lists the logged-in user's reminders.
func (h *ReminderHandler) GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
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

	reminders, err := h.Service.GetReminders(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to retrieve reminders")
		http.Error(w, "Failed to retrieve reminders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}

// GetReminderByIDHandler fetches a single reminder.
func (h *ReminderHandler) GetReminderByIDHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reminderID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reminder, err := h.Service.GetReminder(r.Context(), reminderID)
	if err != nil || reminder == nil {
		http.Error(w, "Reminder not found", http.StatusNotFound)
		return
	}

	if reminder.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: You can only view your own reminders", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminder)
}

// UpdateReminderHandler updates an existing reminder.
func (h *ReminderHandler) UpdateReminderHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reminderID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetReminder(r.Context(), reminderID)
	if err != nil || existing == nil {
		http.Error(w, "Reminder not found", http.StatusNotFound)
		return
	}

	if existing.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: You can only update your own reminders", http.StatusForbidden)
		return
	}

	var updated models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	result, err := h.Service.UpdateReminder(r.Context(), reminderID, &updated)
	if err != nil {
		logrus.WithError(err).Warn("Failed to update reminder")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// DeleteReminderHandler deletes a reminder.
func (h *ReminderHandler) DeleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reminderID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetReminder(r.Context(), reminderID)
	if err != nil || existing == nil {
		http.Error(w, "Reminder not found", http.StatusNotFound)
		return
	}

	if existing.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: You can only delete your own reminders", http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteReminder(r.Context(), reminderID); err != nil {
		logrus.WithError(err).Error("Failed to delete reminder")
		http.Error(w, "Failed to delete reminder", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
