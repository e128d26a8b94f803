package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/habits"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HabitHandler handles HTTP requests related to habits.
type HabitHandler struct {
	Service         *services.HabitService
	ActivityService *services.ActivityService
}

// NewHabitHandler creates a new instance of HabitHandler.
func NewHabitHandler(habitService *services.HabitService, activityService *services.ActivityService) *HabitHandler {
	return &HabitHandler{
		Service:         habitService,
		ActivityService: activityService,
	}
}

// CreateHabitHandler handles the creation of a new habit.
func (h *HabitHandler) CreateHabitHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized access attempt during habit creation")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var habit models.Habit
	if err := json.NewDecoder(r.Body).Decode(&habit); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during habit creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Failed to convert user ID")
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}
	habit.UserID = userID

	created, err := h.Service.CreateHabit(r.Context(), &habit)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create habit")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_ = h.ActivityService.LogActivity(r.Context(), userID, "habit_created", created.ID, fmt.Sprintf("Created habit: %s", created.Name))

	logrus.WithFields(logrus.Fields{
		"userID":  claims.UserID,
		"habitID": created.ID.Hex(),
	}).Info("Habit successfully created")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// GetHabitHandler handles fetching a single habit by its ID.
func (h *HabitHandler) GetHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	habit, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil || habit == nil {
		logrus.WithField("habitID", habitID).Warn("Habit not found")
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}

	if habit.UserID.Hex() != claims.UserID {
		logrus.WithFields(logrus.Fields{
			"userID":  claims.UserID,
			"habitID": habitID,
		}).Warn("Forbidden: User tried to access another user's habit")
		http.Error(w, "Forbidden: You can only view your own habits", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(habit)
}

// GetHabitsHandler handles fetching all habits of the logged-in user.
func (h *HabitHandler) GetHabitsHandler(w http.ResponseWriter, r *http.Request) {
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

	habitList, err := h.Service.GetHabits(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to retrieve user habits")
		http.Error(w, "Failed to retrieve habits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(habitList)
}

// UpdateHabitHandler handles updating an existing habit's settings.
func (h *HabitHandler) UpdateHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]
	log := logrus.WithField("habitID", habitID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil || existing == nil {
		log.Warn("Habit not found during update")
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}

	if existing.UserID.Hex() != claims.UserID {
		log.Warn("Forbidden: Update attempt by non-owner")
		http.Error(w, "Forbidden: You can only update your own habits", http.StatusForbidden)
		return
	}

	var updated models.Habit
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		log.WithError(err).Warn("Invalid update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	habit, err := h.Service.UpdateHabit(r.Context(), habitID, &updated)
	if err != nil {
		log.WithError(err).Error("Failed to update habit")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Info("Habit successfully updated")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(habit)
}

// DeleteHabitHandler handles deleting a habit by its ID.
func (h *HabitHandler) DeleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]
	log := logrus.WithField("habitID", habitID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	habit, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil || habit == nil {
		log.Warn("Habit not found or fetch failed")
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}

	if habit.UserID.Hex() != claims.UserID {
		log.Warn("Forbidden: User tried to delete another user's habit")
		http.Error(w, "Forbidden: You can only delete your own habits", http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteHabit(r.Context(), habitID); err != nil {
		log.WithError(err).Error("Failed to delete habit")
		http.Error(w, "Failed to delete habit", http.StatusInternalServerError)
		return
	}

	_ = h.ActivityService.LogActivity(r.Context(), habit.UserID, "habit_deleted", habit.ID, fmt.Sprintf("Deleted habit: %s", habit.Name))

	log.Info("Habit deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// RecordCompletionHandler handles marking a habit done (or undone) for a date.
func (h *HabitHandler) RecordCompletionHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]
	log := logrus.WithField("habitID", habitID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	habit, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil || habit == nil {
		log.Warn("Habit not found")
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}

	if habit.UserID.Hex() != claims.UserID {
		log.Warn("Forbidden: Completion attempt by non-owner")
		http.Error(w, "Forbidden: You can only track your own habits", http.StatusForbidden)
		return
	}

	var payload struct {
		Date      string `json:"date"`
		Completed bool   `json:"completed"`
		Value     int    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Invalid completion payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	today := time.Now()
	if payload.Date == "" {
		payload.Date = today.Format(habits.DateLayout)
	}

	updated, err := h.Service.RecordCompletion(r.Context(), habitID, payload.Date, payload.Completed, payload.Value, today)
	if err != nil {
		if errors.Is(err, habits.ErrInvalidDate) || errors.Is(err, habits.ErrInvalidValue) {
			log.WithError(err).Warn("Completion rejected by validation")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to record completion")
		http.Error(w, "Failed to record completion", http.StatusInternalServerError)
		return
	}

	_ = h.ActivityService.LogActivity(r.Context(), updated.UserID, "habit_completed", updated.ID, fmt.Sprintf("Logged completion for habit: %s", updated.Name))

	log.WithField("streak", updated.CurrentStreak).Info("Completion recorded successfully")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// displayTarget rounds a period target to the nearest whole number for the
// response; the engine keeps fractional targets (e.g. a monthly habit's week
// window) internally.
func displayTarget(target float64) int {
	return int(math.Round(target))
}

// GetProgressHandler returns rolling progress for every visible period of the habit.
func (h *HabitHandler) GetProgressHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]
	log := logrus.WithField("habitID", habitID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	habit, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil || habit == nil {
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}
	if habit.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	progress, visible, err := h.Service.Progress(r.Context(), habitID, time.Now())
	if err != nil {
		log.WithError(err).Error("Failed to compute progress")
		http.Error(w, "Failed to compute progress", http.StatusInternalServerError)
		return
	}

	// Round targets for display; the engine keeps the monthly week target fractional.
	type periodView struct {
		Progress int `json:"progress"`
		Target   int `json:"target"`
	}
	view := make(map[string]periodView, len(visible))
	for _, p := range visible {
		pp := progress[p]
		view[string(p)] = periodView{
			Progress: pp.Progress,
			Target:   displayTarget(pp.Target),
		}
	}

	response := map[string]interface{}{
		"periods":         view,
		"visible_periods": visible,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetStreaksHandler returns the habit's stored streak counters.
func (h *HabitHandler) GetStreaksHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	habit, err := h.Service.GetHabit(r.Context(), habitID)
	if err != nil || habit == nil {
		http.Error(w, "Habit not found", http.StatusNotFound)
		return
	}
	if habit.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"current_streak": habit.CurrentStreak,
		"longest_streak": habit.LongestStreak,
	})
}

// AdminGetAllHabitsHandler lists every habit (admin only).
func (h *HabitHandler) AdminGetAllHabitsHandler(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	var limit int64 = 100
	if limitParam != "" {
		if parsed, err := strconv.ParseInt(limitParam, 10, 64); err == nil {
			limit = parsed
		}
	}

	habitList, err := h.Service.GetAllHabits(r.Context(), limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch all habits")
		http.Error(w, "Failed to fetch habits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(habitList)
}
