package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackHandler handles HTTP requests for feedback and beta signups.
type FeedbackHandler struct {
	Service *services.FeedbackService
}

// NewFeedbackHandler creates a new instance of FeedbackHandler.
func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{Service: service}
}

// SubmitFeedbackHandler accepts user feedback. Works for both anonymous
// and authenticated callers; when claims are present the feedback is
// attributed to the user.
func (h *FeedbackHandler) SubmitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var fb models.Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if claims := middleware.GetUserFromContext(r.Context()); claims != nil {
		if userID, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			fb.UserID = userID
			fb.Email = claims.Email
		}
	}

	created, err := h.Service.SubmitFeedback(r.Context(), &fb)
	if err != nil {
		logrus.WithError(err).Warn("Failed to submit feedback")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// BetaSignupHandler records an email address for the beta waitlist.
func (h *FeedbackHandler) BetaSignupHandler(w http.ResponseWriter, r *http.Request) {
	var signup models.BetaSignup
	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.SignupForBeta(r.Context(), &signup)
	if err != nil {
		logrus.WithError(err).Warn("Failed to record beta signup")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// AdminListFeedbackHandler lists submitted feedback (admin only).
func (h *FeedbackHandler) AdminListFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	var limit int64 = 100
	if limitParam != "" {
		if parsed, err := strconv.ParseInt(limitParam, 10, 64); err == nil {
			limit = parsed
		}
	}

	feedback, err := h.Service.ListFeedback(r.Context(), limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list feedback")
		http.Error(w, "Failed to retrieve feedback", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(feedback)
}

// AdminListBetaSignupsHandler lists beta waitlist entries (admin only).
func (h *FeedbackHandler) AdminListBetaSignupsHandler(w http.ResponseWriter, r *http.Request) {
	signups, err := h.Service.ListBetaSignups(r.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to list beta signups")
		http.Error(w, "Failed to retrieve beta signups", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(signups)
}
