package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateHandler handles HTTP requests related to templates.
type TemplateHandler struct {
	Service *services.TemplateService
}

// NewTemplateHandler creates a new instance of TemplateHandler.
func NewTemplateHandler(service *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{Service: service}
}

// CreateTemplateHandler handles the creation of a new template.
func (h *TemplateHandler) CreateTemplateHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var template models.Template
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during template creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}
	template.UserID = userID

	created, err := h.Service.CreateTemplate(r.Context(), &template)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create template")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// GetTemplatesHandler handles listing the logged-in user's templates.
func (h *TemplateHandler) GetTemplatesHandler(w http.ResponseWriter, r *http.Request) {
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

	templates, err := h.Service.GetTemplates(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to retrieve templates")
		http.Error(w, "Failed to retrieve templates", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templates)
}

// GetTemplateByIDHandler handles fetching a single template.
func (h *TemplateHandler) GetTemplateByIDHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templateID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	template, err := h.Service.GetTemplate(r.Context(), templateID)
	if err != nil || template == nil {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}

	if !template.Public && template.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: Template is private", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(template)
}

// GetPublicTemplatesHandler handles listing publicly shared templates.
func (h *TemplateHandler) GetPublicTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.GetPublicTemplates(r.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to retrieve public templates")
		http.Error(w, "Failed to retrieve templates", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templates)
}

// InstantiateTemplateHandler creates a note or task from a template.
func (h *TemplateHandler) InstantiateTemplateHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templateID := vars["id"]
	log := logrus.WithField("templateID", templateID)

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

	created, err := h.Service.Instantiate(r.Context(), templateID, userID)
	if err != nil {
		log.WithError(err).Warn("Failed to instantiate template")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Info("Template instantiated successfully")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// DeleteTemplateHandler handles deleting a template.
func (h *TemplateHandler) DeleteTemplateHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templateID := vars["id"]

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

	if err := h.Service.DeleteTemplate(r.Context(), templateID, userID); err != nil {
		logrus.WithError(err).Warn("Failed to delete template")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminGetAllTemplatesHandler lists every template (admin only).
func (h *TemplateHandler) AdminGetAllTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	var limit int64 = 50
	if limitParam != "" {
		if parsed, err := strconv.ParseInt(limitParam, 10, 64); err == nil {
			limit = parsed
		}
	}

	templates, err := h.Service.GetAllTemplates(r.Context(), limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch all templates")
		http.Error(w, "Failed to fetch templates", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templates)
}
