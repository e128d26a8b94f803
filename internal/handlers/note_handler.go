package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoteHandler handles HTTP requests related to notes.
type NoteHandler struct {
	Service         *services.NoteService
	ActivityService *services.ActivityService
}

// NewNoteHandler creates a new instance of NoteHandler.
func NewNoteHandler(noteService *services.NoteService, activityService *services.ActivityService) *NoteHandler {
	return &NoteHandler{
		Service:         noteService,
		ActivityService: activityService,
	}
}

// CreateNoteHandler handles the creation of a new note.
func (h *NoteHandler) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during note creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}
	note.UserID = userID

	created, err := h.Service.CreateNote(r.Context(), &note)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create note")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_ = h.ActivityService.LogActivity(r.Context(), userID, "note_created", created.ID, fmt.Sprintf("Created note: %s", created.Title))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// GetNoteHandler handles fetching a single note by its ID.
func (h *NoteHandler) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	noteID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	note, err := h.Service.GetNote(r.Context(), noteID)
	if err != nil || note == nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}

	if note.UserID.Hex() != claims.UserID {
		logrus.WithFields(logrus.Fields{
			"userID": claims.UserID,
			"noteID": noteID,
		}).Warn("Forbidden: User tried to access another user's note")
		http.Error(w, "Forbidden: You can only view your own notes", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(note)
}

// GetNotesHandler handles listing the logged-in user's notes with optional
// search and category query params.
func (h *NoteHandler) GetNotesHandler(w http.ResponseWriter, r *http.Request) {
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

	search := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	notes, err := h.Service.GetNotes(r.Context(), userID, search, category)
	if err != nil {
		logrus.WithError(err).Error("Failed to retrieve user notes")
		http.Error(w, "Failed to retrieve notes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notes)
}

// UpdateNoteHandler handles updating an existing note.
func (h *NoteHandler) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	noteID := vars["id"]
	log := logrus.WithField("noteID", noteID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetNote(r.Context(), noteID)
	if err != nil || existing == nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}

	if existing.UserID.Hex() != claims.UserID {
		log.Warn("Forbidden: Update attempt by non-owner")
		http.Error(w, "Forbidden: You can only update your own notes", http.StatusForbidden)
		return
	}

	var updated models.Note
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		log.WithError(err).Warn("Invalid update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	note, err := h.Service.UpdateNote(r.Context(), noteID, &updated)
	if err != nil {
		log.WithError(err).Error("Failed to update note")
		http.Error(w, "Failed to update note", http.StatusInternalServerError)
		return
	}

	log.Info("Note successfully updated")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(note)
}

// PinNoteHandler handles pinning/unpinning a note.
func (h *NoteHandler) PinNoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	noteID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	note, err := h.Service.GetNote(r.Context(), noteID)
	if err != nil || note == nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}
	if note.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var payload struct {
		Pinned bool `json:"pinned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.SetPinned(r.Context(), noteID, payload.Pinned); err != nil {
		logrus.WithError(err).Error("Failed to pin note")
		http.Error(w, "Failed to pin note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"pinned": payload.Pinned})
}

// DeleteNoteHandler handles deleting a note by its ID.
func (h *NoteHandler) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	noteID := vars["id"]
	log := logrus.WithField("noteID", noteID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	note, err := h.Service.GetNote(r.Context(), noteID)
	if err != nil || note == nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}
	if note.UserID.Hex() != claims.UserID {
		log.Warn("Forbidden: User tried to delete another user's note")
		http.Error(w, "Forbidden: You can only delete your own notes", http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteNote(r.Context(), noteID); err != nil {
		log.WithError(err).Error("Failed to delete note")
		http.Error(w, "Failed to delete note", http.StatusInternalServerError)
		return
	}

	_ = h.ActivityService.LogActivity(r.Context(), note.UserID, "note_deleted", note.ID, fmt.Sprintf("Deleted note: %s", note.Title))

	log.Info("Note deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
