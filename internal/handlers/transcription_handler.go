package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TranscriptionHandler handles HTTP requests for voice-note transcription jobs.
type TranscriptionHandler struct {
	Service         *services.TranscriptionService
	ActivityService *services.ActivityService
	UploadDir       string
}

// NewTranscriptionHandler creates a new instance of TranscriptionHandler.
func NewTranscriptionHandler(service *services.TranscriptionService, activityService *services.ActivityService, uploadDir string) *TranscriptionHandler {
	return &TranscriptionHandler{
		Service:         service,
		ActivityService: activityService,
		UploadDir:       uploadDir,
	}
}

// UploadVoiceNoteHandler accepts a multipart audio upload and starts a
// transcription job for it.
func (h *TranscriptionHandler) UploadVoiceNoteHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(25 << 20); err != nil { // max ~25MB
		logrus.WithError(err).Warn("Rejected voice note upload")
		http.Error(w, "Invalid or too large upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), header.Filename)
	filePath := filepath.Join(h.UploadDir, fileName)

	out, err := h.createFile(filePath)
	if err != nil {
		logrus.WithError(err).Error("Failed to create upload file")
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		logrus.WithError(err).Error("Failed to write upload file")
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	job, err := h.Service.CreateJob(r.Context(), userID, header.Filename, filePath)
	if err != nil {
		logrus.WithError(err).Error("Failed to create transcription job")
		http.Error(w, "Failed to create transcription job", http.StatusInternalServerError)
		return
	}

	if err := h.ActivityService.LogActivity(r.Context(), userID, "transcription_started", job.ID, "Uploaded voice note: "+header.Filename); err != nil {
		logrus.WithError(err).Error("Failed to log transcription activity")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(job)
}

func (h *TranscriptionHandler) createFile(path string) (*os.File, error) {
	if _, err := os.Stat(h.UploadDir); os.IsNotExist(err) {
		os.MkdirAll(h.UploadDir, os.ModePerm)
	}
	return os.Create(path)
}

// GetJobsHandler lists the logged-in user's transcription jobs.
func (h *TranscriptionHandler) GetJobsHandler(w http.ResponseWriter, r *http.Request) {
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

	jobs, err := h.Service.GetJobs(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to retrieve transcription jobs")
		http.Error(w, "Failed to retrieve jobs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

// GetJobByIDHandler fetches one transcription job, including its transcript
// once completed.
func (h *TranscriptionHandler) GetJobByIDHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	job, err := h.Service.GetJob(r.Context(), jobID)
	if err != nil || job == nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	if job.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: You can only view your own jobs", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// SaveToNoteHandler turns a completed transcript into a note.
func (h *TranscriptionHandler) SaveToNoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID := vars["id"]

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

	note, err := h.Service.SaveToNote(r.Context(), jobID, userID)
	if err != nil {
		logrus.WithError(err).Warn("Failed to save transcript to note")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ActivityService.LogActivity(r.Context(), userID, "note_created", note.ID, "Saved transcript to note: "+note.Title); err != nil {
		logrus.WithError(err).Error("Failed to log transcript note activity")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(note)
}

// DeleteJobHandler removes a transcription job and its uploaded audio file.
func (h *TranscriptionHandler) DeleteJobHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID := vars["id"]

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

	if err := h.Service.DeleteJob(r.Context(), jobID, userID); err != nil {
		logrus.WithError(err).Warn("Failed to delete transcription job")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
