package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/repository"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TranscriptionEvent is a stage-transition message pushed to the owning
// client over the WebSocket feed.
type TranscriptionEvent struct {
	JobID      string `json:"job_id"`
	UserID     string `json:"user_id"`
	Status     string `json:"status"`
	Progress   int    `json:"progress"`
	Transcript string `json:"transcript,omitempty"`
	Error      string `json:"error,omitempty"`
}

// EventPublisher delivers transcription events to connected clients. The
// WebSocket hub implements it; the service never touches connection state.
type EventPublisher interface {
	PublishTranscription(event TranscriptionEvent)
}

// TranscriptionService manages voice-note transcription jobs. The actual
// speech-to-text work is delegated to an external provider; this service owns
// the job lifecycle and progress reporting.
type TranscriptionService struct {
	repo      *repository.TranscriptionRepository
	noteRepo  *repository.NoteRepository
	publisher EventPublisher
	apiURL    string
	client    *http.Client
}

// NewTranscriptionService creates a new instance of TranscriptionService.
func NewTranscriptionService(repo *repository.TranscriptionRepository, noteRepo *repository.NoteRepository, publisher EventPublisher, apiURL string) *TranscriptionService {
	return &TranscriptionService{
		repo:      repo,
		noteRepo:  noteRepo,
		publisher: publisher,
		apiURL:    apiURL,
		client:    &http.Client{Timeout: 5 * time.Minute},
	}
}

// CreateJob registers an uploaded voice note and starts processing it in the
// background. The returned job is already in the "uploaded" stage.
func (s *TranscriptionService) CreateJob(ctx context.Context, userID primitive.ObjectID, fileName, filePath string) (*models.TranscriptionJob, error) {
	job := &models.TranscriptionJob{
		UserID:   userID,
		FileName: fileName,
		FilePath: filePath,
		Status:   models.TranscriptionUploaded,
		Progress: 10,
	}

	created, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcription job: %v", err)
	}

	go s.process(created)

	return created, nil
}

// process walks a job through its stages, persisting and publishing each
// transition. It runs detached from the upload request.
func (s *TranscriptionService) process(job *models.TranscriptionJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log := logrus.WithField("job_id", job.ID.Hex())

	s.advance(ctx, job, models.TranscriptionQueued, 25, "", "")

	if s.apiURL == "" {
		log.Warn("No transcription provider configured")
		s.advance(ctx, job, models.TranscriptionFailed, 100, "", "transcription provider not configured")
		return
	}

	s.advance(ctx, job, models.TranscriptionProcessing, 50, "", "")

	transcript, err := s.callProvider(ctx, job)
	if err != nil {
		log.WithError(err).Error("Transcription provider call failed")
		s.advance(ctx, job, models.TranscriptionFailed, 100, "", err.Error())
		return
	}

	s.advance(ctx, job, models.TranscriptionCompleted, 100, transcript, "")
	log.Info("Transcription job completed")
}

// advance persists a stage transition and pushes it to the owning client.
func (s *TranscriptionService) advance(ctx context.Context, job *models.TranscriptionJob, status string, progress int, transcript, errMsg string) {
	if err := s.repo.UpdateJobStatus(ctx, job.ID, status, progress, transcript, errMsg); err != nil {
		logrus.WithError(err).WithField("job_id", job.ID.Hex()).Error("Failed to persist job stage")
	}
	job.Status = status
	job.Progress = progress

	if s.publisher != nil {
		s.publisher.PublishTranscription(TranscriptionEvent{
			JobID:      job.ID.Hex(),
			UserID:     job.UserID.Hex(),
			Status:     status,
			Progress:   progress,
			Transcript: transcript,
			Error:      errMsg,
		})
	}
}

// callProvider uploads the audio file to the external speech-to-text API and
// returns the transcript.
func (s *TranscriptionService) callProvider(ctx context.Context, job *models.TranscriptionJob) (string, error) {
	file, err := os.Open(job.FilePath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %v", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", job.FileName)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %v", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read audio file: %v", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build provider request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var result struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %v", err)
	}
	return result.Transcript, nil
}

// GetJob retrieves a transcription job by its ID.
func (s *TranscriptionService) GetJob(ctx context.Context, id string) (*models.TranscriptionJob, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid job ID: %v", err)
	}

	job, err := s.repo.GetJobByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transcription job: %v", err)
	}
	return job, nil
}

// GetJobs lists a user's transcription jobs.
func (s *TranscriptionService) GetJobs(ctx context.Context, userID primitive.ObjectID) ([]models.TranscriptionJob, error) {
	return s.repo.GetJobsByUser(ctx, userID)
}

// SaveToNote turns a completed transcript into a note for the job's owner.
func (s *TranscriptionService) SaveToNote(ctx context.Context, jobID string, userID primitive.ObjectID) (*models.Note, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, fmt.Errorf("job belongs to another user")
	}
	if job.Status != models.TranscriptionCompleted {
		return nil, fmt.Errorf("job is not completed")
	}

	note := &models.Note{
		UserID:  userID,
		Title:   fmt.Sprintf("Voice note %s", job.CreatedAt.Format("Jan 2 15:04")),
		Content: job.Transcript,
	}

	created, err := s.noteRepo.CreateNote(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to save transcript as note: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"job_id":  jobID,
		"note_id": created.ID.Hex(),
	}).Info("Transcript saved to note")
	return created, nil
}

// DeleteJob removes a transcription job and its stored audio file.
func (s *TranscriptionService) DeleteJob(ctx context.Context, id string, userID primitive.ObjectID) error {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if job.UserID != userID {
		return fmt.Errorf("job belongs to another user")
	}

	if err := s.repo.DeleteJob(ctx, job.ID); err != nil {
		return err
	}

	if job.FilePath != "" {
		if err := os.Remove(job.FilePath); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).Warn("Failed to remove audio file")
		}
	}
	return nil
}
