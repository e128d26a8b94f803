package services

import (
	"context"
	"fmt"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/repository"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoteService encapsulates the business logic for notes.
type NoteService struct {
	repo *repository.NoteRepository
}

// NewNoteService creates a new instance of NoteService.
func NewNoteService(repo *repository.NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// CreateNote validates and stores a new note.
func (s *NoteService) CreateNote(ctx context.Context, note *models.Note) (*models.Note, error) {
	if note.Title == "" && note.Content == "" {
		logger.Log.Warn("Empty note rejected during creation")
		return nil, fmt.Errorf("note must have a title or content")
	}

	created, err := s.repo.CreateNote(ctx, note)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create note")
		return nil, fmt.Errorf("failed to create note: %v", err)
	}
	return created, nil
}

// GetNote retrieves a note by its ID.
func (s *NoteService) GetNote(ctx context.Context, id string) (*models.Note, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid note ID: %v", err)
	}

	note, err := s.repo.GetNoteByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %v", err)
	}
	return note, nil
}

// GetNotes retrieves notes for a user with optional search and category filter.
func (s *NoteService) GetNotes(ctx context.Context, userID primitive.ObjectID, search, category string) ([]models.Note, error) {
	notes, err := s.repo.GetNotes(ctx, userID, search, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %v", err)
	}
	return notes, nil
}

// UpdateNote updates an existing note.
func (s *NoteService) UpdateNote(ctx context.Context, id string, updated *models.Note) (*models.Note, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid note ID: %v", err)
	}

	note, err := s.repo.UpdateNote(ctx, objID, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %v", err)
	}

	logger.Log.WithField("note_id", id).Info("Note updated successfully in service layer")
	return note, nil
}

// SetPinned pins or unpins a note.
func (s *NoteService) SetPinned(ctx context.Context, id string, pinned bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid note ID: %v", err)
	}
	return s.repo.SetPinned(ctx, objID, pinned)
}

// DeleteNote removes a note.
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid note ID: %v", err)
	}

	if err := s.repo.DeleteNote(ctx, objID); err != nil {
		return fmt.Errorf("failed to delete note: %v", err)
	}
	return nil
}
