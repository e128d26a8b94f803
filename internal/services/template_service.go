package services

import (
	"context"
	"fmt"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/repository"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateService encapsulates the business logic for templates.
type TemplateService struct {
	repo     *repository.TemplateRepository
	noteRepo *repository.NoteRepository
	taskRepo *repository.TaskRepository
}

// NewTemplateService creates a new instance of TemplateService.
func NewTemplateService(repo *repository.TemplateRepository, noteRepo *repository.NoteRepository, taskRepo *repository.TaskRepository) *TemplateService {
	return &TemplateService{
		repo:     repo,
		noteRepo: noteRepo,
		taskRepo: taskRepo,
	}
}

// CreateTemplate validates and stores a new template.
func (s *TemplateService) CreateTemplate(ctx context.Context, template *models.Template) (*models.Template, error) {
	if template.Name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	if template.Kind != "note" && template.Kind != "task" {
		return nil, fmt.Errorf("template kind must be \"note\" or \"task\"")
	}

	created, err := s.repo.CreateTemplate(ctx, template)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create template")
		return nil, fmt.Errorf("failed to create template: %v", err)
	}
	return created, nil
}

// GetTemplate retrieves a template by its ID.
func (s *TemplateService) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid template ID: %v", err)
	}

	template, err := s.repo.GetTemplateByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %v", err)
	}
	return template, nil
}

// GetTemplates retrieves all templates owned by a user.
func (s *TemplateService) GetTemplates(ctx context.Context, userID primitive.ObjectID) ([]models.Template, error) {
	return s.repo.GetTemplatesByUser(ctx, userID)
}

// GetPublicTemplates retrieves publicly shared templates.
func (s *TemplateService) GetPublicTemplates(ctx context.Context) ([]models.Template, error) {
	return s.repo.GetPublicTemplates(ctx)
}

// GetAllTemplates retrieves every template up to limit (admin use).
func (s *TemplateService) GetAllTemplates(ctx context.Context, limit int64) ([]models.Template, error) {
	return s.repo.GetAllTemplates(ctx, limit)
}

// Instantiate creates a note or task for the requester from a template.
// Private templates can only be instantiated by their owner.
func (s *TemplateService) Instantiate(ctx context.Context, templateID string, userID primitive.ObjectID) (interface{}, error) {
	template, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if !template.Public && template.UserID != userID {
		return nil, fmt.Errorf("template is private")
	}

	switch template.Kind {
	case "note":
		note := &models.Note{
			UserID:  userID,
			Title:   template.Title,
			Content: template.Content,
		}
		created, err := s.noteRepo.CreateNote(ctx, note)
		if err != nil {
			return nil, fmt.Errorf("failed to instantiate note template: %v", err)
		}
		return created, nil
	case "task":
		subtasks := make([]models.Subtask, len(template.Subtasks))
		for i, sub := range template.Subtasks {
			subtasks[i] = models.Subtask{Title: sub.Title}
		}
		task := &models.Task{
			UserID:   userID,
			Title:    template.Title,
			Status:   "open",
			Subtasks: subtasks,
		}
		created, err := s.taskRepo.CreateTask(ctx, task)
		if err != nil {
			return nil, fmt.Errorf("failed to instantiate task template: %v", err)
		}
		return created, nil
	default:
		return nil, fmt.Errorf("unknown template kind: %s", template.Kind)
	}
}

// DeleteTemplate removes a template if the requester owns it.
func (s *TemplateService) DeleteTemplate(ctx context.Context, id string, userID primitive.ObjectID) error {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return err
	}
	if template.UserID != userID {
		return fmt.Errorf("only the owner can delete a template")
	}
	return s.repo.DeleteTemplate(ctx, template.ID)
}
