package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TemplateRepository handles database operations related to templates.
type TemplateRepository struct {
	collection *mongo.Collection
}

// NewTemplateRepository creates a new instance of TemplateRepository.
func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{
		collection: db.Collection("templates"),
	}
}

// CreateTemplate inserts a new template.
func (r *TemplateRepository) CreateTemplate(ctx context.Context, template *models.Template) (*models.Template, error) {
	template.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, template)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert template")
		return nil, fmt.Errorf("failed to insert template: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	template.ID = insertedID

	logger.Log.WithField("template_id", template.ID.Hex()).Info("Template created successfully")
	return template, nil
}

// GetTemplateByID fetches a template by its ID.
func (r *TemplateRepository) GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.Template, error) {
	var template models.Template
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err != nil {
		logger.Log.WithError(err).WithField("template_id", id.Hex()).Warn("Failed to find template by ID")
		return nil, fmt.Errorf("failed to find template: %v", err)
	}
	return &template, nil
}

// GetTemplatesByUser fetches all templates owned by a user.
func (r *TemplateRepository) GetTemplatesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Template, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %v", err)
	}
	defer cursor.Close(ctx)

	var templates []models.Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %v", err)
	}
	return templates, nil
}

// GetPublicTemplates fetches templates shared publicly by any user.
func (r *TemplateRepository) GetPublicTemplates(ctx context.Context) ([]models.Template, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"public": true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public templates: %v", err)
	}
	defer cursor.Close(ctx)

	var templates []models.Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %v", err)
	}
	return templates, nil
}

// GetAllTemplates fetches every template with a limit (admin use).
func (r *TemplateRepository) GetAllTemplates(ctx context.Context, limit int64) ([]models.Template, error) {
	findOptions := options.Find().SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all templates: %v", err)
	}
	defer cursor.Close(ctx)

	var templates []models.Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %v", err)
	}
	return templates, nil
}

// DeleteTemplate deletes a template by its ID.
func (r *TemplateRepository) DeleteTemplate(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("template_id", id.Hex()).Error("Failed to delete template")
		return fmt.Errorf("failed to delete template: %v", err)
	}
	return nil
}
