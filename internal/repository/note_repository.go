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

// NoteRepository handles database operations related to notes.
type NoteRepository struct {
	collection *mongo.Collection
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{
		collection: db.Collection("notes"),
	}
}

// CreateNote inserts a new note.
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) (*models.Note, error) {
	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, note)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert note")
		return nil, fmt.Errorf("failed to insert note: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	note.ID = insertedID

	logger.Log.WithField("note_id", note.ID.Hex()).Info("Note created successfully")
	return note, nil
}

// GetNoteByID fetches a note by its ID.
func (r *NoteRepository) GetNoteByID(ctx context.Context, id primitive.ObjectID) (*models.Note, error) {
	var note models.Note
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		logger.Log.WithError(err).WithField("note_id", id.Hex()).Warn("Failed to find note by ID")
		return nil, fmt.Errorf("failed to find note: %v", err)
	}
	return &note, nil
}

// GetNotes fetches a user's notes, newest first, pinned notes leading.
// Optional search text matches title or content case-insensitively; optional
// category narrows further.
func (r *NoteRepository) GetNotes(ctx context.Context, userID primitive.ObjectID, search, category string) ([]models.Note, error) {
	filter := bson.M{"user_id": userID}
	if category != "" {
		filter["category"] = category
	}
	if search != "" {
		regex := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"content": regex},
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "pinned", Value: -1},
		{Key: "updated_at", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch notes")
		return nil, fmt.Errorf("failed to fetch notes: %v", err)
	}
	defer cursor.Close(ctx)

	var notes []models.Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %v", err)
	}
	return notes, nil
}

// UpdateNote replaces the stored note document.
func (r *NoteRepository) UpdateNote(ctx context.Context, id primitive.ObjectID, note *models.Note) (*models.Note, error) {
	note.UpdatedAt = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": note})
	if err != nil {
		logger.Log.WithError(err).WithField("note_id", id.Hex()).Error("Failed to update note")
		return nil, fmt.Errorf("failed to update note: %v", err)
	}
	return note, nil
}

// SetPinned toggles the pinned flag on a note.
func (r *NoteRepository) SetPinned(ctx context.Context, id primitive.ObjectID, pinned bool) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"pinned":     pinned,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to set pinned: %v", err)
	}
	return nil
}

// DeleteNote deletes a note by its ID.
func (r *NoteRepository) DeleteNote(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("note_id", id.Hex()).Error("Failed to delete note")
		return fmt.Errorf("failed to delete note: %v", err)
	}

	logger.Log.WithField("note_id", id.Hex()).Info("Note deleted successfully")
	return nil
}
