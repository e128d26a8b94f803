package services

import (
	"testing"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRollupStatus_NoSubtasks(t *testing.T) {
	task := &models.Task{Title: "Pay rent", Status: "open"}
	rollupStatus(task)
	assert.Equal(t, "open", task.Status)
}

func TestRollupStatus_AllSubtasksDone(t *testing.T) {
	task := &models.Task{
		Title:  "Plan trip",
		Status: "open",
		Subtasks: []models.Subtask{
			{Title: "Book flights", Done: true},
			{Title: "Book hotel", Done: true},
		},
	}
	rollupStatus(task)
	assert.Equal(t, "completed", task.Status)
}

func TestRollupStatus_SomeSubtasksOpen(t *testing.T) {
	task := &models.Task{
		Title:  "Plan trip",
		Status: "completed",
		Subtasks: []models.Subtask{
			{Title: "Book flights", Done: true},
			{Title: "Book hotel", Done: false},
		},
	}
	rollupStatus(task)
	assert.Equal(t, "open", task.Status)
}
