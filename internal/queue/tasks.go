package queue

import (
	"encoding/json"

	"github.com/remitrack/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskRemisionRecountPiezas recomputes a remision's cached piece total.
	TaskRemisionRecountPiezas = constants.TaskRemisionRecountPiezas
	// TaskImageFileCleanup removes an orphaned upload from disk.
	TaskImageFileCleanup = constants.TaskImageFileCleanup
)

// RemisionRecountPayload asks the worker to recompute the cached
// total_piezas of one remision from its rows.
type RemisionRecountPayload struct {
	RemisionID uint `json:"remision_id"`
}

// ImageFileCleanupPayload asks the worker to remove an uploaded file
// from disk after its database record is gone.
type ImageFileCleanupPayload struct {
	ImageURL string `json:"image_url"`
}

// NewRemisionRecountTask builds the recount task.
func NewRemisionRecountTask(payload RemisionRecountPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRemisionRecountPiezas, body), nil
}

// NewImageFileCleanupTask builds the file cleanup task.
func NewImageFileCleanupTask(payload ImageFileCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskImageFileCleanup, body), nil
}
