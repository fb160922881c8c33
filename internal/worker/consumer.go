package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/remitrack/internal/logger"
	"github.com/remitrack/internal/provider"
	"github.com/remitrack/internal/queue"
	"github.com/remitrack/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles the async tasks the HTTP side enqueues.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer over the shared container.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskRemisionRecountPiezas, c.handleRemisionRecount)
	mux.HandleFunc(queue.TaskImageFileCleanup, c.handleImageFileCleanup)
}

func (c *Consumer) handleRemisionRecount(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_remision_recount_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RemisionRecountPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_remision_recount_unmarshal_failed", "error", err)
		return err
	}
	if payload.RemisionID == 0 {
		logger.Debugw("worker_remision_recount_skip_invalid_payload", "remision_id", payload.RemisionID)
		return nil
	}
	if err := c.PiezaService.RecountPiezas(payload.RemisionID); err != nil {
		logger.Warnw("worker_remision_recount_failed", "remision_id", payload.RemisionID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleImageFileCleanup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_image_cleanup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ImageFileCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_image_cleanup_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.ImageURL) == "" {
		logger.Debugw("worker_image_cleanup_skip_empty_url")
		return nil
	}
	if err := c.ImageService.RemoveFile(payload.ImageURL); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			logger.Debugw("worker_image_cleanup_skip_bad_url", "image_url", payload.ImageURL)
			return nil
		}
		logger.Warnw("worker_image_cleanup_failed", "image_url", payload.ImageURL, "error", err)
		return err
	}
	return nil
}
