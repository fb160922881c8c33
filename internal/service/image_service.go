package service

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/remitrack/internal/logger"
	"github.com/remitrack/internal/models"
	"github.com/remitrack/internal/queue"
	"github.com/remitrack/internal/repository"
)

// ImageService manages the evidence photos attached to a remision.
// Records are the source of truth; file cleanup after a delete is
// best effort and never blocks the operation.
type ImageService struct {
	imageRepo    repository.ImageRepository
	remisionRepo repository.RemisionRepository
	upload       *UploadService
	queueClient  *queue.Client
}

// NewImageService creates the image service.
func NewImageService(
	imageRepo repository.ImageRepository,
	remisionRepo repository.RemisionRepository,
	upload *UploadService,
	queueClient *queue.Client,
) *ImageService {
	return &ImageService{
		imageRepo:    imageRepo,
		remisionRepo: remisionRepo,
		upload:       upload,
		queueClient:  queueClient,
	}
}

// Upload stores the photo and records it against the remision.
func (s *ImageService) Upload(remisionID uint, file *multipart.FileHeader, description string) (*models.RemisionImage, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	remision, err := s.remisionRepo.GetByID(remisionID)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}

	url, err := s.upload.SaveRemisionImage(file, remisionID)
	if err != nil {
		return nil, err
	}

	image := &models.RemisionImage{
		RemisionID:  remisionID,
		ImageURL:    url,
		ImageName:   file.Filename,
		Description: strings.TrimSpace(description),
	}
	if err := s.imageRepo.Create(image); err != nil {
		// The record is authoritative, drop the orphan file right away.
		if cleanupErr := s.upload.RemoveFileForURL(url); cleanupErr != nil {
			logger.Warnw("image_orphan_cleanup_failed", "image_url", url, "error", cleanupErr)
		}
		return nil, err
	}
	return image, nil
}

// ListByRemision returns a remision's photos, newest first.
func (s *ImageService) ListByRemision(remisionID uint) ([]models.RemisionImage, error) {
	remision, err := s.remisionRepo.GetByID(remisionID)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}
	return s.imageRepo.ListByRemision(remisionID)
}

// UpdateDescription replaces a photo's caption.
func (s *ImageService) UpdateDescription(imageID uint, description string) (*models.RemisionImage, error) {
	image, err := s.imageRepo.GetByID(imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrNotFound
	}
	trimmed := strings.TrimSpace(description)
	if err := s.imageRepo.UpdateDescription(imageID, trimmed); err != nil {
		return nil, err
	}
	image.Description = trimmed
	return image, nil
}

// Delete removes the record, then schedules the file removal. A
// failed file removal leaves a stray file on disk, never a dangling
// record.
func (s *ImageService) Delete(imageID uint) error {
	image, err := s.imageRepo.GetByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrNotFound
	}

	rows, err := s.imageRepo.Delete(imageID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.scheduleFileCleanup(image.ImageURL)
	return nil
}

// RemoveFile deletes the stored file behind a public URL. Called by
// the queue worker.
func (s *ImageService) RemoveFile(imageURL string) error {
	return s.upload.RemoveFileForURL(imageURL)
}

func (s *ImageService) scheduleFileCleanup(imageURL string) {
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueImageFileCleanup(queue.ImageFileCleanupPayload{ImageURL: imageURL})
		if err == nil {
			return
		}
		logger.Warnw("image_cleanup_enqueue_failed", "image_url", imageURL, "error", err)
	}
	if err := s.RemoveFile(imageURL); err != nil {
		logger.Warnw("image_file_remove_failed", "image_url", imageURL, "error", err)
	}
}
