package repository

import (
	"errors"

	"github.com/remitrack/internal/models"

	"gorm.io/gorm"
)

// ImageRepository is the remision image data access interface.
type ImageRepository interface {
	GetByID(id uint) (*models.RemisionImage, error)
	ListByRemision(remisionID uint) ([]models.RemisionImage, error)
	Create(image *models.RemisionImage) error
	UpdateDescription(id uint, description string) error
	Delete(id uint) (int64, error)
}

// GormImageRepository is the GORM implementation.
type GormImageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates an image repository.
func NewImageRepository(db *gorm.DB) *GormImageRepository {
	return &GormImageRepository{db: db}
}

// GetByID returns one image record or nil when missing.
func (r *GormImageRepository) GetByID(id uint) (*models.RemisionImage, error) {
	var image models.RemisionImage
	if err := r.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// ListByRemision returns a remision's images, newest first.
func (r *GormImageRepository) ListByRemision(remisionID uint) ([]models.RemisionImage, error) {
	var images []models.RemisionImage
	err := r.db.
		Where("remision_id = ?", remisionID).
		Order("created_at DESC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Create inserts an image record.
func (r *GormImageRepository) Create(image *models.RemisionImage) error {
	return r.db.Create(image).Error
}

// UpdateDescription sets the description column only.
func (r *GormImageRepository) UpdateDescription(id uint, description string) error {
	return r.db.Model(&models.RemisionImage{}).Where("id = ?", id).
		Update("description", description).Error
}

// Delete removes an image record by id and reports affected rows.
func (r *GormImageRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.RemisionImage{}, id)
	return result.RowsAffected, result.Error
}
