package repository

import (
	"errors"

	"github.com/remitrack/internal/models"

	"gorm.io/gorm"
)

// PiezaRepository is the piece-entry data access interface. Lookups that
// miss return (nil, nil); the registry interprets a found row as a
// duplicate signal.
type PiezaRepository interface {
	GetByID(id uint) (*models.PiezaEmbarcada, error)
	FindByMarcaFolio(remisionID uint, marca, folio string) (*models.PiezaEmbarcada, error)
	FindOtherByMarcaFolio(remisionID uint, marca, folio string, excludeID uint) (*models.PiezaEmbarcada, error)
	ListByRemision(remisionID uint) ([]models.PiezaEmbarcada, error)
	SumCantidad(remisionID uint) (int, error)
	Create(pieza *models.PiezaEmbarcada) error
	Update(pieza *models.PiezaEmbarcada) error
	Delete(id uint) (int64, error)
}

// GormPiezaRepository is the GORM implementation.
type GormPiezaRepository struct {
	db *gorm.DB
}

// NewPiezaRepository creates a pieza repository.
func NewPiezaRepository(db *gorm.DB) *GormPiezaRepository {
	return &GormPiezaRepository{db: db}
}

// GetByID returns one pieza or nil when missing.
func (r *GormPiezaRepository) GetByID(id uint) (*models.PiezaEmbarcada, error) {
	var pieza models.PiezaEmbarcada
	if err := r.db.First(&pieza, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pieza, nil
}

// FindByMarcaFolio returns the pieza matching the exact (marca, folio) pair
// within one remision, or nil.
func (r *GormPiezaRepository) FindByMarcaFolio(remisionID uint, marca, folio string) (*models.PiezaEmbarcada, error) {
	var pieza models.PiezaEmbarcada
	err := r.db.
		Where("remision_id = ? AND marca = ? AND folio = ?", remisionID, marca, folio).
		First(&pieza).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pieza, nil
}

// FindOtherByMarcaFolio is FindByMarcaFolio excluding one entry id, used by
// the edit path so an entry never conflicts with itself.
func (r *GormPiezaRepository) FindOtherByMarcaFolio(remisionID uint, marca, folio string, excludeID uint) (*models.PiezaEmbarcada, error) {
	var pieza models.PiezaEmbarcada
	err := r.db.
		Where("remision_id = ? AND marca = ? AND folio = ? AND id <> ?", remisionID, marca, folio, excludeID).
		First(&pieza).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pieza, nil
}

// ListByRemision returns all piezas of a remision in registration order.
func (r *GormPiezaRepository) ListByRemision(remisionID uint) ([]models.PiezaEmbarcada, error) {
	var piezas []models.PiezaEmbarcada
	err := r.db.
		Where("remision_id = ?", remisionID).
		Order("timestamp_registro ASC").
		Find(&piezas).Error
	if err != nil {
		return nil, err
	}
	return piezas, nil
}

// SumCantidad returns the sum of quantities registered against a remision.
func (r *GormPiezaRepository) SumCantidad(remisionID uint) (int, error) {
	var total int64
	err := r.db.Model(&models.PiezaEmbarcada{}).
		Where("remision_id = ?", remisionID).
		Select("COALESCE(SUM(cantidad), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// Create inserts a pieza.
func (r *GormPiezaRepository) Create(pieza *models.PiezaEmbarcada) error {
	return r.db.Create(pieza).Error
}

// Update saves the full pieza row.
func (r *GormPiezaRepository) Update(pieza *models.PiezaEmbarcada) error {
	return r.db.Save(pieza).Error
}

// Delete removes a pieza by id and reports how many rows were affected.
func (r *GormPiezaRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.PiezaEmbarcada{}, id)
	return result.RowsAffected, result.Error
}
