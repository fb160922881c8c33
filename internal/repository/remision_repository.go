package repository

import (
	"errors"
	"strings"

	"github.com/remitrack/internal/models"

	"gorm.io/gorm"
)

// RemisionRepository is the remision data access interface.
type RemisionRepository interface {
	List(filter RemisionListFilter) ([]models.Remision, int64, error)
	GetByID(id uint) (*models.Remision, error)
	GetByIDWithPiezas(id uint) (*models.Remision, error)
	FindByNumero(numero string) (*models.Remision, error)
	Create(remision *models.Remision) error
	UpdateEstado(id uint, estado string) error
	UpdateObservaciones(id uint, observaciones string) error
	UpdateTotalPiezas(id uint, total int) error
}

// GormRemisionRepository is the GORM implementation.
type GormRemisionRepository struct {
	db *gorm.DB
}

// NewRemisionRepository creates a remision repository.
func NewRemisionRepository(db *gorm.DB) *GormRemisionRepository {
	return &GormRemisionRepository{db: db}
}

// List returns remisiones ordered by creation time, newest first.
func (r *GormRemisionRepository) List(filter RemisionListFilter) ([]models.Remision, int64, error) {
	var remisiones []models.Remision
	query := r.db.Model(&models.Remision{})

	if estado := strings.TrimSpace(filter.Estado); estado != "" {
		query = query.Where("estado = ?", estado)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("numero_remision LIKE ? OR cliente LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("fecha_creacion DESC").Find(&remisiones).Error; err != nil {
		return nil, 0, err
	}
	return remisiones, total, nil
}

// GetByID returns one remision or nil when missing.
func (r *GormRemisionRepository) GetByID(id uint) (*models.Remision, error) {
	var remision models.Remision
	if err := r.db.First(&remision, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &remision, nil
}

// GetByIDWithPiezas returns one remision with its piezas preloaded in
// registration order.
func (r *GormRemisionRepository) GetByIDWithPiezas(id uint) (*models.Remision, error) {
	var remision models.Remision
	err := r.db.
		Preload("Piezas", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp_registro ASC")
		}).
		First(&remision, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &remision, nil
}

// FindByNumero returns the remision with the given document number or nil.
func (r *GormRemisionRepository) FindByNumero(numero string) (*models.Remision, error) {
	var remision models.Remision
	err := r.db.Where("numero_remision = ?", numero).First(&remision).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &remision, nil
}

// Create inserts a remision.
func (r *GormRemisionRepository) Create(remision *models.Remision) error {
	return r.db.Create(remision).Error
}

// UpdateEstado sets the status column only.
func (r *GormRemisionRepository) UpdateEstado(id uint, estado string) error {
	return r.db.Model(&models.Remision{}).Where("id = ?", id).
		Update("estado", estado).Error
}

// UpdateObservaciones sets the observations column only.
func (r *GormRemisionRepository) UpdateObservaciones(id uint, observaciones string) error {
	return r.db.Model(&models.Remision{}).Where("id = ?", id).
		Update("observaciones", observaciones).Error
}

// UpdateTotalPiezas sets the cached piece total.
func (r *GormRemisionRepository) UpdateTotalPiezas(id uint, total int) error {
	return r.db.Model(&models.Remision{}).Where("id = ?", id).
		Update("total_piezas", total).Error
}
