package repository

import (
	"errors"

	"github.com/remitrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreembarqueInfoRepository is the pre-staging info data access interface.
type PreembarqueInfoRepository interface {
	GetByRemisionID(remisionID uint) (*models.PreembarqueInfo, error)
	Upsert(info *models.PreembarqueInfo) error
}

// GormPreembarqueInfoRepository is the GORM implementation.
type GormPreembarqueInfoRepository struct {
	db *gorm.DB
}

// NewPreembarqueInfoRepository creates a pre-staging info repository.
func NewPreembarqueInfoRepository(db *gorm.DB) *GormPreembarqueInfoRepository {
	return &GormPreembarqueInfoRepository{db: db}
}

// GetByRemisionID returns the info record of a remision or nil.
func (r *GormPreembarqueInfoRepository) GetByRemisionID(remisionID uint) (*models.PreembarqueInfo, error) {
	var info models.PreembarqueInfo
	err := r.db.Where("remision_id = ?", remisionID).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// Upsert inserts or updates the record keyed by remision_id.
func (r *GormPreembarqueInfoRepository) Upsert(info *models.PreembarqueInfo) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "remision_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"supervisor_obra",
			"operador",
			"telefono",
			"placas_camion",
			"transportista",
			"barrotes",
			"updated_at",
		}),
	}).Create(info).Error
}
