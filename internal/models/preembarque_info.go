package models

import (
	"time"
)

// PreembarqueInfo is the one-to-one auxiliary record of a remision:
// supervisor, operator and transport details captured before shipping.
// Upserted on RemisionID.
type PreembarqueInfo struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	RemisionID     uint      `gorm:"uniqueIndex;not null" json:"remision_id"`
	SupervisorObra string    `gorm:"type:varchar(200)" json:"supervisor_obra"`
	Operador       string    `gorm:"type:varchar(200)" json:"operador"`
	Telefono       string    `gorm:"type:varchar(40)" json:"telefono"`
	PlacasCamion   string    `gorm:"type:varchar(40)" json:"placas_camion"`
	Transportista  string    `gorm:"type:varchar(200)" json:"transportista"`
	Barrotes       string    `gorm:"type:varchar(100)" json:"barrotes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (PreembarqueInfo) TableName() string {
	return "preembarque_info"
}
