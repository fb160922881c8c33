package models

import (
	"time"
)

// Remision is one outbound pre-staging record ("shipment document").
// TotalPiezas is a cached sum of the piezas' quantities; it is recomputed
// asynchronously after piece mutations and is never authoritative.
type Remision struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	NumeroRemision string    `gorm:"type:varchar(60);uniqueIndex;not null" json:"numero_remision"` // human-assigned document number
	Cliente        string    `gorm:"type:varchar(200)" json:"cliente"`                             // project / client label
	Estado         string    `gorm:"type:varchar(20);index;not null" json:"estado"`
	Observaciones  string    `gorm:"type:text" json:"observaciones"`
	FechaCreacion  time.Time `gorm:"index" json:"fecha_creacion"`
	TotalPiezas    int       `gorm:"not null;default:0" json:"total_piezas"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Piezas []PiezaEmbarcada `gorm:"foreignKey:RemisionID" json:"piezas_embarcadas,omitempty"`
}

// TableName sets the table name.
func (Remision) TableName() string {
	return "remisiones"
}
