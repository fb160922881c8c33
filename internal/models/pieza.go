package models

import (
	"time"
)

// PiezaEmbarcada is one registered piece or batch of pieces against a
// remision. Folio is either a single serial token ("5") or a batch range
// token ("1-5"); a batch is stored as a single row with its aggregate
// quantity, never expanded per unit.
//
// The composite unique index backstops the registry's duplicate pre-checks
// for exact (marca, folio) collisions; range overlap is still enforced only
// by the registry's scan. NULL folios never collide.
type PiezaEmbarcada struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	RemisionID        uint      `gorm:"index;not null;uniqueIndex:idx_pieza_marca_folio" json:"remision_id"`
	Marca             string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_pieza_marca_folio" json:"marca"`
	Cantidad          int       `gorm:"not null" json:"cantidad"`
	Folio             *string   `gorm:"type:varchar(40);uniqueIndex:idx_pieza_marca_folio" json:"folio"`
	TimestampRegistro time.Time `gorm:"index" json:"timestamp_registro"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName sets the table name.
func (PiezaEmbarcada) TableName() string {
	return "piezas_embarcadas"
}
