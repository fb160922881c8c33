package models

import (
	"time"
)

// RemisionImage is one photo attached to a remision. ImageURL is the
// publicly resolvable path under the upload static mount; the stored file
// lives at <upload dir>/<remision_id>/<filename>.
type RemisionImage struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	RemisionID  uint      `gorm:"index;not null" json:"remision_id"`
	ImageURL    string    `gorm:"type:varchar(500);not null" json:"image_url"`
	ImageName   string    `gorm:"type:varchar(255)" json:"image_name"` // original client filename
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (RemisionImage) TableName() string {
	return "remision_images"
}
