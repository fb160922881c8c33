package models

import (
	"time"
)

// User is a warehouse or site worker account. TokenVersion and
// TokenInvalidBefore allow revoking issued JWTs without storing them.
type User struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash       string     `gorm:"type:varchar(200);not null" json:"-"`
	FullName           string     `gorm:"type:varchar(200)" json:"full_name"`
	Status             string     `gorm:"type:varchar(20);index;not null" json:"status"`
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
