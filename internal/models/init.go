package models

import (
	"strings"

	"github.com/remitrack/internal/constants"
	"github.com/remitrack/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultUser creates a first worker account when the users table is
// empty so a fresh install can log in.
func InitDefaultUser(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "admin@remitrack.local"
	}
	if password == "" {
		password = "remitrack123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		FullName:     "Administrador",
		Status:       constants.UserStatusActive,
	}

	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "remitrack123" {
		logger.Warnw("default_user_created_with_default_password", "email", user.Email)
		logger.Warnw("default_user_password_change_required", "email", user.Email)
	} else {
		logger.Warnw("default_user_created", "email", user.Email, "password_hidden", true)
	}

	return nil
}
