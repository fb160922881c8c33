package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/remitrack/internal/config"
	"github.com/remitrack/internal/constants"
	"github.com/remitrack/internal/models"
	"github.com/remitrack/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-for-auth-service-tests"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}

	return NewAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, err := svc.Register("Operador@Planta.MX", "seguro123", "Operador Uno")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "operador@planta.mx" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "seguro123" {
		t.Fatalf("password stored in clear")
	}

	logged, token, expiresAt, err := svc.Login("operador@planta.mx", "seguro123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result: id=%d token=%q", logged.ID, token)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token already expired: %v", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("op@planta.mx", "seguro123", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register("OP@planta.mx", "seguro456", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("op@planta.mx", "corta1", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for short password, got %v", err)
	}
	if _, err := svc.Register("op@planta.mx", "sinnumeros", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword without digits, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	user, err := svc.Register("op@planta.mx", "seguro123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("op@planta.mx", "equivocada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, _, err := svc.Login("nadie@planta.mx", "seguro123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("op@planta.mx", "seguro123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestParseJWTRejectsTampered(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, err := svc.Register("op@planta.mx", "seguro123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, _, err := svc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}

	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatalf("tampered token should not parse")
	}
}
