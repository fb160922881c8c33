package service

import (
	"fmt"
	"unicode"

	"github.com/remitrack/internal/config"
)

type passwordPolicyError struct {
	msg string
}

func (e passwordPolicyError) Error() string {
	return e.msg
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber {
		return nil
	}

	if policy.MinLength > 0 {
		if len([]rune(password)) < policy.MinLength {
			return passwordPolicyError{msg: fmt.Sprintf("la contraseña debe tener al menos %d caracteres", policy.MinLength)}
		}
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{msg: "la contraseña debe incluir una letra mayúscula"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{msg: "la contraseña debe incluir una letra minúscula"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{msg: "la contraseña debe incluir un número"}
	}

	return nil
}
