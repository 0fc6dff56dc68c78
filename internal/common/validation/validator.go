// Package validation holds the structural checks applied to incoming
// registration and profile-update payloads. Rules are independent and
// all violations are collected; uniqueness is checked separately by
// the account service because it needs a store lookup.
package validation

import (
	"regexp"
	"strings"

	"myflix/internal/common"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type RegistrationInput struct {
	Username string
	Password string
	Email    string
}

type ProfileUpdateInput struct {
	Password string // optional; validated only when supplied
	Email    string
}

func ValidateRegistration(in RegistrationInput) []common.FieldError {
	var violations []common.FieldError
	violations = append(violations, checkUsername(in.Username)...)
	if strings.TrimSpace(in.Password) == "" {
		violations = append(violations, common.FieldError{Field: "password", Message: "Password is required"})
	}
	violations = append(violations, checkEmail(in.Email)...)
	return violations
}

func ValidateProfileUpdate(in ProfileUpdateInput) []common.FieldError {
	var violations []common.FieldError
	if in.Password != "" && strings.TrimSpace(in.Password) == "" {
		violations = append(violations, common.FieldError{Field: "password", Message: "Password must not be blank"})
	}
	violations = append(violations, checkEmail(in.Email)...)
	return violations
}

func checkUsername(username string) []common.FieldError {
	var violations []common.FieldError
	if len(username) < 5 {
		violations = append(violations, common.FieldError{Field: "username", Message: "Username must be at least 5 characters long"})
	}
	if !isAlphanumeric(username) {
		violations = append(violations, common.FieldError{Field: "username", Message: "Username contains non alphanumeric characters - not allowed"})
	}
	return violations
}

func checkEmail(email string) []common.FieldError {
	if !emailPattern.MatchString(email) {
		return []common.FieldError{{Field: "email", Message: "Email does not appear to be valid"}}
	}
	return nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
