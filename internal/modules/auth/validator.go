package auth

import (
	"regexp"
	"strings"

	"github.com/learnhub/learnhub/internal/apperror"
)

// emailPattern is a pragmatic email shape check: something@something.tld.
// Full RFC 5322 validation is not the goal; the address is only useful if
// the verification mail reaches it anyway.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// passwordSpecials is the set of special characters accepted by the
// password strength policy.
const passwordSpecials = "@$!%#*?&"

// ValidateLogin checks the structural shape of sign-in input. Login needs
// *some* password, so no strength rule applies here. Every violation is
// collected so the client can render all of them at once.
func ValidateLogin(req LoginRequest) []apperror.FieldError {
	var fields []apperror.FieldError

	email := strings.TrimSpace(req.Email)
	if email == "" {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "Email is required"})
	} else if !emailPattern.MatchString(email) {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "Email address is invalid"})
	}

	if req.Password == "" {
		fields = append(fields, apperror.FieldError{Field: "password", Message: "Password is required"})
	}

	return fields
}

// ValidateRegistration checks registration input: name, email shape, password
// strength, confirmation equality, and terms acceptance. All violations are
// collected, not just the first.
func ValidateRegistration(req RegisterRequest) []apperror.FieldError {
	var fields []apperror.FieldError

	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "Name is required"})
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "Email is required"})
	} else if !emailPattern.MatchString(email) {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "Email address is invalid"})
	}

	if msg := checkPasswordStrength(req.Password); msg != "" {
		fields = append(fields, apperror.FieldError{Field: "password", Message: msg})
	}

	if req.Password != req.PasswordConfirmation {
		fields = append(fields, apperror.FieldError{Field: "passwordConfirmation", Message: "Passwords do not match"})
	}

	if !req.AcceptTerms {
		fields = append(fields, apperror.FieldError{Field: "acceptTerms", Message: "You must accept the terms of use"})
	}

	return fields
}

// checkPasswordStrength enforces the registration password policy: at least
// 8 characters with a lowercase letter, an uppercase letter, a digit, and a
// special character. Returns an empty string when the password passes.
func checkPasswordStrength(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}

	if !lower || !upper || !digit || !special {
		return "Password must contain an uppercase letter, a lowercase letter, a digit, and a special character"
	}
	return ""
}

// normalizeEmail lowercases and trims an email address so lookups and the
// unique constraint treat Alice@Example.com and alice@example.com as the
// same account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
