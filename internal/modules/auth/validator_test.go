package auth

import (
	"testing"

	"github.com/learnhub/learnhub/internal/apperror"
)

// assertFieldSet checks that exactly the expected field names were flagged.
func assertFieldSet(t *testing.T, fields []apperror.FieldError, want []string) {
	t.Helper()
	got := make(map[string]bool, len(fields))
	for _, f := range fields {
		got[f.Field] = true
	}
	if len(got) != len(want) {
		t.Errorf("expected %d flagged fields %v, got %d: %+v", len(want), want, len(got), fields)
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("expected field %q to be flagged, violations: %+v", name, fields)
		}
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name       string
		req        LoginRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  LoginRequest{Email: "alice@example.com", Password: "whatever"},
		},
		{
			name:       "missing everything",
			req:        LoginRequest{},
			wantFields: []string{"email", "password"},
		},
		{
			name:       "malformed email",
			req:        LoginRequest{Email: "not-an-email", Password: "whatever"},
			wantFields: []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ValidateLogin(tt.req)
			assertFieldSet(t, fields, tt.wantFields)
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := RegisterRequest{
		Name:                 "Alice Martin",
		Email:                "alice@example.com",
		Password:             "Str0ng!pass",
		PasswordConfirmation: "Str0ng!pass",
		AcceptTerms:          true,
	}

	tests := []struct {
		name       string
		mutate     func(r *RegisterRequest)
		wantFields []string
	}{
		{
			name:   "valid",
			mutate: func(r *RegisterRequest) {},
		},
		{
			name:       "blank name",
			mutate:     func(r *RegisterRequest) { r.Name = "   " },
			wantFields: []string{"name"},
		},
		{
			name:       "malformed email",
			mutate:     func(r *RegisterRequest) { r.Email = "alice@" },
			wantFields: []string{"email"},
		},
		{
			name: "short password",
			mutate: func(r *RegisterRequest) {
				r.Password = "Ab1!"
				r.PasswordConfirmation = "Ab1!"
			},
			wantFields: []string{"password"},
		},
		{
			name: "no uppercase",
			mutate: func(r *RegisterRequest) {
				r.Password = "str0ng!pass"
				r.PasswordConfirmation = "str0ng!pass"
			},
			wantFields: []string{"password"},
		},
		{
			name: "no digit",
			mutate: func(r *RegisterRequest) {
				r.Password = "Strong!pass"
				r.PasswordConfirmation = "Strong!pass"
			},
			wantFields: []string{"password"},
		},
		{
			name: "no special character",
			mutate: func(r *RegisterRequest) {
				r.Password = "Str0ngpass"
				r.PasswordConfirmation = "Str0ngpass"
			},
			wantFields: []string{"password"},
		},
		{
			name:       "confirmation mismatch",
			mutate:     func(r *RegisterRequest) { r.PasswordConfirmation = "Str0ng!other" },
			wantFields: []string{"passwordConfirmation"},
		},
		{
			name:       "terms not accepted",
			mutate:     func(r *RegisterRequest) { r.AcceptTerms = false },
			wantFields: []string{"acceptTerms"},
		},
		{
			name: "all violations collected",
			mutate: func(r *RegisterRequest) {
				*r = RegisterRequest{}
			},
			wantFields: []string{"name", "email", "password", "acceptTerms"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			fields := ValidateRegistration(req)
			assertFieldSet(t, fields, tt.wantFields)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %q", got)
	}
}
