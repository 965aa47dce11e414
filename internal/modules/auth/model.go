// Package auth handles user authentication, session management, and password
// security for LearnHub. It provides registration, credential sign-in, signed
// session tokens, and the role-based route guard.
//
// This is a CORE module -- always enabled, cannot be disabled.
package auth

import (
	"time"
)

// Role is a user's site-wide role. Stored as an ENUM in the users table and
// embedded in session tokens. STUDENT is the only self-service role; TEACHER
// and ADMIN accounts are provisioned by an administrator or the seeder.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// IsValid returns true for a known role value.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleTeacher || r == RoleAdmin
}

// DashboardPath returns the role's default dashboard home, used by the route
// guard when an authenticated user lands on an auth page with no explicit
// destination.
func (r Role) DashboardPath() string {
	switch r {
	case RoleTeacher:
		return "/dashboard/teacher"
	case RoleAdmin:
		return "/dashboard/admin"
	default:
		return "/dashboard/student"
	}
}

// User represents a registered LearnHub user. This is the persisted domain
// model; it never leaves the auth package with its hash intact -- see SafeUser.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// PasswordHash is nil for accounts without password-based login
	// (e.g. seeded demo accounts). A nil hash makes credential sign-in
	// indistinguishable from an unknown email.
	PasswordHash *string `json:"-"`

	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Safe strips the password hash, producing the only form of a user record
// that may cross the authentication boundary.
func (u *User) Safe() *SafeUser {
	return &SafeUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// SafeUser is a user record with the credential material removed. Session
// issuance and every client-visible payload work from this type only.
type SafeUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// --- Request DTOs (bound from HTTP requests) ---

// LoginRequest holds the credentials submitted to the sign-in endpoint.
// Ephemeral and request-scoped; never persisted.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RegisterRequest holds the data submitted to the registration endpoint.
type RegisterRequest struct {
	Name                 string `json:"name" form:"name"`
	Email                string `json:"email" form:"email"`
	Password             string `json:"password" form:"password"`
	PasswordConfirmation string `json:"passwordConfirmation" form:"passwordConfirmation"`
	AcceptTerms          bool   `json:"acceptTerms" form:"acceptTerms"`
}

// Session is the decoded content of a session token: user id, role, and
// expiry. Deliberately minimal -- no email, no name.
type Session struct {
	UserID    string
	Role      Role
	ExpiresAt time.Time
}
