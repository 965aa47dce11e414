package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub/internal/apperror"
	"github.com/learnhub/learnhub/internal/mail"
)

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	// Authenticate verifies submitted credentials and returns the account
	// with credential material stripped. Every failure is an apperror from
	// the sign-in taxonomy; exactly one error is produced per attempt.
	Authenticate(ctx context.Context, req LoginRequest) (*SafeUser, error)

	// Register creates a new STUDENT account from self-service sign-up.
	Register(ctx context.Context, req RegisterRequest) (*SafeUser, error)

	// GetUser fetches an account by id, stripped.
	GetUser(ctx context.Context, id string) (*SafeUser, error)
}

// authService implements AuthService with bcrypt hashing and signed
// session tokens.
type authService struct {
	repo       UserRepository
	mailer     mail.Sender
	bcryptCost int
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, mailer mail.Sender, bcryptCost int) AuthService {
	return &authService{
		repo:       repo,
		mailer:     mailer,
		bcryptCost: bcryptCost,
	}
}

// Authenticate runs the sign-in decision sequence: shape check, account
// lookup, hash comparison. An unknown email and an account with no password
// hash produce the same UserNotFound outcome, so the response does not
// reveal whether an address is registered with a password.
func (s *authService) Authenticate(ctx context.Context, req LoginRequest) (*SafeUser, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperror.NewMissingCredentials()
	}
	if fields := ValidateLogin(req); len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("looking up account: %w", err))
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.NewUserNotFound()
	}

	ok, err := VerifyPassword(req.Password, *user.PasswordHash)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("comparing password: %w", err))
	}
	if !ok {
		return nil, apperror.NewInvalidCredentials()
	}

	slog.Info("user signed in", "user_id", user.ID, "role", user.Role)
	return user.Safe(), nil
}

// Register creates a new account. Self-service registration always produces
// a STUDENT; elevated roles are provisioned out of band. Internal faults are
// reported with the registration-specific message so the client can show a
// single failure banner.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*SafeUser, error) {
	if fields := ValidateRegistration(req); len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	email := normalizeEmail(req.Email)

	// Check before the expensive hash. The UNIQUE index still catches the
	// race where two registrations for the same address interleave.
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, registrationFault(fmt.Errorf("checking email: %w", err))
	}
	if existing != nil {
		return nil, apperror.NewEmailExists()
	}

	hash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, registrationFault(fmt.Errorf("hashing password: %w", err))
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: &hash,
		Role:         RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if appErr, ok := err.(*apperror.AppError); ok {
			return nil, appErr
		}
		return nil, registrationFault(fmt.Errorf("creating user: %w", err))
	}

	// Welcome mail is best-effort. The account exists either way.
	if err := s.mailer.SendMail(ctx, []string{user.Email},
		"Welcome to LearnHub",
		fmt.Sprintf("Hello %s, your LearnHub account is ready.", user.Name)); err != nil {
		slog.Warn("welcome mail failed", "user_id", user.ID, "error", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user.Safe(), nil
}

// GetUser fetches an account by id with the hash stripped.
func (s *authService) GetUser(ctx context.Context, id string) (*SafeUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if appErr, ok := err.(*apperror.AppError); ok {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("fetching user: %w", err))
	}
	return user.Safe(), nil
}

// registrationFault wraps an internal error with the registration failure
// message. The code stays Default; only the banner text changes.
func registrationFault(err error) *apperror.AppError {
	appErr := apperror.NewInternal(err)
	appErr.Message = "Account creation failed"
	return appErr
}
