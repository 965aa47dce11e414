package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/learnhub/learnhub/internal/apperror"
)

// --- Mock Repository ---

// mockUserRepo implements UserRepository for testing.
type mockUserRepo struct {
	createFn      func(ctx context.Context, user *User) error
	findByIDFn    func(ctx context.Context, id string) (*User, error)
	findByEmailFn func(ctx context.Context, email string) (*User, error)
	countByRoleFn func(ctx context.Context, role Role) (int, error)
	listByRoleFn  func(ctx context.Context, role Role) ([]User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role Role) (int, error) {
	if m.countByRoleFn != nil {
		return m.countByRoleFn(ctx, role)
	}
	return 0, nil
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role Role) ([]User, error) {
	if m.listByRoleFn != nil {
		return m.listByRoleFn(ctx, role)
	}
	return nil, nil
}

// mockMailer implements mail.Sender for testing.
type mockMailer struct {
	sendFn func(ctx context.Context, to []string, subject, body string) error
	sent   int
}

func (m *mockMailer) SendMail(ctx context.Context, to []string, subject, body string) error {
	m.sent++
	if m.sendFn != nil {
		return m.sendFn(ctx, to, subject, body)
	}
	return nil
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode string) *apperror.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected code %s, got %s (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// mustHash hashes a password at the minimum cost for fast tests.
func mustHash(t *testing.T, password string) *string {
	t.Helper()
	hash, err := HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return &hash
}

// --- Authenticate tests ---

func TestAuthenticate_Success(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			if email != "alice@example.com" {
				t.Errorf("expected normalized email, got %q", email)
			}
			return &User{
				ID:           "user-1",
				Name:         "Alice",
				Email:        email,
				PasswordHash: mustHash(t, "Sup3r$ecret"),
				Role:         RoleStudent,
			}, nil
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	user, err := svc.Authenticate(context.Background(), LoginRequest{
		Email:    "  Alice@Example.COM ",
		Password: "Sup3r$ecret",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if user.ID != "user-1" || user.Role != RoleStudent {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockMailer{}, bcrypt.MinCost)

	cases := []LoginRequest{
		{Email: "", Password: "something"},
		{Email: "alice@example.com", Password: ""},
		{Email: "", Password: ""},
	}
	for _, req := range cases {
		_, err := svc.Authenticate(context.Background(), req)
		assertAppError(t, err, apperror.CodeMissingCredentials)
	}
}

func TestAuthenticate_MalformedEmail(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockMailer{}, bcrypt.MinCost)

	_, err := svc.Authenticate(context.Background(), LoginRequest{
		Email:    "not-an-email",
		Password: "something",
	})
	assertAppError(t, err, apperror.CodeValidation)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, nil
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	_, err := svc.Authenticate(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})
	assertAppError(t, err, apperror.CodeUserNotFound)
}

func TestAuthenticate_NilHashLooksLikeUnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return &User{ID: "user-2", Email: email, Role: RoleTeacher}, nil
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	_, err := svc.Authenticate(context.Background(), LoginRequest{
		Email:    "teacher@example.com",
		Password: "whatever1",
	})
	assertAppError(t, err, apperror.CodeUserNotFound)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return &User{
				ID:           "user-1",
				Email:        email,
				PasswordHash: mustHash(t, "correct-P4ss!"),
				Role:         RoleStudent,
			}, nil
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	_, err := svc.Authenticate(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-P4ss!",
	})
	assertAppError(t, err, apperror.CodeInvalidCredentials)
}

func TestAuthenticate_RepositoryError(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	_, err := svc.Authenticate(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "whatever1",
	})
	assertAppError(t, err, apperror.CodeDefault)
}

// --- Register tests ---

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Name:                 "Alice Martin",
		Email:                "alice@example.com",
		Password:             "Str0ng!pass",
		PasswordConfirmation: "Str0ng!pass",
		AcceptTerms:          true,
	}
}

func TestRegister_Success(t *testing.T) {
	var created *User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *User) error {
			created = user
			return nil
		},
	}
	mailer := &mockMailer{}
	svc := NewAuthService(repo, mailer, bcrypt.MinCost)

	user, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if user.Role != RoleStudent {
		t.Errorf("expected STUDENT role, got %s", user.Role)
	}
	if created == nil {
		t.Fatal("expected user to be persisted")
	}
	if created.ID == "" {
		t.Error("expected a generated user id")
	}
	if created.PasswordHash == nil || *created.PasswordHash == "Str0ng!pass" {
		t.Error("expected password to be hashed before persistence")
	}
	if mailer.sent != 1 {
		t.Errorf("expected one welcome mail, got %d", mailer.sent)
	}
}

func TestRegister_WeakPasswordSkipsPersistence(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *User) error {
			t.Error("create must not be called for invalid input")
			return nil
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	req := validRegistration()
	req.Password = "weak"
	req.PasswordConfirmation = "weak"

	_, err := svc.Register(context.Background(), req)
	appErr := assertAppError(t, err, apperror.CodeValidation)
	if len(appErr.Fields) == 0 {
		t.Error("expected field-level violations")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return &User{ID: "user-1", Email: email}, nil
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validRegistration())
	assertAppError(t, err, apperror.CodeEmailExists)
}

func TestRegister_DuplicateEmailRace(t *testing.T) {
	// Pre-check passes but the insert trips the unique index.
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *User) error {
			return apperror.NewEmailExists()
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validRegistration())
	assertAppError(t, err, apperror.CodeEmailExists)
}

func TestRegister_CreateError(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *User) error {
			return errors.New("deadlock")
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validRegistration())
	appErr := assertAppError(t, err, apperror.CodeDefault)
	if appErr.Message != "Account creation failed" {
		t.Errorf("expected registration failure message, got %q", appErr.Message)
	}
}

func TestRegister_MailFailureIsNotFatal(t *testing.T) {
	mailer := &mockMailer{
		sendFn: func(ctx context.Context, to []string, subject, body string) error {
			return errors.New("smtp down")
		},
	}
	svc := NewAuthService(&mockUserRepo{}, mailer, bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("mail failure must not fail registration, got %v", err)
	}
}

func TestRegister_EmailNormalization(t *testing.T) {
	var created *User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *User) error {
			created = user
			return nil
		},
	}
	svc := NewAuthService(repo, &mockMailer{}, bcrypt.MinCost)

	req := validRegistration()
	req.Email = "  Alice@EXAMPLE.com "
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if created.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
}

// --- Password hashing tests ---

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}

	ok, err := VerifyPassword("Sup3r$ecret", hash)
	if err != nil {
		t.Fatalf("verifying: %v", err)
	}
	if !ok {
		t.Error("expected correct password to verify")
	}

	ok, err = VerifyPassword("not-the-password", hash)
	if err != nil {
		t.Fatalf("verifying wrong password: %v", err)
	}
	if ok {
		t.Error("expected wrong password to fail verification")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "not-a-bcrypt-hash")
	if err == nil {
		t.Error("expected an error for a malformed hash")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, _ := HashPassword("same-password", bcrypt.MinCost)
	h2, _ := HashPassword("same-password", bcrypt.MinCost)
	if h1 == h2 {
		t.Error("expected distinct salts to produce distinct hashes")
	}
}
