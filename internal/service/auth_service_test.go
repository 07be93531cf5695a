package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"servicehub/api/internal/config"
	"servicehub/api/internal/repository"
	"servicehub/api/internal/security"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTSecret: "test-signing-secret",
			JWTTTL:    30 * 24 * time.Hour,
		},
	}
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@b.com",
		Phone:     "07700900000",
		Password:  "secret1",
		UserType:  "client",
		Location:  "London",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, testConfig(), zerolog.Nop())
	ctx := context.Background()

	user, token, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("registered user has no id")
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Fatal("password stored in plaintext or not at all")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("registered user has no creation timestamp")
	}

	subject, err := security.ParseToken(token, "test-signing-secret")
	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("token subject = %q, want %q", subject, user.ID)
	}

	loggedIn, _, err := svc.Login(ctx, "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("login after register: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("login returned user %q, want %q", loggedIn.ID, user.ID)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, testConfig(), zerolog.Nop())
	ctx := context.Background()

	input := validRegisterInput()
	input.Email = "  Ada@Example.COM "
	user, _, err := svc.Register(ctx, input)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("email = %q, want lowercased and trimmed", user.Email)
	}

	if _, _, err := svc.Login(ctx, "ada@example.com", "secret1"); err != nil {
		t.Fatalf("login with normalized email: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), testConfig(), zerolog.Nop())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "not-an-email",
		Password: "short",
		UserType: "wizard",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}

	got := make(map[string]bool)
	for _, f := range verr.Fields {
		got[f.Field] = true
	}
	for _, field := range []string{"firstName", "lastName", "email", "phone", "password", "userType", "location"} {
		if !got[field] {
			t.Errorf("missing validation error for %s", field)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, testConfig(), zerolog.Nop())
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(ctx, validRegisterInput()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second register err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterLosesUniqueIndexRace(t *testing.T) {
	// Pre-check passes but the insert hits the unique index.
	users := newFakeUserStore()
	users.createErr = repository.ErrEmailTaken
	svc := NewAuthService(users, testConfig(), zerolog.Nop())

	if _, _, err := svc.Register(context.Background(), validRegisterInput()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginFailures(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, testConfig(), zerolog.Nop())
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "nobody@b.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "a@b.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
}

func TestGetProfile(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, testConfig(), zerolog.Nop())
	ctx := context.Background()

	user, _, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	profile, err := svc.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Email != "a@b.com" {
		t.Fatalf("profile email = %q", profile.Email)
	}

	if _, err := svc.GetProfile(ctx, "missing-id"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user err = %v, want ErrUserNotFound", err)
	}
}
