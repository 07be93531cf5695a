package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"servicehub/api/internal/config"
	"servicehub/api/internal/ids"
	"servicehub/api/internal/models"
	"servicehub/api/internal/repository"
	"servicehub/api/internal/security"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	users UserStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users UserStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Company   string
	Email     string
	Phone     string
	Password  string
	UserType  string
	Location  string
}

func (in *RegisterInput) validate() error {
	var verr ValidationError
	if strings.TrimSpace(in.FirstName) == "" {
		verr.add("firstName", "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		verr.add("lastName", "Last name is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		verr.add("email", "Please include a valid email")
	}
	if strings.TrimSpace(in.Phone) == "" {
		verr.add("phone", "Phone number is required")
	}
	if len(in.Password) < 6 {
		verr.add("password", "Password must be at least 6 characters")
	}
	if in.UserType != string(models.UserTypeClient) && in.UserType != string(models.UserTypeProfessional) {
		verr.add("userType", "User type must be client or professional")
	}
	if strings.TrimSpace(in.Location) == "" {
		verr.add("location", "Location is required")
	}
	return verr.orNil()
}

// Register creates a user with a hashed password and returns it with a
// fresh session token. The pre-check gives a friendly error for the common
// case; the unique index on email is what actually guarantees uniqueness
// under concurrent registration.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, string, error) {
	if err := input.validate(); err != nil {
		return models.User{}, "", err
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return models.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, "", err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, "", err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           ids.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        input.Email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: passwordHash,
		UserType:     models.UserType(input.UserType),
		Location:     strings.TrimSpace(input.Location),
	}
	if company := strings.TrimSpace(input.Company); company != "" {
		user.Company = &company
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return models.User{}, "", ErrEmailTaken
		}
		return models.User{}, "", err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}

	s.log.Info().Str("user_id", user.ID).Str("user_type", input.UserType).Msg("user registered")
	return user, token, nil
}

// Login returns the same error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

// GetProfile loads a user by id. Users are never deleted through this API,
// but absence is still mapped to a not-found error rather than a 500.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	return security.GenerateToken(s.cfg.Security.JWTSecret, userID, s.cfg.Security.JWTTTL)
}
