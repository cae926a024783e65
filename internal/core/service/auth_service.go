package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/ports"
)

// AuthService implements registration and login against the credential store.
type AuthService struct {
	repo       ports.UserRepository
	validate   *validator.Validate
	bcryptCost int
	dummyHash  []byte
	logger     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, bcryptCost int, logger zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	// Compared against when login hits an unknown email, so that path costs
	// the same as a real password check.
	dummy, err := bcrypt.GenerateFromPassword([]byte("swiftpark-dummy-password"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("auth: generate dummy hash: %v", err))
	}
	return &AuthService{
		repo:       repo,
		validate:   validator.New(),
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		logger:     logger,
	}
}

// registerInput mirrors the registration form fields for validation.
type registerInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8"`
	Password2 string `validate:"eqfield=Password"`
}

// Register validates the submitted fields, collecting every violated rule, and
// creates the user with the base role. A duplicate email surfaces as
// domain.ErrUserExists via the store's uniqueness constraint.
func (s *AuthService) Register(ctx context.Context, email, password, password2 string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	in := registerInput{Email: email, Password: password, Password2: password2}
	if err := s.validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			causes := make([]string, 0, len(ve))
			for _, fe := range ve {
				causes = append(causes, registerFieldError(fe))
			}
			return nil, &domain.ValidationError{Causes: causes}
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login resolves the user by normalized email and verifies the password. An
// unknown email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Principal, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a compare so the miss takes as long as a mismatch.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// registerFieldError converts a single validator failure into the message the
// registration form displays.
func registerFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return "email is required"
		}
		return "email must be a valid email address"
	case "Password":
		if fe.Tag() == "required" {
			return "password is required"
		}
		return fmt.Sprintf("password must be at least %s characters", fe.Param())
	case "Password2":
		return "passwords do not match"
	}
	return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
}
