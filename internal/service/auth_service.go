package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidInput       = errors.New("invalid input")
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AuthService handles user auth logic
type AuthService struct {
	authRepo   repository.Authorization
	tokens     *TokenService
	bcryptCost int
	now        func() time.Time
}

// NewAuthService builds the service. A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewAuthService(repo repository.Authorization, tokens *TokenService, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		authRepo:   repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Register hashes the password and creates a new user.
// A taken email returns ErrUserExists without writing.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if isBlank(in.Name) || isBlank(in.Email) || isBlank(in.Password) {
		return fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if len(in.Password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}

	existing, err := s.authRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return ErrUserExists
	}

	hash, err := hashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return err
	}

	_, err = s.authRepo.Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login validates credentials and returns a session token.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.authRepo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(Identity{UserID: u.ID, Email: u.Email})
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, User: u.Summary()}, nil
}

// ParseToken verifies a bearer token and returns the caller identity.
func (s *AuthService) ParseToken(accessToken string) (Identity, error) {
	return s.tokens.Verify(accessToken)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// helper: hash password safely
func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
