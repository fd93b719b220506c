package services

import (
	"errors"
	"fmt"

	"github.com/jovinkassi/vaultask/internal/models"
	"github.com/jovinkassi/vaultask/internal/repository"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a user id does not resolve to a record.
var ErrUserNotFound = errors.New("user not found")

// AuthResult is the uniform outcome of a successful login, regardless of
// which credential strategy was used.
type AuthResult struct {
	User  *models.User
	Token string
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Authenticate verifies the credential and issues an identity token. Both
// strategies may create a new user record on first use.
func (s *AuthService) Authenticate(credential Credential) (*AuthResult, error) {
	user, err := credential.Verify(s.userRepo)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
