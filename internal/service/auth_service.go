package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/gastos-app/gastos-backend/internal/domain"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// HandleLogin ensures a profile exists for the authenticated identity,
// creating it lazily on first login. The display name is seeded from the
// token's name claim, falling back to the email local-part.
func (s *AuthService) HandleLogin(auth0ID, email, name string) (*domain.User, error) {
	seed := strings.TrimSpace(name)
	if seed == "" {
		if at := strings.Index(email, "@"); at > 0 {
			seed = email[:at]
		}
	}
	if seed == "" {
		seed = "Usuario"
	}

	return s.userRepo.CreateOrGetByAuth0ID(auth0ID, email, seed)
}

// GetProfile returns the profile for an identity provider subject
func (s *AuthService) GetProfile(auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(auth0ID)
}

// GetProfileByID returns a profile by its UUID
func (s *AuthService) GetProfileByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// ListProfiles returns every known profile
func (s *AuthService) ListProfiles() ([]*domain.User, error) {
	return s.userRepo.ListAll()
}

// GetUserIDByAuth0ID resolves the profile UUID for an identity subject.
// Used by the WebSocket handshake.
func (s *AuthService) GetUserIDByAuth0ID(auth0ID string) (string, error) {
	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err != nil {
		return "", err
	}
	return user.ID.String(), nil
}
