package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a profile row. The ID is the identity provider's stable subject
// mapped to a UUID; profiles are created lazily on first login.
type User struct {
	ID        uuid.UUID `json:"id"`
	Auth0ID   string    `json:"auth0Id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRepository defines the interface for profile persistence operations
type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	GetByAuth0ID(auth0ID string) (*User, error)
	// CreateOrGetByAuth0ID returns the existing profile for auth0ID or
	// creates one with the given name seed.
	CreateOrGetByAuth0ID(auth0ID, email, name string) (*User, error)
	ListAll() ([]*User, error)
}
