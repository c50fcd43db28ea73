package repositories

import (
	"context"

	"github.com/touristtalks/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// NextID reserves a new unique user id
	NextID(ctx context.Context) (string, error)

	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by user_id
	GetByID(ctx context.Context, userID string) (*entities.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// UpdateProfile sets fullname, username and email
	UpdateProfile(ctx context.Context, user *entities.User) error

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// Delete removes the user and every review they wrote
	Delete(ctx context.Context, userID string) error
}

// RevokedTokenRepository records tokens presented at logout
type RevokedTokenRepository interface {
	// Revoke records the token; revoking twice is not an error
	Revoke(ctx context.Context, token *entities.RevokedToken) error

	// IsRevoked reports whether a token id has been recorded
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
