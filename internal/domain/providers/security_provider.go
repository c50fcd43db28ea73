package providers

import (
	"errors"
	"time"
)

// ErrPasswordMismatch is returned by PasswordHasher.Verify when the password
// does not match the hash.
var ErrPasswordMismatch = errors.New("password does not match")

// ErrPasswordTooLong is returned by PasswordHasher.Hash when the password
// exceeds what the hash function accepts.
var ErrPasswordTooLong = errors.New("password is too long")

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns nil when password matches hash
	Verify(hash, password string) error
}

// TokenClaims is the identity carried by a session token
type TokenClaims struct {
	TokenID   string
	UserID    string
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies session tokens
type TokenIssuer interface {
	Issue(userID, username, role string) (string, *TokenClaims, error)
	// Verify checks signature and expiry and returns the decoded claims
	Verify(token string) (*TokenClaims, error)
}
