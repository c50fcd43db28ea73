package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/touristtalks/backend/internal/domain/providers"
)

// sessionClaims is the wire payload: {id, user, role, iat, exp, jti}.
type sessionClaims struct {
	UserID   string `json:"id"`
	Username string `json:"user"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer issues and verifies HS256 session tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer creates a token issuer signing with secret. Tokens expire
// after ttl.
func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a new token for the given identity.
func (j *JWTIssuer) Issue(userID, username, role string) (string, *providers.TokenClaims, error) {
	issuedAt := j.now().UTC().Truncate(time.Second)
	claims := &sessionClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, toTokenClaims(claims), nil
}

// Verify checks the signature, algorithm and expiry of token.
func (j *JWTIssuer) Verify(token string) (*providers.TokenClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no subject id")
	}

	return toTokenClaims(claims), nil
}

func toTokenClaims(c *sessionClaims) *providers.TokenClaims {
	out := &providers.TokenClaims{
		TokenID:  c.ID,
		UserID:   c.UserID,
		Username: c.Username,
		Role:     c.Role,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
