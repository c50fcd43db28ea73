package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/providers"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

// Messages returned to clients by the auth flows
const (
	MsgEmailRegistered  = "An account is already registered with this email. Please log in instead."
	MsgPasswordRequired = "Password is required."
	MsgBadCredentials   = "Invalid username/email or password."
	MsgNotAuthorized    = "You are not authorized to access this endpoint"
	MsgPasswordTooLong  = "Password must be at most 72 bytes."
)

// SignupInput carries the fields of a new account
type SignupInput struct {
	Username     string
	Fullname     string
	Password     string
	Email        string
	Role         string
	ProfilePhoto string
}

// LoginResult is returned on a successful login
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// AuthService handles signup, login, logout and session verification
type AuthService struct {
	users             repositories.UserRepository
	revoked           repositories.RevokedTokenRepository
	hasher            providers.PasswordHasher
	tokens            providers.TokenIssuer
	enforceRevocation bool
	now               func() time.Time
}

// NewAuthService creates a new auth service. When enforceRevocation is set,
// tokens presented at logout stop authenticating immediately; otherwise
// logout only records them.
func NewAuthService(
	users repositories.UserRepository,
	revoked repositories.RevokedTokenRepository,
	hasher providers.PasswordHasher,
	tokens providers.TokenIssuer,
	enforceRevocation bool,
) *AuthService {
	return &AuthService{
		users:             users,
		revoked:           revoked,
		hasher:            hasher,
		tokens:            tokens,
		enforceRevocation: enforceRevocation,
		now:               time.Now,
	}
}

// Signup creates an account and returns its user_id
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (string, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return "", apperrors.NewValidationError(MsgEmailRegistered)
	} else if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return "", err
	}

	if input.Password == "" {
		return "", apperrors.NewValidationError(MsgPasswordRequired)
	}

	role := input.Role
	if role == "" {
		role = entities.RoleUser
	}

	hash, err := hashPassword(s.hasher, input.Password)
	if err != nil {
		return "", err
	}

	userID, err := s.users.NextID(ctx)
	if err != nil {
		return "", err
	}

	user := &entities.User{
		UserID:       userID,
		Username:     input.Username,
		Email:        input.Email,
		Fullname:     input.Fullname,
		PasswordHash: hash,
		Role:         role,
		ProfilePhoto: input.ProfilePhoto,
		LikedReviews: []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("user_id", userID).
		Str("role", role).
		Msg("account created")

	return userID, nil
}

// Login checks credentials, trying identifier as a username and then as an
// email, and issues a session token. Unknown accounts and wrong passwords
// produce the same error.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	logger := observability.LoggerFromContext(ctx)

	user, err := s.users.GetByUsername(ctx, identifier)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		logger.Debug().Msg("login rejected: unknown account")
		return nil, apperrors.NewUnauthorizedError(MsgBadCredentials)
	}
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		logger.Debug().Str("user_id", user.UserID).Msg("login rejected: wrong password")
		return nil, apperrors.NewUnauthorizedError(MsgBadCredentials)
	}

	token, _, err := s.tokens.Issue(user.UserID, user.Username, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	logger.Info().Str("user_id", user.UserID).Msg("user logged in")
	return &LoginResult{Token: token, UserID: user.UserID}, nil
}

// Authenticate verifies a session token and returns its claims
func (s *AuthService) Authenticate(ctx context.Context, token string) (*providers.TokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.NewUnauthenticatedError("Token is missing")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.NewInvalidTokenError("Token is invalid", err)
	}

	if s.enforceRevocation {
		revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apperrors.NewInvalidTokenError("Token is invalid", errors.New("token has been revoked"))
		}
	}

	return claims, nil
}

// AuthorizeAdmin checks that the session's account still exists and holds
// the admin role
func (s *AuthService) AuthorizeAdmin(ctx context.Context, claims *providers.TokenClaims) error {
	user, err := s.users.GetByID(ctx, claims.UserID)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return apperrors.NewInvalidTokenError("Token is invalid", errors.New("account no longer exists"))
	}
	if err != nil {
		return err
	}

	if !user.IsAdmin() {
		return apperrors.NewForbiddenError(MsgNotAuthorized)
	}
	return nil
}

// Logout records the presented token as revoked
func (s *AuthService) Logout(ctx context.Context, token string, claims *providers.TokenClaims) error {
	err := s.revoked.Revoke(ctx, &entities.RevokedToken{
		TokenID:   claims.TokenID,
		Token:     token,
		UserID:    claims.UserID,
		RevokedAt: s.now().UTC(),
		ExpiresAt: claims.ExpiresAt,
	})
	if err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("user_id", claims.UserID).
		Str("token_id", claims.TokenID).
		Msg("session revoked")

	return nil
}

// hashPassword hashes a client-supplied password, reporting an over-long
// password as a validation error
func hashPassword(hasher providers.PasswordHasher, password string) (string, error) {
	hash, err := hasher.Hash(password)
	if errors.Is(err, providers.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError(MsgPasswordTooLong)
	}
	if err != nil {
		return "", apperrors.NewInternalError("failed to hash password", err)
	}
	return hash, nil
}
