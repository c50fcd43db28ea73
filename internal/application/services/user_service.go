package services

import (
	"context"
	"errors"

	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/providers"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

// Messages returned to clients by the account flows
const (
	MsgUsernameTaken     = "This username is already taken."
	MsgEmailTaken        = "This email is already registered to another account."
	MsgPasswordIncorrect = "Password is incorrect"
	MsgNewPasswordEmpty  = "New password is required."
)

// ProfileUpdate carries the editable profile fields of an account
type ProfileUpdate struct {
	UserID       string
	Fullname     string
	Username     string
	Email        string
	ProfilePhoto string
}

// UserService handles account lookups and self-service changes
type UserService struct {
	users  repositories.UserRepository
	hasher providers.PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, hasher providers.PasswordHasher) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
	}
}

// GetByID retrieves a user by user_id
func (s *UserService) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile changes fullname, username, email and optionally the photo.
// A username or email held by a different account is rejected.
func (s *UserService) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if err := s.ensureUnclaimed(ctx, s.users.GetByUsername, update.Username, update.UserID, MsgUsernameTaken); err != nil {
		return err
	}
	if err := s.ensureUnclaimed(ctx, s.users.GetByEmail, update.Email, update.UserID, MsgEmailTaken); err != nil {
		return err
	}

	return s.users.UpdateProfile(ctx, &entities.User{
		UserID:       update.UserID,
		Fullname:     update.Fullname,
		Username:     update.Username,
		Email:        update.Email,
		ProfilePhoto: update.ProfilePhoto,
	})
}

func (s *UserService) ensureUnclaimed(
	ctx context.Context,
	lookup func(context.Context, string) (*entities.User, error),
	value, userID, message string,
) error {
	existing, err := lookup(ctx, value)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return apperrors.NewValidationError(message)
	}
	return nil
}

// ChangePassword replaces the password after checking the current one
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Verify(user.PasswordHash, currentPassword); err != nil {
		if errors.Is(err, providers.ErrPasswordMismatch) {
			return apperrors.NewUnauthorizedError(MsgPasswordIncorrect)
		}
		return apperrors.NewInternalError("failed to verify password", err)
	}

	if newPassword == "" {
		return apperrors.NewValidationError(MsgNewPasswordEmpty)
	}

	hash, err := hashPassword(s.hasher, newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// DeleteAccount removes the user and every review they wrote
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().Str("user_id", userID).Msg("account deleted")
	return nil
}
