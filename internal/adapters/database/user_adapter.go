package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/clients/postgres"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

var userColumns = []interface{}{
	"user_id", "username", "email", "fullname", "password_hash",
	"role", "profile_photo", "liked_reviews",
}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// NextID reserves a new user id of the form "u<digits>"
func (a *UserAdapter) NextID(ctx context.Context) (string, error) {
	next, err := nextSequenceValue(ctx, a.client, "user_id_seq")
	if err != nil {
		return "", err
	}
	return "u" + strconv.FormatInt(next, 10), nil
}

// Create stores a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	if user == nil {
		return apperrors.NewInternalError("user is nil", fmt.Errorf("user is nil"))
	}

	record := goqu.Record{
		"user_id":       user.UserID,
		"username":      user.Username,
		"email":         user.Email,
		"fullname":      user.Fullname,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"profile_photo": user.ProfilePhoto,
		"liked_reviews": pq.Array(nonNil(user.LikedReviews)),
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return translateWriteError(err, "failed to create user")
	}

	return nil
}

// GetByID retrieves a user by user_id
func (a *UserAdapter) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	return a.getOne(ctx, goqu.Ex{"user_id": userID})
}

// GetByUsername retrieves a user by username
func (a *UserAdapter) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return a.getOne(ctx, goqu.Ex{"username": username})
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getOne(ctx, goqu.Ex{"email": email})
}

func (a *UserAdapter) getOne(ctx context.Context, where goqu.Ex) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From("users").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.Fullname,
		&user.PasswordHash,
		&user.Role,
		&user.ProfilePhoto,
		pq.Array(&user.LikedReviews),
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	if user.LikedReviews == nil {
		user.LikedReviews = []string{}
	}
	return user, nil
}

// UpdateProfile overwrites username, email and fullname. The profile photo
// is replaced only when a new one is given.
func (a *UserAdapter) UpdateProfile(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"username": user.Username,
		"email":    user.Email,
		"fullname": user.Fullname,
	}
	if user.ProfilePhoto != "" {
		record["profile_photo"] = user.ProfilePhoto
	}

	query, args, err := a.db.Update("users").
		Set(record).
		Where(goqu.Ex{"user_id": user.UserID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return translateWriteError(err, "failed to update user")
	}

	return requireAffected(result, "No matching user found")
}

// UpdatePassword replaces the stored password hash
func (a *UserAdapter) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query, args, err := a.db.Update("users").
		Set(goqu.Record{"password_hash": passwordHash}).
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update password", err)
	}

	return requireAffected(result, "User not found")
}

// Delete removes a user together with every review they wrote. Deleting a
// missing user succeeds.
func (a *UserAdapter) Delete(ctx context.Context, userID string) (err error) {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				observability.LoggerFromContext(ctx).Error().Err(rbErr).Str("user_id", userID).Msg("failed to roll back account deletion")
			}
		}
	}()

	reviewsQuery, reviewsArgs, err := a.db.Delete("reviews").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err = tx.ExecContext(ctx, reviewsQuery, reviewsArgs...); err != nil {
		return apperrors.NewInternalError("failed to delete user reviews", err)
	}

	userQuery, userArgs, err := a.db.Delete("users").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err = tx.ExecContext(ctx, userQuery, userArgs...); err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}

	if err = tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit account deletion", err)
	}

	return nil
}
