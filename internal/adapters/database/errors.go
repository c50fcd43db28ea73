package database

import (
	"context"
	"database/sql"

	"github.com/touristtalks/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

// Messages for duplicate natural keys, keyed by constraint name.
var uniqueViolationMessages = map[string]string{
	"users_email_key":    "An account is already registered with this email. Please log in instead.",
	"users_username_key": "This username is already taken.",
	"users_pkey":         "This user id is already in use.",
	"reviews_pkey":       "This review id is already in use.",
	"places_pkey":        "This place id is already in use.",
}

// translateWriteError maps unique violations to validation errors and wraps
// everything else as internal.
func translateWriteError(err error, message string) error {
	if constraint, ok := postgres.IsUniqueViolation(err); ok {
		if msg, known := uniqueViolationMessages[constraint]; known {
			return apperrors.NewValidationError(msg)
		}
		return apperrors.NewValidationError("duplicate value violates " + constraint)
	}
	return apperrors.NewInternalError(message, err)
}

// requireAffected returns a not found error when result touched no rows.
func requireAffected(result sql.Result, notFound string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(notFound)
	}
	return nil
}

// nextSequenceValue draws the next value from a Postgres sequence.
func nextSequenceValue(ctx context.Context, client *postgres.Client, sequence string) (int64, error) {
	var next int64
	if err := client.DB().QueryRowContext(ctx, "SELECT nextval($1::regclass)", sequence).Scan(&next); err != nil {
		return 0, apperrors.NewInternalError("failed to reserve id from "+sequence, err)
	}
	return next, nil
}
