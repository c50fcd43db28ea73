package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

// RevokedTokenAdapter implements the RevokedTokenRepository interface
type RevokedTokenAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRevokedTokenAdapter creates a new revoked token adapter
func NewRevokedTokenAdapter(client *postgres.Client) repositories.RevokedTokenRepository {
	return &RevokedTokenAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Revoke records a token. Revoking the same token twice is a no-op.
func (a *RevokedTokenAdapter) Revoke(ctx context.Context, token *entities.RevokedToken) error {
	if token == nil {
		return apperrors.NewInternalError("token is nil", fmt.Errorf("token is nil"))
	}

	query, args, err := a.db.Insert("revoked_tokens").
		Rows(goqu.Record{
			"token_id":   token.TokenID,
			"token":      token.Token,
			"user_id":    token.UserID,
			"revoked_at": token.RevokedAt.UTC(),
			"expires_at": token.ExpiresAt.UTC(),
		}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build revoke query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to revoke token", err)
	}

	return nil
}

// IsRevoked reports whether a token id has been revoked
func (a *RevokedTokenAdapter) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	query, args, err := a.db.Select(goqu.L("1")).
		From("revoked_tokens").
		Where(goqu.Ex{"token_id": tokenID}).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to check token revocation", err)
	}
	defer rows.Close()

	revoked := rows.Next()
	if err := rows.Err(); err != nil {
		return false, apperrors.NewInternalError("failed to check token revocation", err)
	}

	return revoked, nil
}
