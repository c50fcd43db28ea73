package database_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touristtalks/backend/internal/adapters/database"
	"github.com/touristtalks/backend/internal/domain/entities"
)

func TestRevokedTokenAdapter_Revoke(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := database.NewRevokedTokenAdapter(client)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "revoked_tokens"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT DO NOTHING`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err := adapter.Revoke(context.Background(), &entities.RevokedToken{
		TokenID:   "jti-1",
		Token:     "header.payload.sig",
		UserID:    "u1",
		RevokedAt: now,
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)
}

func TestRevokedTokenAdapter_IsRevoked(t *testing.T) {
	t.Run("revoked", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewRevokedTokenAdapter(client)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM "revoked_tokens" WHERE ("token_id" = 'jti-1') LIMIT 1`)).
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		revoked, err := adapter.IsRevoked(context.Background(), "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("not revoked", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewRevokedTokenAdapter(client)

		mock.ExpectQuery(`FROM "revoked_tokens"`).
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

		revoked, err := adapter.IsRevoked(context.Background(), "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
