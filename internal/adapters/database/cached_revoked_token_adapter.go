package database

import (
	"context"
	"errors"
	"time"

	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/providers"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
)

// notRevokedTTL bounds how long a negative revocation lookup is trusted.
// Revoke overwrites the entry, so this only matters across instances.
const notRevokedTTL = 30 * time.Second

var (
	revokedMarker    = []byte("1")
	notRevokedMarker = []byte("0")
)

// CachedRevokedTokenAdapter keeps a revoked:<jti> key in the cache so the
// auth guard can skip the database on most requests. Postgres stays the
// source of truth; cache failures fall through to it.
type CachedRevokedTokenAdapter struct {
	adapter repositories.RevokedTokenRepository
	cache   providers.CacheProvider
	now     func() time.Time
}

// NewCachedRevokedTokenAdapter creates a new cached revoked token adapter
func NewCachedRevokedTokenAdapter(adapter repositories.RevokedTokenRepository, cache providers.CacheProvider) repositories.RevokedTokenRepository {
	return &CachedRevokedTokenAdapter{
		adapter: adapter,
		cache:   cache,
		now:     time.Now,
	}
}

func revokedCacheKey(tokenID string) string {
	return "revoked:" + tokenID
}

// Revoke records the token and marks it revoked until it would have expired
func (a *CachedRevokedTokenAdapter) Revoke(ctx context.Context, token *entities.RevokedToken) error {
	if err := a.adapter.Revoke(ctx, token); err != nil {
		return err
	}

	ttl := token.ExpiresAt.Sub(a.now())
	if ttl <= 0 {
		// Already expired; the token verifier rejects it anyway.
		_ = a.cache.Delete(ctx, revokedCacheKey(token.TokenID))
		return nil
	}

	if err := a.cache.Set(ctx, revokedCacheKey(token.TokenID), revokedMarker, ttl); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("token_id", token.TokenID).Msg("failed to cache token revocation")
	}

	return nil
}

// IsRevoked answers from the cache when possible
func (a *CachedRevokedTokenAdapter) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedCacheKey(tokenID)

	cached, err := a.cache.Get(ctx, key)
	switch {
	case err == nil:
		return string(cached) == string(revokedMarker), nil
	case !errors.Is(err, providers.ErrCacheMiss):
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("token_id", tokenID).Msg("revocation cache unavailable")
	}

	revoked, err := a.adapter.IsRevoked(ctx, tokenID)
	if err != nil {
		return false, err
	}

	marker, ttl := notRevokedMarker, notRevokedTTL
	if revoked {
		// The original expiry is unknown here; hold the positive answer for
		// as long as a negative one.
		marker = revokedMarker
	}
	if err := a.cache.Set(ctx, key, marker, ttl); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("token_id", tokenID).Msg("failed to cache revocation lookup")
	}

	return revoked, nil
}
