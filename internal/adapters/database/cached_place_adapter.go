package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/providers"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

// placeByIDTTL bounds how long a single place stays cached
const placeByIDTTL = 5 * time.Minute

// deletedPlaceTTL outlives any entry written by a read that raced a delete
const deletedPlaceTTL = 2 * placeByIDTTL

// CachedPlaceAdapter wraps a PlaceRepository with a read-through cache for
// single place lookups. Listings always go to the database.
type CachedPlaceAdapter struct {
	adapter repositories.PlaceRepository
	cache   providers.CacheProvider
}

// NewCachedPlaceAdapter creates a new cached place adapter
func NewCachedPlaceAdapter(adapter repositories.PlaceRepository, cache providers.CacheProvider) repositories.PlaceRepository {
	return &CachedPlaceAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

func placeCacheKey(placeID int64) string {
	return fmt.Sprintf("place:%d", placeID)
}

// deletedPlaceKey marks a deleted place. Place ids are never reused, so a
// marked id is gone for good.
func deletedPlaceKey(placeID int64) string {
	return fmt.Sprintf("place:%d:deleted", placeID)
}

// NextID reserves a new place id
func (a *CachedPlaceAdapter) NextID(ctx context.Context) (int64, error) {
	return a.adapter.NextID(ctx)
}

// Create stores a new place
func (a *CachedPlaceAdapter) Create(ctx context.Context, place *entities.Place) error {
	return a.adapter.Create(ctx, place)
}

// GetByID retrieves a place by place_id with caching
func (a *CachedPlaceAdapter) GetByID(ctx context.Context, placeID int64) (*entities.Place, error) {
	if deleted, err := a.cache.Exists(ctx, deletedPlaceKey(placeID)); err == nil && deleted {
		return nil, apperrors.NewNotFoundError("Place not found")
	}

	cacheKey := placeCacheKey(placeID)
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var place entities.Place
		if err := json.Unmarshal(cached, &place); err == nil {
			return &place, nil
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Int64("place_id", placeID).Msg("discarding unreadable cached place")
	}

	place, err := a.adapter.GetByID(ctx, placeID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(place); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, placeByIDTTL); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Int64("place_id", placeID).Msg("failed to cache place")
		}
	}

	return place, nil
}

// List retrieves places from the database
func (a *CachedPlaceAdapter) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	return a.adapter.List(ctx, filter)
}

// Delete removes a place, marks it deleted and evicts its cache entry
func (a *CachedPlaceAdapter) Delete(ctx context.Context, placeID int64) error {
	if err := a.adapter.Delete(ctx, placeID); err != nil {
		return err
	}

	if err := a.cache.Set(ctx, deletedPlaceKey(placeID), []byte("1"), deletedPlaceTTL); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Int64("place_id", placeID).Msg("failed to mark place deleted")
	}

	if err := a.cache.Delete(ctx, placeCacheKey(placeID)); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Int64("place_id", placeID).Msg("failed to evict cached place")
	}

	return nil
}
