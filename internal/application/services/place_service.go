package services

import (
	"context"

	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
)

// PlaceService handles business logic for places
type PlaceService struct {
	repo repositories.PlaceRepository
}

// NewPlaceService creates a new place service
func NewPlaceService(repo repositories.PlaceRepository) *PlaceService {
	return &PlaceService{
		repo: repo,
	}
}

// List returns the places matching every filter that is set
func (s *PlaceService) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	return s.repo.List(ctx, filter)
}

// GetByID retrieves a place by place_id
func (s *PlaceService) GetByID(ctx context.Context, placeID int64) (*entities.Place, error) {
	return s.repo.GetByID(ctx, placeID)
}

// Create assigns a fresh place_id (mirrored into location_id) and stores the place
func (s *PlaceService) Create(ctx context.Context, place *entities.Place) (int64, error) {
	placeID, err := s.repo.NextID(ctx)
	if err != nil {
		return 0, err
	}

	place.PlaceID = placeID
	place.LocationID = placeID

	if err := s.repo.Create(ctx, place); err != nil {
		return 0, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("place_id", placeID).
		Str("site_name", place.SiteName).
		Msg("place created")

	return placeID, nil
}

// Delete removes a place. Deleting a missing place succeeds.
func (s *PlaceService) Delete(ctx context.Context, placeID int64) error {
	if err := s.repo.Delete(ctx, placeID); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().Int64("place_id", placeID).Msg("place deleted")
	return nil
}
