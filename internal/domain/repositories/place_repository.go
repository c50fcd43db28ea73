package repositories

import (
	"context"

	"github.com/touristtalks/backend/internal/domain/entities"
)

// PlaceFilter narrows a place listing. Zero values impose no constraint.
type PlaceFilter struct {
	// Categories must all be present on a matching place.
	Categories []string
	// Search is a case-insensitive substring of the site name.
	Search string
	Sort   entities.PlaceSort
}

// PlaceRepository defines the interface for place data operations
type PlaceRepository interface {
	// NextID reserves a new unique place id
	NextID(ctx context.Context) (int64, error)

	// Create stores a new place
	Create(ctx context.Context, place *entities.Place) error

	// GetByID retrieves a place by its place_id
	GetByID(ctx context.Context, placeID int64) (*entities.Place, error)

	// List retrieves places matching the filter
	List(ctx context.Context, filter PlaceFilter) ([]*entities.Place, error)

	// Delete removes a place; deleting a missing place is not an error
	Delete(ctx context.Context, placeID int64) error
}
