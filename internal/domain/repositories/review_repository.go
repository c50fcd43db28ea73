package repositories

import (
	"context"

	"github.com/touristtalks/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	// NextID reserves a new unique review id
	NextID(ctx context.Context) (string, error)

	// Create stores a new review
	Create(ctx context.Context, review *entities.Review) error

	// GetByID retrieves a review by review_id
	GetByID(ctx context.Context, reviewID string) (*entities.Review, error)

	// ListByPlace retrieves the raw reviews for a place
	ListByPlace(ctx context.Context, placeID int64) ([]*entities.Review, error)

	// ListEnriched joins reviews with their author and place, newest first.
	// Reviews whose user or place no longer exists are left out. An empty
	// userID lists every review.
	ListEnriched(ctx context.Context, userID string) ([]*entities.EnrichedReview, error)

	// ListByPlaceWithUser joins a place's reviews with their authors
	ListByPlaceWithUser(ctx context.Context, placeID int64) ([]*entities.ReviewWithUser, error)

	// Update replaces text, rating and timestamp and marks the review edited
	Update(ctx context.Context, review *entities.Review) error

	// Delete removes a review; deleting a missing review is not an error
	Delete(ctx context.Context, reviewID string) error

	// ApplyFeedback records a like or dislike from userID on reviewID. The
	// user's liked set and the review's like counter change together or not
	// at all.
	ApplyFeedback(ctx context.Context, userID, reviewID string, feedback entities.Feedback) error
}
