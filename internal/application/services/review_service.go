package services

import (
	"context"
	"time"

	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

// ReviewService handles business logic for reviews and review feedback
type ReviewService struct {
	reviews repositories.ReviewRepository
	users   repositories.UserRepository
	now     func() time.Time
}

// NewReviewService creates a new review service
func NewReviewService(reviews repositories.ReviewRepository, users repositories.UserRepository) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		users:   users,
		now:     time.Now,
	}
}

// ListEnriched returns every review with author and place details, newest first
func (s *ReviewService) ListEnriched(ctx context.Context) ([]*entities.EnrichedReview, error) {
	return s.reviews.ListEnriched(ctx, "")
}

// ListByUser returns the enriched reviews written by userID
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]*entities.EnrichedReview, error) {
	return s.reviews.ListEnriched(ctx, userID)
}

// ListLikedByUser returns the enriched reviews in the user's liked set
func (s *ReviewService) ListLikedByUser(ctx context.Context, userID string) ([]*entities.EnrichedReview, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.reviews.ListEnriched(ctx, "")
	if err != nil {
		return nil, err
	}

	liked := make([]*entities.EnrichedReview, 0, len(user.LikedReviews))
	for _, review := range all {
		if user.HasLiked(review.ReviewID) {
			liked = append(liked, review)
		}
	}

	return liked, nil
}

// ListByPlace returns the raw reviews for a place
func (s *ReviewService) ListByPlace(ctx context.Context, placeID int64) ([]*entities.Review, error) {
	return s.reviews.ListByPlace(ctx, placeID)
}

// ListByPlaceWithUser returns a place's reviews with each author's public profile
func (s *ReviewService) ListByPlaceWithUser(ctx context.Context, placeID int64) ([]*entities.ReviewWithUser, error) {
	return s.reviews.ListByPlaceWithUser(ctx, placeID)
}

// GetByID retrieves a review by review_id
func (s *ReviewService) GetByID(ctx context.Context, reviewID string) (*entities.Review, error) {
	return s.reviews.GetByID(ctx, reviewID)
}

// Create assigns a fresh review_id and stores the review
func (s *ReviewService) Create(ctx context.Context, review *entities.Review) (string, error) {
	reviewID, err := s.reviews.NextID(ctx)
	if err != nil {
		return "", err
	}

	review.ReviewID = reviewID
	review.Edited = false
	if review.Timestamp == "" {
		review.Timestamp = s.timestamp()
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return "", err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("review_id", reviewID).
		Int64("place_id", review.PlaceID).
		Str("user_id", review.UserID).
		Msg("review created")

	return reviewID, nil
}

// Update replaces a review's text, rating and timestamp and marks it edited
func (s *ReviewService) Update(ctx context.Context, review *entities.Review) error {
	if review.Timestamp == "" {
		review.Timestamp = s.timestamp()
	}
	return s.reviews.Update(ctx, review)
}

// Delete removes a review. Deleting a missing review succeeds.
func (s *ReviewService) Delete(ctx context.Context, reviewID string) error {
	return s.reviews.Delete(ctx, reviewID)
}

// Feedback applies a Like or Dislike from userID to reviewID
func (s *ReviewService) Feedback(ctx context.Context, userID, reviewID string, feedback entities.Feedback) error {
	if !feedback.Valid() {
		return apperrors.NewValidationError("feedback must be Like or Dislike")
	}

	if err := s.reviews.ApplyFeedback(ctx, userID, reviewID, feedback); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("user_id", userID).
		Str("review_id", reviewID).
		Str("feedback", string(feedback)).
		Msg("review feedback applied")

	return nil
}

func (s *ReviewService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
