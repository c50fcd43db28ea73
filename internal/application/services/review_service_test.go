package services_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/touristtalks/backend/internal/application/services"
	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/mocks"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

func enriched(id string) *entities.EnrichedReview {
	return &entities.EnrichedReview{Review: entities.Review{ReviewID: id}}
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	reviews := mocks.NewMockReviewRepository(t)
	service := services.NewReviewService(reviews, mocks.NewMockUserRepository(t))

	reviews.On("NextID", ctx).Return("r1042", nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*entities.Review")).Return(nil)

	review := &entities.Review{
		PlaceID:   1,
		UserID:    "u1",
		Text:      "Great",
		Rating:    entities.NewRating(4.5),
		Timestamp: "2024-01-01",
		Edited:    true,
	}
	id, err := service.Create(ctx, review)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^r\d+$`), id)
	assert.Equal(t, "r1042", review.ReviewID)
	assert.False(t, review.Edited)
	assert.Equal(t, "2024-01-01", review.Timestamp)
	assert.Equal(t, 4.5, review.Rating.Float64())
}

func TestReviewService_CreateStampsMissingTimestamp(t *testing.T) {
	ctx := context.Background()
	reviews := mocks.NewMockReviewRepository(t)
	service := services.NewReviewService(reviews, mocks.NewMockUserRepository(t))

	reviews.On("NextID", ctx).Return("r1", nil)
	reviews.On("Create", ctx, mock.MatchedBy(func(r *entities.Review) bool {
		return r.Timestamp != ""
	})).Return(nil)

	_, err := service.Create(ctx, &entities.Review{PlaceID: 1, UserID: "u1"})
	require.NoError(t, err)
}

func TestReviewService_ListLikedByUser(t *testing.T) {
	ctx := context.Background()
	reviews := mocks.NewMockReviewRepository(t)
	users := mocks.NewMockUserRepository(t)
	service := services.NewReviewService(reviews, users)

	users.On("GetByID", ctx, "u1").Return(&entities.User{UserID: "u1", LikedReviews: []string{"r2", "r9"}}, nil)
	reviews.On("ListEnriched", ctx, "").Return([]*entities.EnrichedReview{
		enriched("r3"), enriched("r2"), enriched("r1"),
	}, nil)

	liked, err := service.ListLikedByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, "r2", liked[0].ReviewID)
}

func TestReviewService_ListLikedByUser_UnknownUser(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserRepository(t)
	service := services.NewReviewService(mocks.NewMockReviewRepository(t), users)

	users.On("GetByID", ctx, "u404").Return(nil, apperrors.NewNotFoundError("User not found"))

	_, err := service.ListLikedByUser(ctx, "u404")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestReviewService_ListByUserFiltersInStore(t *testing.T) {
	ctx := context.Background()
	reviews := mocks.NewMockReviewRepository(t)
	service := services.NewReviewService(reviews, mocks.NewMockUserRepository(t))

	reviews.On("ListEnriched", ctx, "u7").Return([]*entities.EnrichedReview{enriched("r5")}, nil)

	mine, err := service.ListByUser(ctx, "u7")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestReviewService_Feedback(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown feedback without touching the store", func(t *testing.T) {
		reviews := mocks.NewMockReviewRepository(t)
		service := services.NewReviewService(reviews, mocks.NewMockUserRepository(t))

		err := service.Feedback(ctx, "u1", "r1", entities.Feedback("Love"))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("delegates valid feedback", func(t *testing.T) {
		reviews := mocks.NewMockReviewRepository(t)
		service := services.NewReviewService(reviews, mocks.NewMockUserRepository(t))

		reviews.On("ApplyFeedback", ctx, "u1", "r1", entities.FeedbackLike).Return(nil).Once()
		reviews.On("ApplyFeedback", ctx, "u1", "r1", entities.FeedbackLike).
			Return(apperrors.NewValidationError("Review Like failed")).Once()

		require.NoError(t, service.Feedback(ctx, "u1", "r1", entities.FeedbackLike))

		err := service.Feedback(ctx, "u1", "r1", entities.FeedbackLike)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "Review Like failed", appErr.Message)
	})
}

func TestReviewService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	reviews := mocks.NewMockReviewRepository(t)
	service := services.NewReviewService(reviews, mocks.NewMockUserRepository(t))

	review := &entities.Review{ReviewID: "r404", Text: "x", Timestamp: "2024-02-02"}
	reviews.On("Update", ctx, review).Return(apperrors.NewNotFoundError("No matching review found"))
	reviews.On("Delete", ctx, "r404").Return(nil)

	err := service.Update(ctx, review)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, service.Delete(ctx, "r404"))
}
