package handlers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/touristtalks/backend/internal/api/middleware"
	"github.com/touristtalks/backend/internal/domain/entities"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

var maxRating = decimal.NewFromInt(5)

// ReviewService is the review behaviour the HTTP layer needs
type ReviewService interface {
	ListEnriched(ctx context.Context) ([]*entities.EnrichedReview, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.EnrichedReview, error)
	ListLikedByUser(ctx context.Context, userID string) ([]*entities.EnrichedReview, error)
	ListByPlace(ctx context.Context, placeID int64) ([]*entities.Review, error)
	ListByPlaceWithUser(ctx context.Context, placeID int64) ([]*entities.ReviewWithUser, error)
	GetByID(ctx context.Context, reviewID string) (*entities.Review, error)
	Create(ctx context.Context, review *entities.Review) (string, error)
	Update(ctx context.Context, review *entities.Review) error
	Delete(ctx context.Context, reviewID string) error
	Feedback(ctx context.Context, userID, reviewID string, feedback entities.Feedback) error
}

// AddReviewRequest is the body of POST /api/add-review
type AddReviewRequest struct {
	PlaceID   int64           `json:"place_id" validate:"required"`
	Text      string          `json:"text"`
	Rating    entities.Rating `json:"rating"`
	UserID    string          `json:"user_id"`
	Likes     int             `json:"likes" validate:"gte=0"`
	Timestamp string          `json:"timestamp"`
}

// UpdateReviewRequest is the body of PUT /api/update-review
type UpdateReviewRequest struct {
	ReviewID  string          `json:"review_id" validate:"required"`
	Text      string          `json:"text"`
	Rating    entities.Rating `json:"rating"`
	Timestamp string          `json:"timestamp"`
}

// FeedbackRequest is the body of PUT /api/user-review-feedback
type FeedbackRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	ReviewID string `json:"review_id" validate:"required"`
	Feedback string `json:"feedback" validate:"required"`
}

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// ListReviews handles GET /api/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListEnriched(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// ListUserReviews handles GET /api/myreviews/{user_id}
func (h *ReviewHandler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListByUser(r.Context(), r.PathValue("user_id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// ListLikedReviews handles GET /api/liked-reviews/{user_id}
func (h *ReviewHandler) ListLikedReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListLikedByUser(r.Context(), r.PathValue("user_id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// ListPlaceReviews handles GET /api/places/{place_id}/reviews
func (h *ReviewHandler) ListPlaceReviews(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathInt64(r, "place_id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	reviews, err := h.service.ListByPlace(r.Context(), placeID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// ListPlaceReviewsWithUser handles GET /api/places/{place_id}/reviews-with-user-details
func (h *ReviewHandler) ListPlaceReviewsWithUser(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathInt64(r, "place_id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	reviews, err := h.service.ListByPlaceWithUser(r.Context(), placeID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// GetReview handles GET /api/reviews/{review_id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetByID(r.Context(), r.PathValue("review_id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// AddReview handles POST /api/add-review. The author defaults to the
// session's user when the body names none.
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req AddReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := checkRating(req.Rating); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	userID := req.UserID
	if userID == "" {
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			userID = claims.UserID
		}
	}

	reviewID, err := h.service.Create(r.Context(), &entities.Review{
		PlaceID:   req.PlaceID,
		UserID:    userID,
		Text:      req.Text,
		Rating:    req.Rating,
		Likes:     req.Likes,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"message":   "Review added successfully",
		"review_id": reviewID,
	})
}

// UpdateReview handles PUT /api/update-review
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req UpdateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := checkRating(req.Rating); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	err := h.service.Update(r.Context(), &entities.Review{
		ReviewID:  req.ReviewID,
		Text:      req.Text,
		Rating:    req.Rating,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusCreated, "Review updated successfully")
}

// DeleteReview handles DELETE /api/delete-review/{review_id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("review_id")); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Review deleted successfully")
}

// ReviewFeedback handles PUT /api/user-review-feedback
func (h *ReviewHandler) ReviewFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	feedback := entities.Feedback(req.Feedback)
	if err := h.service.Feedback(r.Context(), req.UserID, req.ReviewID, feedback); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusOK, "Review "+req.Feedback+" success")
}

func checkRating(rating entities.Rating) error {
	if rating.IsNegative() || rating.GreaterThan(maxRating) {
		return apperrors.NewValidationError("rating must be between 0 and 5")
	}
	return nil
}
