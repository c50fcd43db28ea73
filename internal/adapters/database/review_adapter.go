package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/clients/postgres"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

var reviewColumns = []interface{}{
	goqu.I("r.review_id"), goqu.I("r.place_id"), goqu.I("r.user_id"), goqu.I("r.text"),
	goqu.I("r.rating"), goqu.I("r.likes"), goqu.I("r.timestamp"), goqu.I("r.edited"),
}

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// NextID reserves a new review id of the form "r<digits>"
func (a *ReviewAdapter) NextID(ctx context.Context) (string, error) {
	next, err := nextSequenceValue(ctx, a.client, "review_id_seq")
	if err != nil {
		return "", err
	}
	return "r" + strconv.FormatInt(next, 10), nil
}

// Create stores a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	if review == nil {
		return apperrors.NewInternalError("review is nil", fmt.Errorf("review is nil"))
	}

	record := goqu.Record{
		"review_id": review.ReviewID,
		"place_id":  review.PlaceID,
		"user_id":   review.UserID,
		"text":      review.Text,
		"rating":    review.Rating.String(),
		"likes":     review.Likes,
		"timestamp": review.Timestamp,
		"edited":    review.Edited,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return translateWriteError(err, "failed to create review")
	}

	return nil
}

// GetByID retrieves a review by review_id
func (a *ReviewAdapter) GetByID(ctx context.Context, reviewID string) (*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).
		From(goqu.T("reviews").As("r")).
		Where(goqu.Ex{"r.review_id": reviewID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	review := &entities.Review{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(reviewDest(review)...)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("Review not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}

	return review, nil
}

// ListByPlace retrieves the raw reviews for a place
func (a *ReviewAdapter) ListByPlace(ctx context.Context, placeID int64) ([]*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).
		From(goqu.T("reviews").As("r")).
		Where(goqu.Ex{"r.place_id": placeID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := make([]*entities.Review, 0)
	for rows.Next() {
		review := &entities.Review{}
		if err := rows.Scan(reviewDest(review)...); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}

	return reviews, nil
}

// ListEnriched joins reviews with users and places, newest first
func (a *ReviewAdapter) ListEnriched(ctx context.Context, userID string) ([]*entities.EnrichedReview, error) {
	columns := append(append([]interface{}{}, reviewColumns...),
		goqu.I("u.fullname"), goqu.I("u.profile_photo"), goqu.I("p.site_name"),
	)

	ds := a.db.Select(columns...).
		From(goqu.T("reviews").As("r")).
		Join(
			goqu.T("users").As("u"),
			goqu.On(goqu.I("u.user_id").Eq(goqu.I("r.user_id"))),
		).
		Join(
			goqu.T("places").As("p"),
			goqu.On(goqu.I("p.place_id").Eq(goqu.I("r.place_id"))),
		)

	if userID != "" {
		ds = ds.Where(goqu.Ex{"r.user_id": userID})
	}

	query, args, err := ds.Order(goqu.I("r.timestamp").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := make([]*entities.EnrichedReview, 0)
	for rows.Next() {
		enriched := &entities.EnrichedReview{}
		dest := append(reviewDest(&enriched.Review),
			&enriched.UserName, &enriched.UserProfilePhoto, &enriched.PlaceName,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, enriched)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}

	return reviews, nil
}

// ListByPlaceWithUser joins a place's reviews with their authors
func (a *ReviewAdapter) ListByPlaceWithUser(ctx context.Context, placeID int64) ([]*entities.ReviewWithUser, error) {
	columns := append(append([]interface{}{}, reviewColumns...),
		goqu.I("u.user_id"), goqu.I("u.username"), goqu.I("u.fullname"),
		goqu.I("u.role"), goqu.I("u.profile_photo"),
	)

	query, args, err := a.db.Select(columns...).
		From(goqu.T("reviews").As("r")).
		Join(
			goqu.T("users").As("u"),
			goqu.On(goqu.I("u.user_id").Eq(goqu.I("r.user_id"))),
		).
		Where(goqu.Ex{"r.place_id": placeID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := make([]*entities.ReviewWithUser, 0)
	for rows.Next() {
		item := &entities.ReviewWithUser{}
		var author entities.User
		dest := append(reviewDest(&item.Review),
			&author.UserID, &author.Username, &author.Fullname,
			&author.Role, &author.ProfilePhoto,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		item.User = author.Public()
		reviews = append(reviews, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}

	return reviews, nil
}

// Update replaces text, rating and timestamp and marks the review edited
func (a *ReviewAdapter) Update(ctx context.Context, review *entities.Review) error {
	query, args, err := a.db.Update("reviews").
		Set(goqu.Record{
			"text":      review.Text,
			"rating":    review.Rating.String(),
			"timestamp": review.Timestamp,
			"edited":    true,
		}).
		Where(goqu.Ex{"review_id": review.ReviewID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update review", err)
	}

	if err := requireAffected(result, "No matching review found"); err != nil {
		return err
	}

	review.Edited = true
	return nil
}

// Delete removes a review
func (a *ReviewAdapter) Delete(ctx context.Context, reviewID string) error {
	query, args, err := a.db.Delete("reviews").
		Where(goqu.Ex{"review_id": reviewID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}

	return nil
}

// ApplyFeedback toggles reviewID in the user's liked set and moves the
// review's like counter by one, inside a single transaction. The user row is
// locked so concurrent reactions from the same user serialise.
func (a *ReviewAdapter) ApplyFeedback(ctx context.Context, userID, reviewID string, feedback entities.Feedback) (err error) {
	failed := apperrors.NewValidationError("Review " + string(feedback) + " failed")

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				observability.LoggerFromContext(ctx).Error().Err(rbErr).Str("review_id", reviewID).Msg("failed to roll back review feedback")
			}
		}
	}()

	lockQuery, lockArgs, err := a.db.Select("liked_reviews").
		From("users").
		Where(goqu.Ex{"user_id": userID}).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build query", err)
	}

	var liked []string
	err = tx.QueryRowContext(ctx, lockQuery, lockArgs...).Scan(pq.Array(&liked))
	if err == sql.ErrNoRows {
		return apperrors.NewNotFoundError("User not found")
	}
	if err != nil {
		return apperrors.NewInternalError("failed to load liked reviews", err)
	}

	user := entities.User{LikedReviews: liked}
	var setExpr exp.LiteralExpression
	var delta int
	switch {
	case feedback == entities.FeedbackLike && !user.HasLiked(reviewID):
		setExpr = goqu.L(`array_append("liked_reviews", ?)`, reviewID)
		delta = 1
	case feedback == entities.FeedbackDislike && user.HasLiked(reviewID):
		setExpr = goqu.L(`array_remove("liked_reviews", ?)`, reviewID)
		delta = -1
	default:
		return failed
	}

	counterQuery, counterArgs, err := a.db.Update("reviews").
		Set(goqu.Record{"likes": goqu.L(`"likes" + ?`, delta)}).
		Where(goqu.Ex{"review_id": reviewID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := tx.ExecContext(ctx, counterQuery, counterArgs...)
	if err != nil {
		return apperrors.NewInternalError("failed to update review likes", err)
	}
	if err = requireAffected(result, "Review not found"); err != nil {
		return err
	}

	setQuery, setArgs, err := a.db.Update("users").
		Set(goqu.Record{"liked_reviews": setExpr}).
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	if _, err = tx.ExecContext(ctx, setQuery, setArgs...); err != nil {
		return apperrors.NewInternalError("failed to update liked reviews", err)
	}

	if err = tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit review feedback", err)
	}

	return nil
}

func reviewDest(review *entities.Review) []interface{} {
	return []interface{}{
		&review.ReviewID,
		&review.PlaceID,
		&review.UserID,
		&review.Text,
		&review.Rating,
		&review.Likes,
		&review.Timestamp,
		&review.Edited,
	}
}
