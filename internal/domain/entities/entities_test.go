package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touristtalks/backend/internal/domain/entities"
)

func TestRating_RendersAsNumber(t *testing.T) {
	review := entities.Review{ReviewID: "r1", Rating: entities.NewRating(4.5)}

	data, err := json.Marshal(review)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 4.5, decoded["rating"])
}

func TestRating_AcceptsNumberOrString(t *testing.T) {
	var fromNumber, fromString entities.Review
	require.NoError(t, json.Unmarshal([]byte(`{"rating": 3.7}`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`{"rating": "3.7"}`), &fromString))

	assert.Equal(t, "3.7", fromNumber.Rating.String())
	assert.True(t, fromNumber.Rating.Equal(fromString.Rating.Decimal))
	assert.Equal(t, 3.7, fromNumber.Rating.Float64())

	var bad entities.Review
	assert.Error(t, json.Unmarshal([]byte(`{"rating": "great"}`), &bad))
}

func TestEnrichedReview_FlattensReviewFields(t *testing.T) {
	enriched := entities.EnrichedReview{
		Review:    entities.Review{ReviewID: "r7", PlaceID: 3, UserID: "u1", Rating: entities.NewRating(5)},
		UserName:  "Ada Lovelace",
		PlaceName: "Castle",
	}

	data, err := json.Marshal(enriched)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "r7", decoded["review_id"])
	assert.Equal(t, "Ada Lovelace", decoded["user_name"])
	assert.Equal(t, "Castle", decoded["place_name"])
	assert.Equal(t, float64(5), decoded["rating"])
}

func TestUser_NeverSerialisesPassword(t *testing.T) {
	user := entities.User{UserID: "u1", Username: "ada", PasswordHash: "$2a$12$secret"}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestUser_Public(t *testing.T) {
	user := entities.User{
		UserID:       "u1",
		Username:     "ada",
		Email:        "ada@example.com",
		Fullname:     "Ada L",
		PasswordHash: "$2a$12$secret",
		Role:         entities.RoleUser,
		ProfilePhoto: "ada.png",
		LikedReviews: []string{"r1"},
	}

	data, err := json.Marshal(user.Public())
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"u1","username":"ada","fullname":"Ada L","role":"user","profile_photo":"ada.png"}`, string(data))
}

func TestUser_HasLiked(t *testing.T) {
	user := entities.User{LikedReviews: []string{"r1", "r2"}}

	assert.True(t, user.HasLiked("r2"))
	assert.False(t, user.HasLiked("r3"))
}

func TestParsePlaceSort(t *testing.T) {
	assert.Equal(t, entities.PlaceSortName, entities.ParsePlaceSort("site_name"))
	assert.Equal(t, entities.PlaceSortRating, entities.ParsePlaceSort("rating"))
	assert.Equal(t, entities.PlaceSortNone, entities.ParsePlaceSort("popularity"))
}

func TestFeedback_Valid(t *testing.T) {
	assert.True(t, entities.FeedbackLike.Valid())
	assert.True(t, entities.FeedbackDislike.Valid())
	assert.False(t, entities.Feedback("Love").Valid())
}
