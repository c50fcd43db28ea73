package entities

// Review is a user-authored rating and comment on a place.
type Review struct {
	ReviewID  string `json:"review_id"`
	PlaceID   int64  `json:"place_id"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
	Rating    Rating `json:"rating"`
	Likes     int    `json:"likes"`
	Timestamp string `json:"timestamp"`
	Edited    bool   `json:"edited"`
}

// EnrichedReview is a review joined with its author's display details and
// the reviewed place's name.
type EnrichedReview struct {
	Review
	UserName         string `json:"user_name"`
	UserProfilePhoto string `json:"user_profile_photo"`
	PlaceName        string `json:"place_name"`
}

// ReviewWithUser is a review carrying its author's public profile.
type ReviewWithUser struct {
	Review
	User PublicUser `json:"user"`
}

// Feedback is a user's reaction to a review.
type Feedback string

const (
	FeedbackLike    Feedback = "Like"
	FeedbackDislike Feedback = "Dislike"
)

// Valid reports whether f is a known reaction.
func (f Feedback) Valid() bool {
	return f == FeedbackLike || f == FeedbackDislike
}
