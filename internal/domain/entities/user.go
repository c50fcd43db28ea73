package entities

import (
	"time"
)

// Roles a user account can hold
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account. The password hash never leaves the service.
type User struct {
	UserID       string   `json:"user_id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Fullname     string   `json:"fullname"`
	PasswordHash string   `json:"-"`
	Role         string   `json:"role"`
	ProfilePhoto string   `json:"profile_photo"`
	LikedReviews []string `json:"liked_reviews"`
}

// IsAdmin reports whether the account holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasLiked reports whether reviewID is in the user's liked set
func (u *User) HasLiked(reviewID string) bool {
	for _, id := range u.LikedReviews {
		if id == reviewID {
			return true
		}
	}
	return false
}

// Public returns the profile fields shown next to a user's reviews
func (u *User) Public() PublicUser {
	return PublicUser{
		UserID:       u.UserID,
		Username:     u.Username,
		Fullname:     u.Fullname,
		Role:         u.Role,
		ProfilePhoto: u.ProfilePhoto,
	}
}

// PublicUser is the subset of a user shown alongside their reviews
type PublicUser struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Fullname     string `json:"fullname"`
	Role         string `json:"role"`
	ProfilePhoto string `json:"profile_photo"`
}

// RevokedToken records a session token presented at logout
type RevokedToken struct {
	TokenID   string    `json:"token_id"`
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	RevokedAt time.Time `json:"revoked_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
