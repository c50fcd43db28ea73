package handlers

import (
	"context"
	"net/http"

	"github.com/touristtalks/backend/internal/api/middleware"
	"github.com/touristtalks/backend/internal/application/services"
	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/providers"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

// AuthService is the session behaviour the HTTP layer needs
type AuthService interface {
	Signup(ctx context.Context, input services.SignupInput) (string, error)
	Login(ctx context.Context, identifier, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, token string, claims *providers.TokenClaims) error
}

// UserLookup resolves a user by user_id
type UserLookup interface {
	GetByID(ctx context.Context, userID string) (*entities.User, error)
}

// SignupRequest is the body of POST /api/signup
type SignupRequest struct {
	Username     string `json:"username" validate:"required"`
	Fullname     string `json:"fullname"`
	Password     string `json:"password"`
	Email        string `json:"email" validate:"required,email"`
	Role         string `json:"role" validate:"omitempty,oneof=admin user"`
	ProfilePhoto string `json:"profile_photo"`
}

// LoginRequest is the body of POST /api/login. Username may also hold an
// email address. Blank fields fail like wrong ones.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoggedInUserResponse is the profile returned by GET /api/logged-in-user
type LoggedInUserResponse struct {
	ID           string   `json:"id"`
	Fullname     string   `json:"fullname"`
	UserID       string   `json:"user_id"`
	Username     string   `json:"username"`
	Places       []string `json:"places"`
	Role         string   `json:"role"`
	Email        string   `json:"email"`
	ProfilePhoto string   `json:"profile_photo"`
	LikedReviews []string `json:"liked_reviews"`
}

// AuthHandler handles signup, login and session endpoints
type AuthHandler struct {
	auth  AuthService
	users UserLookup
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService, users UserLookup) *AuthHandler {
	return &AuthHandler{
		auth:  auth,
		users: users,
	}
}

// Signup handles POST /api/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	userID, err := h.auth.Signup(r.Context(), services.SignupInput{
		Username:     req.Username,
		Fullname:     req.Fullname,
		Password:     req.Password,
		Email:        req.Email,
		Role:         req.Role,
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "user created successfully!",
		"user_id": userID,
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Logout handles GET /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithAppError(w, r, apperrors.NewUnauthenticatedError("Token is missing"))
		return
	}

	if err := h.auth.Logout(r.Context(), middleware.TokenFromContext(r.Context()), claims); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusOK, "Logout successful")
}

// LoggedInUser handles GET /api/logged-in-user
func (h *AuthHandler) LoggedInUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithAppError(w, r, apperrors.NewUnauthenticatedError("Token is missing"))
		return
	}

	user, err := h.users.GetByID(r.Context(), claims.UserID)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		respondWithMessage(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, LoggedInUserResponse{
		ID:           user.UserID,
		Fullname:     user.Fullname,
		UserID:       user.UserID,
		Username:     user.Username,
		Places:       []string{},
		Role:         user.Role,
		Email:        user.Email,
		ProfilePhoto: user.ProfilePhoto,
		LikedReviews: user.LikedReviews,
	})
}
