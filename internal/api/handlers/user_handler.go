package handlers

import (
	"context"
	"net/http"

	"github.com/touristtalks/backend/internal/application/services"
	"github.com/touristtalks/backend/internal/domain/entities"
)

// UserService is the account behaviour the HTTP layer needs
type UserService interface {
	GetByID(ctx context.Context, userID string) (*entities.User, error)
	UpdateProfile(ctx context.Context, update services.ProfileUpdate) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID string) error
}

// UpdateProfileRequest is the body of PUT /api/update-user-profile
type UpdateProfileRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	Fullname     string `json:"fullname"`
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	ProfilePhoto string `json:"profile_photo"`
}

// ChangePasswordRequest is the body of PUT /api/change-password
type ChangePasswordRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserHandler handles account endpoints
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// GetUser handles GET /api/users/{user_id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), r.PathValue("user_id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/update-user-profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	err := h.service.UpdateProfile(r.Context(), services.ProfileUpdate{
		UserID:       req.UserID,
		Fullname:     req.Fullname,
		Username:     req.Username,
		Email:        req.Email,
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusOK, "User updated successfully")
}

// ChangePassword handles PUT /api/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), req.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusOK, "Password changed successfully")
}

// DeleteAccount handles DELETE /api/delete-user-account/{user_id}
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAccount(r.Context(), r.PathValue("user_id")); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusOK, "User deleted successfully")
}
