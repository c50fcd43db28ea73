package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/touristtalks/backend/internal/api/handlers"
	"github.com/touristtalks/backend/internal/application/services"
	"github.com/touristtalks/backend/internal/domain/entities"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, update services.ProfileUpdate) error {
	return m.Called(ctx, update).Error(0)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return m.Called(ctx, userID, currentPassword, newPassword).Error(0)
}

func (m *MockUserService) DeleteAccount(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func TestUserHandler_GetUser_HidesPassword(t *testing.T) {
	svc := new(MockUserService)
	handler := handlers.NewUserHandler(svc)

	svc.On("GetByID", mock.Anything, "u1").Return(&entities.User{
		UserID:       "u1",
		Username:     "ada",
		PasswordHash: "$2a$10$secret-hash",
		LikedReviews: []string{},
	}, nil)

	rec := do("GET /api/users/{user_id}", handler.GetUser, http.MethodGet, "/api/users/u1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ada", body["username"])
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.NotContains(t, body, "password")
	svc.AssertExpectations(t)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "updated",
			body:       `{"user_id":"u1","fullname":"Ada","username":"ada","email":"ada@example.com"}`,
			callsSvc:   true,
			wantStatus: http.StatusOK,
			wantMsg:    "User updated successfully",
		},
		{
			name:       "username taken",
			body:       `{"user_id":"u1","fullname":"Ada","username":"bob","email":"ada@example.com"}`,
			serviceErr: apperrors.NewValidationError(services.MsgUsernameTaken),
			callsSvc:   true,
			wantStatus: http.StatusBadRequest,
			wantMsg:    services.MsgUsernameTaken,
		},
		{
			name:       "no such user",
			body:       `{"user_id":"u404","fullname":"Ada","username":"ada","email":"ada@example.com"}`,
			serviceErr: apperrors.NewNotFoundError("No matching user found"),
			callsSvc:   true,
			wantStatus: http.StatusNotFound,
			wantMsg:    "No matching user found",
		},
		{
			name:       "missing user id",
			body:       `{"username":"ada","email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "user_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			if tt.callsSvc {
				svc.On("UpdateProfile", mock.Anything, mock.AnythingOfType("services.ProfileUpdate")).Return(tt.serviceErr)
			}
			handler := handlers.NewUserHandler(svc)

			rec := do("PUT /api/update-user-profile", handler.UpdateProfile, http.MethodPut, "/api/update-user-profile", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeBody(t, rec)["message"])
			svc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_ChangePassword(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{name: "changed", wantStatus: http.StatusOK, wantMsg: "Password changed successfully"},
		{
			name:       "wrong current password",
			serviceErr: apperrors.NewUnauthorizedError(services.MsgPasswordIncorrect),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    services.MsgPasswordIncorrect,
		},
		{
			name:       "unknown user",
			serviceErr: apperrors.NewNotFoundError("User not found"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			svc.On("ChangePassword", mock.Anything, "u1", "old", "new").Return(tt.serviceErr)
			handler := handlers.NewUserHandler(svc)

			rec := do("PUT /api/change-password", handler.ChangePassword, http.MethodPut, "/api/change-password",
				map[string]string{"user_id": "u1", "current_password": "old", "new_password": "new"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeBody(t, rec)["message"])
			svc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_DeleteAccount(t *testing.T) {
	svc := new(MockUserService)
	handler := handlers.NewUserHandler(svc)
	svc.On("DeleteAccount", mock.Anything, "u1").Return(nil)

	rec := do("DELETE /api/delete-user-account/{user_id}", handler.DeleteAccount, http.MethodDelete, "/api/delete-user-account/u1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", decodeBody(t, rec)["message"])
	svc.AssertExpectations(t)
}
