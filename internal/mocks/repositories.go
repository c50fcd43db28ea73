// Package mocks provides testify mocks for the repository and provider ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/repositories"
)

// TestingT is the subset of *testing.T the constructors need
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPlaceRepository is a mock of repositories.PlaceRepository
type MockPlaceRepository struct {
	mock.Mock
}

// NewMockPlaceRepository creates a mock that asserts its expectations when the test ends
func NewMockPlaceRepository(t TestingT) *MockPlaceRepository {
	m := &MockPlaceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPlaceRepository) NextID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *entities.Place) error {
	return m.Called(ctx, place).Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, placeID int64) (*entities.Place, error) {
	args := m.Called(ctx, placeID)
	place, _ := args.Get(0).(*entities.Place)
	return place, args.Error(1)
}

func (m *MockPlaceRepository) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	args := m.Called(ctx, filter)
	places, _ := args.Get(0).([]*entities.Place)
	return places, args.Error(1)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, placeID int64) error {
	return m.Called(ctx, placeID).Error(0)
}

// MockReviewRepository is a mock of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

// NewMockReviewRepository creates a mock that asserts its expectations when the test ends
func NewMockReviewRepository(t TestingT) *MockReviewRepository {
	m := &MockReviewRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReviewRepository) NextID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, reviewID string) (*entities.Review, error) {
	args := m.Called(ctx, reviewID)
	review, _ := args.Get(0).(*entities.Review)
	return review, args.Error(1)
}

func (m *MockReviewRepository) ListByPlace(ctx context.Context, placeID int64) ([]*entities.Review, error) {
	args := m.Called(ctx, placeID)
	reviews, _ := args.Get(0).([]*entities.Review)
	return reviews, args.Error(1)
}

func (m *MockReviewRepository) ListEnriched(ctx context.Context, userID string) ([]*entities.EnrichedReview, error) {
	args := m.Called(ctx, userID)
	reviews, _ := args.Get(0).([]*entities.EnrichedReview)
	return reviews, args.Error(1)
}

func (m *MockReviewRepository) ListByPlaceWithUser(ctx context.Context, placeID int64) ([]*entities.ReviewWithUser, error) {
	args := m.Called(ctx, placeID)
	reviews, _ := args.Get(0).([]*entities.ReviewWithUser)
	return reviews, args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, reviewID string) error {
	return m.Called(ctx, reviewID).Error(0)
}

func (m *MockReviewRepository) ApplyFeedback(ctx context.Context, userID, reviewID string, feedback entities.Feedback) error {
	return m.Called(ctx, userID, reviewID, feedback).Error(0)
}

// MockUserRepository is a mock of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock that asserts its expectations when the test ends
func NewMockUserRepository(t TestingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) NextID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// MockRevokedTokenRepository is a mock of repositories.RevokedTokenRepository
type MockRevokedTokenRepository struct {
	mock.Mock
}

// NewMockRevokedTokenRepository creates a mock that asserts its expectations when the test ends
func NewMockRevokedTokenRepository(t TestingT) *MockRevokedTokenRepository {
	m := &MockRevokedTokenRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRevokedTokenRepository) Revoke(ctx context.Context, token *entities.RevokedToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRevokedTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

var (
	_ repositories.PlaceRepository        = (*MockPlaceRepository)(nil)
	_ repositories.ReviewRepository       = (*MockReviewRepository)(nil)
	_ repositories.UserRepository         = (*MockUserRepository)(nil)
	_ repositories.RevokedTokenRepository = (*MockRevokedTokenRepository)(nil)
)
