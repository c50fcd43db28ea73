package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/touristtalks/backend/internal/domain/providers"
)

// MockPasswordHasher is a mock of providers.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock that asserts its expectations when the test ends
func NewMockPasswordHasher(t TestingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

// MockTokenIssuer is a mock of providers.TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

// NewMockTokenIssuer creates a mock that asserts its expectations when the test ends
func NewMockTokenIssuer(t TestingT) *MockTokenIssuer {
	m := &MockTokenIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTokenIssuer) Issue(userID, username, role string) (string, *providers.TokenClaims, error) {
	args := m.Called(userID, username, role)
	claims, _ := args.Get(1).(*providers.TokenClaims)
	return args.String(0), claims, args.Error(2)
}

func (m *MockTokenIssuer) Verify(token string) (*providers.TokenClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*providers.TokenClaims)
	return claims, args.Error(1)
}

var (
	_ providers.PasswordHasher = (*MockPasswordHasher)(nil)
	_ providers.TokenIssuer    = (*MockTokenIssuer)(nil)
)
