package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/touristtalks/backend/internal/api/handlers"
	"github.com/touristtalks/backend/internal/api/middleware"
	"github.com/touristtalks/backend/internal/api/routes"
	"github.com/touristtalks/backend/internal/application/services"
	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/infrastructure/security"
	"github.com/touristtalks/backend/internal/mocks"
	"github.com/touristtalks/backend/pkg/config"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

type healthyDB struct{}

func (healthyDB) Ping(context.Context) error { return nil }

func notFound() error {
	return apperrors.NewNotFoundError("User not found")
}

type routerFixture struct {
	handler http.Handler
	tokens  *security.JWTIssuer
	places  *mocks.MockPlaceRepository
	reviews *mocks.MockReviewRepository
	users   *mocks.MockUserRepository
}

func newRouterFixture(t *testing.T, rateLimit config.RateLimitConfig) routerFixture {
	tokens, err := security.NewJWTIssuer("router-test-secret", time.Hour)
	require.NoError(t, err)

	f := routerFixture{
		tokens:  tokens,
		places:  mocks.NewMockPlaceRepository(t),
		reviews: mocks.NewMockReviewRepository(t),
		users:   mocks.NewMockUserRepository(t),
	}
	revoked := mocks.NewMockRevokedTokenRepository(t)
	hasher := security.NewBcryptHasher(4)

	authService := services.NewAuthService(f.users, revoked, hasher, tokens, false)
	userService := services.NewUserService(f.users, hasher)

	router := routes.NewRouter(
		handlers.NewHealthHandler(healthyDB{}),
		handlers.NewPlaceHandler(services.NewPlaceService(f.places)),
		handlers.NewReviewHandler(services.NewReviewService(f.reviews, f.users)),
		handlers.NewUserHandler(userService),
		handlers.NewAuthHandler(authService, userService),
		middleware.NewAuthGuard(authService, nil),
		nil,
		[]string{"*"},
		rateLimit,
	)
	f.handler = router.SetupRoutes()
	return f
}

func (f routerFixture) token(t *testing.T, userID, role string) string {
	token, _, err := f.tokens.Issue(userID, userID+"-name", role)
	require.NoError(t, err)
	return token
}

func (f routerFixture) serve(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestRouter_PublicEndpoints(t *testing.T) {
	f := newRouterFixture(t, config.RateLimitConfig{})
	f.reviews.On("ListByPlace", mock.Anything, int64(4)).Return([]*entities.Review{}, nil)

	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/api/server_connectivity", "", "").Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/api/db_connectivity", "", "").Code)

	rec := f.serve(http.MethodGet, "/api/places/4/reviews", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_UserEndpointsNeedToken(t *testing.T) {
	f := newRouterFixture(t, config.RateLimitConfig{})

	protected := []struct{ method, target string }{
		{http.MethodGet, "/api/places"},
		{http.MethodGet, "/api/reviews"},
		{http.MethodGet, "/api/myreviews/u1"},
		{http.MethodGet, "/api/liked-reviews/u1"},
		{http.MethodGet, "/api/users/u1"},
		{http.MethodGet, "/api/reviews/r1"},
		{http.MethodGet, "/api/places/1/reviews-with-user-details"},
		{http.MethodGet, "/api/place/1"},
		{http.MethodPost, "/api/add-review"},
		{http.MethodDelete, "/api/delete-review/r1"},
		{http.MethodPut, "/api/update-review"},
		{http.MethodPut, "/api/user-review-feedback"},
		{http.MethodPost, "/api/add-place"},
		{http.MethodDelete, "/api/delete-place/1"},
		{http.MethodPut, "/api/update-user-profile"},
		{http.MethodPut, "/api/change-password"},
		{http.MethodDelete, "/api/delete-user-account/u1"},
		{http.MethodGet, "/api/logout"},
		{http.MethodGet, "/api/logged-in-user"},
	}

	for _, p := range protected {
		t.Run(p.method+" "+p.target, func(t *testing.T) {
			rec := f.serve(p.method, p.target, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Token is missing", message(t, rec))
		})
	}
}

func TestRouter_InvalidToken(t *testing.T) {
	f := newRouterFixture(t, config.RateLimitConfig{})

	rec := f.serve(http.MethodGet, "/api/places", "not.a.jwt", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Token is invalid", body["message"])
	assert.NotEmpty(t, body["error"])
}

func TestRouter_AuthenticatedRead(t *testing.T) {
	f := newRouterFixture(t, config.RateLimitConfig{})
	f.places.On("List", mock.Anything, mock.Anything).Return([]*entities.Place{{PlaceID: 1, SiteName: "Castle"}}, nil)

	rec := f.serve(http.MethodGet, "/api/places?sort=site_name", f.token(t, "u1", "user"), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"site_name":"Castle"`)
}

func TestRouter_AdminGate(t *testing.T) {
	f := newRouterFixture(t, config.RateLimitConfig{})
	f.users.On("GetByID", mock.Anything, "u1").Return(&entities.User{UserID: "u1", Role: entities.RoleUser}, nil)
	f.users.On("GetByID", mock.Anything, "u9").Return(&entities.User{UserID: "u9", Role: entities.RoleAdmin}, nil)
	f.places.On("Delete", mock.Anything, int64(3)).Return(nil)

	rec := f.serve(http.MethodDelete, "/api/delete-place/3", f.token(t, "u1", "user"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, services.MsgNotAuthorized, message(t, rec))

	// A stale admin claim is not enough; the stored role decides
	rec = f.serve(http.MethodDelete, "/api/delete-place/3", f.token(t, "u1", "admin"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.serve(http.MethodDelete, "/api/delete-place/3", f.token(t, "u9", "admin"), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Place deleted successfully", message(t, rec))
}

func TestRouter_Preflight(t *testing.T) {
	f := newRouterFixture(t, config.RateLimitConfig{})

	req := httptest.NewRequest(http.MethodOptions, "/api/add-review", nil)
	req.Header.Set("Origin", "https://touristtalks.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "x-access-token")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestIDOnEveryResponse(t *testing.T) {
	f := newRouterFixture(t, config.RateLimitConfig{})

	rec := f.serve(http.MethodGet, "/api/places", "", "")

	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	f := newRouterFixture(t, config.RateLimitConfig{Enabled: true, Requests: 1, Window: time.Minute})
	f.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, notFound())
	f.users.On("GetByEmail", mock.Anything, "ghost").Return(nil, notFound())

	body := `{"username":"ghost","password":"x"}`
	first := f.serve(http.MethodPost, "/api/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, first.Code)
	assert.Equal(t, services.MsgBadCredentials, message(t, first))

	second := f.serve(http.MethodPost, "/api/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
