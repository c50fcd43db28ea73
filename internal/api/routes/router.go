package routes

import (
	"net/http"

	"github.com/touristtalks/backend/internal/api/handlers"
	"github.com/touristtalks/backend/internal/api/middleware"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	"github.com/touristtalks/backend/pkg/config"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	healthHandler *handlers.HealthHandler
	placeHandler  *handlers.PlaceHandler
	reviewHandler *handlers.ReviewHandler
	userHandler   *handlers.UserHandler
	authHandler   *handlers.AuthHandler

	guard   *middleware.AuthGuard
	metrics *observability.Metrics

	allowedOrigins []string
	rateLimit      config.RateLimitConfig
}

// NewRouter creates a new router
func NewRouter(
	healthHandler *handlers.HealthHandler,
	placeHandler *handlers.PlaceHandler,
	reviewHandler *handlers.ReviewHandler,
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	guard *middleware.AuthGuard,
	metrics *observability.Metrics,
	allowedOrigins []string,
	rateLimit config.RateLimitConfig,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		healthHandler: healthHandler,
		placeHandler:  placeHandler,
		reviewHandler: reviewHandler,
		userHandler:   userHandler,
		authHandler:   authHandler,

		guard:   guard,
		metrics: metrics,

		allowedOrigins: allowedOrigins,
		rateLimit:      rateLimit,
	}
}

// user registers a handler behind the authenticated gate
func (r *Router) user(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, r.guard.RequireAuth(h))
}

// admin registers a handler behind the admin-only gate
func (r *Router) admin(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, r.guard.RequireAdmin(h))
}

// public registers a handler that needs no session
func (r *Router) public(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// throttled registers a public handler behind the per-IP rate limit
func (r *Router) throttled(pattern string, h http.HandlerFunc) {
	if !r.rateLimit.Enabled {
		r.public(pattern, h)
		return
	}
	r.mux.Handle(pattern, middleware.RateLimitByIP(r.rateLimit.Requests, r.rateLimit.Window)(h))
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Liveness
	r.public("GET /health", r.healthHandler.Health)
	r.public("GET /api/db_connectivity", r.healthHandler.DBConnectivity)
	r.public("GET /api/server_connectivity", r.healthHandler.ServerConnectivity)

	// Places
	r.user("GET /api/places", r.placeHandler.ListPlaces)
	r.user("GET /api/place/{place_id}", r.placeHandler.GetPlace)
	r.admin("POST /api/add-place", r.placeHandler.AddPlace)
	r.admin("DELETE /api/delete-place/{place_id}", r.placeHandler.DeletePlace)

	// Reviews
	r.user("GET /api/reviews", r.reviewHandler.ListReviews)
	r.user("GET /api/reviews/{review_id}", r.reviewHandler.GetReview)
	r.user("GET /api/myreviews/{user_id}", r.reviewHandler.ListUserReviews)
	r.user("GET /api/liked-reviews/{user_id}", r.reviewHandler.ListLikedReviews)
	r.public("GET /api/places/{place_id}/reviews", r.reviewHandler.ListPlaceReviews)
	r.user("GET /api/places/{place_id}/reviews-with-user-details", r.reviewHandler.ListPlaceReviewsWithUser)
	r.user("POST /api/add-review", r.reviewHandler.AddReview)
	r.user("PUT /api/update-review", r.reviewHandler.UpdateReview)
	r.user("DELETE /api/delete-review/{review_id}", r.reviewHandler.DeleteReview)
	r.user("PUT /api/user-review-feedback", r.reviewHandler.ReviewFeedback)

	// Accounts
	r.user("GET /api/users/{user_id}", r.userHandler.GetUser)
	r.user("PUT /api/update-user-profile", r.userHandler.UpdateProfile)
	r.user("PUT /api/change-password", r.userHandler.ChangePassword)
	r.user("DELETE /api/delete-user-account/{user_id}", r.userHandler.DeleteAccount)

	// Sessions
	r.throttled("POST /api/signup", r.authHandler.Signup)
	r.throttled("POST /api/login", r.authHandler.Login)
	r.user("GET /api/logout", r.authHandler.Logout)
	r.user("GET /api/logged-in-user", r.authHandler.LoggedInUser)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so preflights never reach the auth gates.
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
