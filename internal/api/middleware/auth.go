package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/touristtalks/backend/internal/domain/providers"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

// TokenHeader carries the session token on authenticated requests
const TokenHeader = "x-access-token"

type claimsKey struct{}
type tokenKey struct{}

// Authenticator verifies session tokens and checks the admin role
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*providers.TokenClaims, error)
	AuthorizeAdmin(ctx context.Context, claims *providers.TokenClaims) error
}

// AuthGuard builds the authenticated and admin-only request gates
type AuthGuard struct {
	auth    Authenticator
	metrics *observability.Metrics
}

// NewAuthGuard creates a new auth guard. metrics may be nil.
func NewAuthGuard(auth Authenticator, metrics *observability.Metrics) *AuthGuard {
	return &AuthGuard{
		auth:    auth,
		metrics: metrics,
	}
}

// RequireAuth rejects requests without a valid session token and puts the
// decoded claims into the request context
func (g *AuthGuard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		claims, err := g.auth.Authenticate(r.Context(), token)
		if err != nil {
			g.reject(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		ctx = context.WithValue(ctx, tokenKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin performs the RequireAuth checks and then requires the
// account behind the token to hold the admin role
func (g *AuthGuard) RequireAdmin(next http.Handler) http.Handler {
	return g.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if err := g.auth.AuthorizeAdmin(r.Context(), claims); err != nil {
			g.reject(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (g *AuthGuard) reject(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := observability.LoggerFromContext(ctx)

	appErr, ok := apperrors.As(err)
	if !ok || appErr.Type == apperrors.ErrorTypeInternal {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("auth check failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	observability.RecordAuthRejection(ctx, g.metrics, string(appErr.Type))
	logger.Debug().Str("reason", string(appErr.Type)).Str("path", r.URL.Path).Msg("request rejected by auth guard")

	body := map[string]string{"message": appErr.Message}
	if appErr.Type == apperrors.ErrorTypeInvalidToken && appErr.Err != nil {
		body["error"] = appErr.Err.Error()
	}
	writeJSON(w, apperrors.HTTPStatus(err), body)
}

// ClaimsFromContext returns the session claims put there by RequireAuth
func ClaimsFromContext(ctx context.Context) (*providers.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*providers.TokenClaims)
	return claims, ok
}

// TokenFromContext returns the raw session token of an authenticated request
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// WithClaims returns ctx carrying claims and token as RequireAuth would set them
func WithClaims(ctx context.Context, claims *providers.TokenClaims, token string) context.Context {
	ctx = context.WithValue(ctx, claimsKey{}, claims)
	return context.WithValue(ctx, tokenKey{}, token)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
