package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touristtalks/backend/internal/domain/providers"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret", 24*time.Hour)
	require.NoError(t, err)

	token, issued, err := issuer.Issue("u42", "ada", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "u42", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, issued.TokenID, claims.TokenID)
	assert.NotEmpty(t, claims.TokenID)
	assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestJWTIssuer_PayloadFieldNames(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.Issue("u1", "bob", "user")
	require.NoError(t, err)

	parsed := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, parsed)
	require.NoError(t, err)

	for _, key := range []string{"id", "user", "role", "iat", "exp", "jti"} {
		assert.Contains(t, parsed, key)
	}
	assert.Equal(t, "u1", parsed["id"])
	assert.Equal(t, "bob", parsed["user"])
}

func TestJWTIssuer_RejectsWrongSecret(t *testing.T) {
	issuer, _ := NewJWTIssuer("secret-a", time.Hour)
	other, _ := NewJWTIssuer("secret-b", time.Hour)

	token, _, err := issuer.Issue("u1", "bob", "user")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTIssuer_RejectsExpired(t *testing.T) {
	issuer, _ := NewJWTIssuer("secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.Issue("u1", "bob", "user")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTIssuer_RejectsMalformedAndUnsigned(t *testing.T) {
	issuer, _ := NewJWTIssuer("secret", time.Hour)

	_, err := issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(raw)
	assert.Error(t, err)
}

func TestNewJWTIssuer_Validation(t *testing.T) {
	_, err := NewJWTIssuer("", time.Hour)
	assert.Error(t, err)

	_, err = NewJWTIssuer("secret", 0)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, hasher.Verify(hash, "correct horse"))
	assert.ErrorIs(t, hasher.Verify(hash, "battery staple"), providers.ErrPasswordMismatch)

	_, err = hasher.Hash("")
	assert.Error(t, err)

	_, err = hasher.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, providers.ErrPasswordTooLong)

	_, err = hasher.Hash(strings.Repeat("x", 72))
	assert.NoError(t, err)
}
