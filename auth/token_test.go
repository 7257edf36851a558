package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	user := types.User{ID: "u1", Email: "u1@example.com", Name: "U One"}

	token, err := tokens.Issue(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, TokenPrefix))

	parsed, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user, parsed)
}

func TestParseRejects(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	good, err := tokens.Issue(identity.DemoUser())
	require.NoError(t, err)

	_, err = tokens.Parse(strings.TrimPrefix(good, TokenPrefix))
	assert.ErrorIs(t, err, errNoPrefix)

	_, err = NewTokens("other", time.Hour).Parse(good)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	claims := &Claims{UserID: "u", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tokens.Parse(TokenPrefix + signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNonPositiveTTLUsesDefault(t *testing.T) {
	token, err := NewTokens("secret", -time.Hour).Issue(identity.DemoUser())
	require.NoError(t, err)
	_, err = NewTokens("secret", 0).Parse(token)
	assert.NoError(t, err)
}

func TestBearerToken(t *testing.T) {
	tok, err := bearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = bearerToken("bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	for _, bad := range []string{"", "Bearer", "Bearer ", "Basic abc", "Bearer a b"} {
		_, err := bearerToken(bad)
		assert.Error(t, err, bad)
	}
}

func TestIdentityMiddleware(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	var got types.User
	h := tokens.Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = identity.UserFrom(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, identity.DemoUser(), got)

	user := types.User{ID: "u2", Email: "u2@example.com", Name: "Two"}
	token, err := tokens.Issue(user)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, user, got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+TokenPrefix+"forged")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, identity.DemoUser(), got)
}
