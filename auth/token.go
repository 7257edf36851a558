package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"git.sr.ht/~relay/giftwise-backend/types"
	"github.com/golang-jwt/jwt/v5"
)

// TokenPrefix marks every access token this server hands out. The prefix
// alone is what /api/user/validate checks.
const TokenPrefix = "mock_token_"

var errNoPrefix = errors.New("token does not carry the " + TokenPrefix + " prefix")

// Claims is the JWT payload behind the prefix.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token issuer. A non-positive ttl means 24h.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue returns TokenPrefix followed by an HS256 JWT for user.
func (t *Tokens) Issue(user types.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return TokenPrefix + signed, nil
}

// Parse verifies a token produced by Issue and returns its user.
func (t *Tokens) Parse(token string) (types.User, error) {
	raw, ok := strings.CutPrefix(token, TokenPrefix)
	if !ok {
		return types.User{}, errNoPrefix
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return types.User{}, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return types.User{}, jwt.ErrTokenInvalidClaims
	}
	return types.User{ID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("Authorization header required")
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", errors.New("Authorization header format must be Bearer {token}")
	}
	return parts[1], nil
}
