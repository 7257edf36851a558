package types

import (
	"time"

	"github.com/google/uuid"
)

// --- Shared Formats ---

// TimestampLayout matches the ISO-8601 form browsers produce with
// Date.prototype.toISOString, which the frontend parses.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DateLayout is used for calendar dates (birthdays, occasions, expenses).
const DateLayout = "2006-01-02"

// DefaultCurrency is applied to every money-bearing record that omits one.
const DefaultCurrency = "USD"

// DefaultAvatar is the placeholder image served by the frontend.
const DefaultAvatar = "/placeholder.svg"

// Now returns the current UTC time formatted as a record timestamp.
func Now() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// Today returns the current UTC calendar date.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// NewID returns a fresh opaque record identifier.
func NewID() string {
	return uuid.NewString()
}

// Or returns *p when the caller supplied the field and def otherwise.
// Explicit zero values ("" / 0 / false) count as supplied.
func Or[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// --- Users and Auth Payloads ---

// User is the public shape of an account.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LoginRequest defines the structure for the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest defines the structure for the register request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session carries the bearer token handed to the frontend.
type Session struct {
	AccessToken string `json:"access_token"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	User    User    `json:"user"`
	Session Session `json:"session"`
}
