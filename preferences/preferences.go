package preferences

import (
	"context"
	"database/sql"
	"fmt"

	"git.sr.ht/~relay/giftwise-backend/store"
	"git.sr.ht/~relay/giftwise-backend/types"
)

// Themes accepted by the frontend.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Preferences are per-user display and notification settings.
type Preferences struct {
	UserID        string `json:"userId"`
	Currency      string `json:"currency"`
	Timezone      string `json:"timezone"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

// UpdatePreferencesPayload is the PUT body; only supplied fields change.
type UpdatePreferencesPayload struct {
	Currency      *string `json:"currency"`
	Timezone      *string `json:"timezone"`
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
	Language      *string `json:"language"`
}

// Defaults is what a user has before saving anything. It carries no
// timestamps since nothing was stored.
func Defaults(userID string) Preferences {
	return Preferences{
		UserID:        userID,
		Currency:      types.DefaultCurrency,
		Timezone:      "America/New_York",
		Theme:         ThemeSystem,
		Notifications: true,
		Language:      "en",
	}
}

// Repository stores each user's preferences.
type Repository interface {
	// Find returns false when the user has never saved preferences.
	Find(ctx context.Context, userID string) (Preferences, bool, error)
	Upsert(ctx context.Context, p Preferences) error
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLRepository on db.
func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Find returns false when nothing has been saved for the user.
func (r *SQLRepository) Find(ctx context.Context, userID string) (Preferences, bool, error) {
	var p Preferences
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, currency, timezone, theme, notifications, language, created_at, updated_at
		FROM preferences WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.Currency, &p.Timezone, &p.Theme, &p.Notifications, &p.Language, &p.CreatedAt, &p.UpdatedAt)
	if store.NotFound(err) {
		return Preferences{}, false, nil
	}
	if err != nil {
		return Preferences{}, false, fmt.Errorf("get preferences for %s: %w", userID, err)
	}
	return p, true, nil
}

// Upsert writes p, keeping the original created_at on conflict.
func (r *SQLRepository) Upsert(ctx context.Context, p Preferences) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, currency, timezone, theme, notifications, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			currency = excluded.currency,
			timezone = excluded.timezone,
			theme = excluded.theme,
			notifications = excluded.notifications,
			language = excluded.language,
			updated_at = excluded.updated_at`,
		p.UserID, p.Currency, p.Timezone, p.Theme, p.Notifications, p.Language, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert preferences for %s: %w", p.UserID, err)
	}
	return nil
}

// Load returns the stored preferences or the defaults.
func Load(ctx context.Context, repo Repository, userID string) (Preferences, error) {
	p, found, err := repo.Find(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	if !found {
		return Defaults(userID), nil
	}
	return p, nil
}
