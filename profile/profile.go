package profile

import (
	"context"
	"database/sql"
	"fmt"

	"git.sr.ht/~relay/giftwise-backend/store"
	"git.sr.ht/~relay/giftwise-backend/types"
)

// Profile is the user's public name and contact address.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UpdateProfilePayload is the PUT body; only supplied fields change.
type UpdateProfilePayload struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Defaults derives an unsaved profile from the account.
func Defaults(user types.User) Profile {
	return Profile{ID: user.ID, Name: user.Name, Email: user.Email}
}

// Repository stores each user's profile.
type Repository interface {
	Find(ctx context.Context, userID string) (Profile, bool, error)
	Upsert(ctx context.Context, p Profile) error
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
func (r *SQLRepository) Find(ctx context.Context, userID string) (Profile, bool, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, name, email, created_at, updated_at FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if store.NotFound(err) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("get profile for %s: %w", userID, err)
	}
	return p, true, nil
}

// Upsert inserts or replaces the stored profile.
func (r *SQLRepository) Upsert(ctx context.Context, p Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, p.Email, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile for %s: %w", p.ID, err)
	}
	return nil
}

// Load returns the stored profile, or one derived from user.
func Load(ctx context.Context, repo Repository, user types.User) (Profile, error) {
	p, found, err := repo.Find(ctx, user.ID)
	if err != nil {
		return Profile{}, err
	}
	if !found {
		return Defaults(user), nil
	}
	return p, nil
}
