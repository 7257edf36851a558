package occasions

import (
	"context"
	"database/sql"
	"fmt"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/store"
)

// Occasion is a dated event gifts are planned for.
type Occasion struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	PersonID  string  `json:"personId"`
	Budget    float64 `json:"budget"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// CreateOccasionPayload is the POST body; nil fields take their defaults.
type CreateOccasionPayload struct {
	Name     *string  `json:"name"`
	Date     *string  `json:"date"`
	Type     *string  `json:"type"`
	PersonID *string  `json:"personId"`
	Budget   *float64 `json:"budget"`
}

// Repository stores occasions per owner.
type Repository interface {
	List(ctx context.Context, ownerID string, page gateway.Page) ([]Occasion, error)
	Get(ctx context.Context, ownerID, id string) (Occasion, error)
	Create(ctx context.Context, ownerID string, o Occasion) error
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLRepository on db.
func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectColumns = `id, name, date, type, person_id, budget, created_at, updated_at`

func scanOccasion(row interface{ Scan(...any) error }) (Occasion, error) {
	var o Occasion
	err := row.Scan(&o.ID, &o.Name, &o.Date, &o.Type, &o.PersonID, &o.Budget, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// List returns a page of occasions in insertion order.
func (r *SQLRepository) List(ctx context.Context, ownerID string, page gateway.Page) ([]Occasion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM occasions WHERE owner_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		ownerID, page.SQLLimit(), page.Offset)
	if err != nil {
		return nil, fmt.Errorf("query occasions: %w", err)
	}
	defer rows.Close()

	occasions := []Occasion{}
	for rows.Next() {
		o, err := scanOccasion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan occasion row: %w", err)
		}
		occasions = append(occasions, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occasion rows: %w", err)
	}
	return occasions, nil
}

// Get returns one occasion, or a NotFoundError.
func (r *SQLRepository) Get(ctx context.Context, ownerID, id string) (Occasion, error) {
	o, err := scanOccasion(r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM occasions WHERE owner_id = ? AND id = ?`, ownerID, id))
	if store.NotFound(err) {
		return Occasion{}, gateway.NotFound("Occasion", id)
	}
	if err != nil {
		return Occasion{}, fmt.Errorf("get occasion %s: %w", id, err)
	}
	return o, nil
}

// Create inserts the occasion.
func (r *SQLRepository) Create(ctx context.Context, ownerID string, o Occasion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO occasions (id, owner_id, name, date, type, person_id, budget, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, ownerID, o.Name, o.Date, o.Type, o.PersonID, o.Budget, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert occasion: %w", err)
	}
	return nil
}
