package gifts

import (
	"context"
	"database/sql"
	"fmt"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/store"
)

// Gift statuses, in the order a gift moves through them.
const (
	StatusPlanned   = "planned"
	StatusPurchased = "purchased"
	StatusWrapped   = "wrapped"
	StatusGiven     = "given"
)

// Gift is an item planned for (or given to) a person.
type Gift struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	RecipientID string  `json:"recipientId"`
	OccasionID  string  `json:"occasionId"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CreateGiftPayload is the POST body. Nil fields take their defaults.
type CreateGiftPayload struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Currency    *string  `json:"currency"`
	Status      *string  `json:"status"`
	RecipientID *string  `json:"recipientId"`
	OccasionID  *string  `json:"occasionId"`
	Notes       *string  `json:"notes"`
}

// Repository stores gifts per owner.
type Repository interface {
	List(ctx context.Context, ownerID string, page gateway.Page) ([]Gift, error)
	Get(ctx context.Context, ownerID, id string) (Gift, error)
	Create(ctx context.Context, ownerID string, g Gift) error
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLRepository on db.
func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectColumns = `id, name, price, currency, status, recipient_id, occasion_id, notes, created_at, updated_at`

func scanGift(row interface{ Scan(...any) error }) (Gift, error) {
	var g Gift
	err := row.Scan(&g.ID, &g.Name, &g.Price, &g.Currency, &g.Status, &g.RecipientID, &g.OccasionID, &g.Notes, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// List returns a page of gifts in insertion order.
func (r *SQLRepository) List(ctx context.Context, ownerID string, page gateway.Page) ([]Gift, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM gifts WHERE owner_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		ownerID, page.SQLLimit(), page.Offset)
	if err != nil {
		return nil, fmt.Errorf("query gifts: %w", err)
	}
	defer rows.Close()

	gifts := []Gift{}
	for rows.Next() {
		g, err := scanGift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gift row: %w", err)
		}
		gifts = append(gifts, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gift rows: %w", err)
	}
	return gifts, nil
}

// Get returns one gift, or a NotFoundError.
func (r *SQLRepository) Get(ctx context.Context, ownerID, id string) (Gift, error) {
	g, err := scanGift(r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM gifts WHERE owner_id = ? AND id = ?`, ownerID, id))
	if store.NotFound(err) {
		return Gift{}, gateway.NotFound("Gift", id)
	}
	if err != nil {
		return Gift{}, fmt.Errorf("get gift %s: %w", id, err)
	}
	return g, nil
}

// Create inserts the gift.
func (r *SQLRepository) Create(ctx context.Context, ownerID string, g Gift) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gifts (id, owner_id, name, price, currency, status, recipient_id, occasion_id, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, ownerID, g.Name, g.Price, g.Currency, g.Status, g.RecipientID, g.OccasionID, g.Notes, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert gift: %w", err)
	}
	return nil
}
