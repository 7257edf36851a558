package budgets

import (
	"context"
	"database/sql"
	"fmt"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/store"
)

// Budget statuses.
const (
	StatusOnTrack    = "on_track"
	StatusWarning    = "warning"
	StatusOverBudget = "over_budget"
)

// Budget caps spending over a period. Remaining is Amount - Spent.
type Budget struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Period    string  `json:"period"`
	Type      string  `json:"type"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// CreateBudgetPayload is the POST body. Remaining is always derived, so it
// is not accepted.
type CreateBudgetPayload struct {
	Name     *string  `json:"name"`
	Amount   *float64 `json:"amount"`
	Currency *string  `json:"currency"`
	Period   *string  `json:"period"`
	Type     *string  `json:"type"`
	Spent    *float64 `json:"spent"`
	Status   *string  `json:"status"`
}

// Repository stores budgets per owner.
type Repository interface {
	List(ctx context.Context, ownerID string, page gateway.Page) ([]Budget, error)
	Get(ctx context.Context, ownerID, id string) (Budget, error)
	Create(ctx context.Context, ownerID string, b Budget) error
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLRepository on db.
func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectColumns = `id, name, amount, currency, period, type, spent, remaining, status, created_at, updated_at`

func scanBudget(row interface{ Scan(...any) error }) (Budget, error) {
	var b Budget
	err := row.Scan(&b.ID, &b.Name, &b.Amount, &b.Currency, &b.Period, &b.Type, &b.Spent, &b.Remaining, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// List returns a page of budgets in insertion order.
func (r *SQLRepository) List(ctx context.Context, ownerID string, page gateway.Page) ([]Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM budgets WHERE owner_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		ownerID, page.SQLLimit(), page.Offset)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget row: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget rows: %w", err)
	}
	return budgets, nil
}

// Get returns one budget, or a NotFoundError.
func (r *SQLRepository) Get(ctx context.Context, ownerID, id string) (Budget, error) {
	b, err := scanBudget(r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM budgets WHERE owner_id = ? AND id = ?`, ownerID, id))
	if store.NotFound(err) {
		return Budget{}, gateway.NotFound("Budget", id)
	}
	if err != nil {
		return Budget{}, fmt.Errorf("get budget %s: %w", id, err)
	}
	return b, nil
}

// Create inserts the budget.
func (r *SQLRepository) Create(ctx context.Context, ownerID string, b Budget) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (id, owner_id, name, amount, currency, period, type, spent, remaining, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, ownerID, b.Name, b.Amount, b.Currency, b.Period, b.Type, b.Spent, b.Remaining, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}
