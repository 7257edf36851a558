package expenses

import (
	"context"
	"database/sql"
	"fmt"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/store"
)

// Repository stores expenses per owner.
type Repository interface {
	List(ctx context.Context, ownerID string, page gateway.Page) ([]Expense, error)
	Get(ctx context.Context, ownerID, id string) (Expense, error)
	Create(ctx context.Context, ownerID string, e Expense) error
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLRepository on db.
func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectColumns = `id, amount, currency, description, category, budget_id, gift_id, date, created_at, updated_at`

func scanExpense(row interface{ Scan(...any) error }) (Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.Amount, &e.Currency, &e.Description, &e.Category, &e.BudgetID, &e.GiftID, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// List returns expenses in the order they were recorded.
func (r *SQLRepository) List(ctx context.Context, ownerID string, page gateway.Page) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE owner_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		ownerID, page.SQLLimit(), page.Offset)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return expenses, nil
}

// Get returns one expense, or a NotFoundError.
func (r *SQLRepository) Get(ctx context.Context, ownerID, id string) (Expense, error) {
	e, err := scanExpense(r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE owner_id = ? AND id = ?`, ownerID, id))
	if store.NotFound(err) {
		return Expense{}, gateway.NotFound("Expense", id)
	}
	if err != nil {
		return Expense{}, fmt.Errorf("get expense %s: %w", id, err)
	}
	return e, nil
}

// Create inserts the expense.
func (r *SQLRepository) Create(ctx context.Context, ownerID string, e Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, owner_id, amount, currency, description, category, budget_id, gift_id, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, ownerID, e.Amount, e.Currency, e.Description, e.Category, e.BudgetID, e.GiftID, e.Date, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}
