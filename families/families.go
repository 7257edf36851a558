package families

import (
	"context"
	"database/sql"
	"fmt"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/store"
)

// Member roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Family groups users who plan gifts together.
type Family struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"createdBy"`
	Members     []Member `json:"members"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// Member is a user's membership in a family.
type Member struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"` // "admin" or "member"
	JoinedAt string `json:"joinedAt"`
}

// CreateFamilyPayload is the POST body.
type CreateFamilyPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Repository stores families. Visibility is by membership, not ownership.
type Repository interface {
	List(ctx context.Context, userID string, page gateway.Page) ([]Family, error)
	Get(ctx context.Context, userID, id string) (Family, error)
	Create(ctx context.Context, f Family) error
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLRepository on db.
func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// List returns a page of families in insertion order.
func (r *SQLRepository) List(ctx context.Context, userID string, page gateway.Page) ([]Family, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.id, f.name, f.description, f.created_by, f.created_at, f.updated_at
		FROM families f
		JOIN family_members m ON m.family_id = f.id
		WHERE m.user_id = ?
		ORDER BY f.rowid
		LIMIT ? OFFSET ?`,
		userID, page.SQLLimit(), page.Offset)
	if err != nil {
		return nil, fmt.Errorf("query families: %w", err)
	}
	defer rows.Close()

	families := []Family{}
	for rows.Next() {
		var f Family
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan family row: %w", err)
		}
		families = append(families, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate family rows: %w", err)
	}
	rows.Close()

	for i := range families {
		if families[i].Members, err = r.members(ctx, families[i].ID); err != nil {
			return nil, err
		}
	}
	return families, nil
}

// Get returns one family, or a NotFoundError.
func (r *SQLRepository) Get(ctx context.Context, userID, id string) (Family, error) {
	var f Family
	err := r.db.QueryRowContext(ctx, `
		SELECT f.id, f.name, f.description, f.created_by, f.created_at, f.updated_at
		FROM families f
		JOIN family_members m ON m.family_id = f.id
		WHERE m.user_id = ? AND f.id = ?`, userID, id).
		Scan(&f.ID, &f.Name, &f.Description, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt)
	if store.NotFound(err) {
		return Family{}, gateway.NotFound("Family", id)
	}
	if err != nil {
		return Family{}, fmt.Errorf("get family %s: %w", id, err)
	}

	if f.Members, err = r.members(ctx, f.ID); err != nil {
		return Family{}, err
	}
	return f, nil
}

func (r *SQLRepository) members(ctx context.Context, familyID string) ([]Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, name, email, role, joined_at
		FROM family_members
		WHERE family_id = ?
		ORDER BY joined_at, user_id`, familyID)
	if err != nil {
		return nil, fmt.Errorf("query members of family %s: %w", familyID, err)
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Create inserts the family and its initial members atomically.
func (r *SQLRepository) Create(ctx context.Context, f Family) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction for family: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO families (id, name, description, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.Name, f.Description, f.CreatedBy, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert family: %w", err)
	}

	for _, m := range f.Members {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO family_members (family_id, user_id, name, email, role, joined_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			f.ID, m.UserID, m.Name, m.Email, m.Role, m.JoinedAt)
		if err != nil {
			return fmt.Errorf("insert member %s of family %s: %w", m.UserID, f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit family: %w", err)
	}
	return nil
}
