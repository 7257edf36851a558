package people

import (
	"context"
	"database/sql"
	"fmt"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/store"
)

// Person is someone the user buys gifts for.
type Person struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
	Birthday     string `json:"birthday"`
	Notes        string `json:"notes"`
	Avatar       string `json:"avatar"`
	FamilyID     string `json:"familyId"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// CreatePersonPayload is the POST body. Nil fields take their defaults.
type CreatePersonPayload struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Relationship *string `json:"relationship"`
	Birthday     *string `json:"birthday"`
	Notes        *string `json:"notes"`
	Avatar       *string `json:"avatar"`
	FamilyID     *string `json:"familyId"`
}

// Repository stores people per owning user.
type Repository interface {
	List(ctx context.Context, ownerID string, page gateway.Page) ([]Person, error)
	Get(ctx context.Context, ownerID, id string) (Person, error)
	Create(ctx context.Context, ownerID string, p Person) error
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLRepository on db.
func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectColumns = `id, name, email, relationship, birthday, notes, avatar, family_id, created_at, updated_at`

func scanPerson(row interface{ Scan(...any) error }) (Person, error) {
	var p Person
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Relationship, &p.Birthday, &p.Notes, &p.Avatar, &p.FamilyID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns a page of people in insertion order.
func (r *SQLRepository) List(ctx context.Context, ownerID string, page gateway.Page) ([]Person, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM people WHERE owner_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		ownerID, page.SQLLimit(), page.Offset)
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer rows.Close()

	people := []Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person row: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people rows: %w", err)
	}
	return people, nil
}

// Get returns one person, or a NotFoundError.
func (r *SQLRepository) Get(ctx context.Context, ownerID, id string) (Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM people WHERE owner_id = ? AND id = ?`, ownerID, id))
	if store.NotFound(err) {
		return Person{}, gateway.NotFound("Person", id)
	}
	if err != nil {
		return Person{}, fmt.Errorf("get person %s: %w", id, err)
	}
	return p, nil
}

// Create inserts the person.
func (r *SQLRepository) Create(ctx context.Context, ownerID string, p Person) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO people (id, owner_id, name, email, relationship, birthday, notes, avatar, family_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, ownerID, p.Name, p.Email, p.Relationship, p.Birthday, p.Notes, p.Avatar, p.FamilyID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}
