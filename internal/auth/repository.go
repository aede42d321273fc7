package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agora-concertations/backend/internal/models"
)

// Repository handles user and organizer allow-list persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `SELECT id, email, password_hash, first_name, last_name, is_organizer, created_at, updated_at
		FROM users WHERE id = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.IsOrganizer, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, email, password_hash, first_name, last_name, is_organizer, created_at, updated_at
		FROM users WHERE email = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.IsOrganizer, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. The is_organizer flag is decided here, once,
// and no other code path updates it.
func (r *Repository) Create(ctx context.Context, email, passwordHash, firstName, lastName string, isOrganizer bool) (*models.User, error) {
	const q = `INSERT INTO users (email, password_hash, first_name, last_name, is_organizer)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, first_name, last_name, is_organizer, created_at, updated_at`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email, passwordHash, firstName, lastName, isOrganizer).
		Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.IsOrganizer, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IsEmailAllowlisted reports whether the email is on the organizer allow-list.
func (r *Repository) IsEmailAllowlisted(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM organizer_allowlist WHERE email = $1)`
	var exists bool
	err := r.pool.QueryRow(ctx, q, email).Scan(&exists)
	return exists, err
}
