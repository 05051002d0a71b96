package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/duynhne/booking-service/internal/core/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, first_name, last_name, admin, created_at, updated_at`

// PgxUserRepository implements domain.UserRepository using pgxpool.
type PgxUserRepository struct {
	db DB
}

// NewUserRepository creates a new PgxUserRepository.
func NewUserRepository(db DB) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u  domain.User
		id int64
	)
	err := row.Scan(&id, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Admin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.ID = domain.UserID(id)
	return &u, nil
}

// FindByEmail returns the user matching the given email.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// ExistsByEmail returns true when a user with the given email exists.
func (r *PgxUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// FindByID returns the user with the given id.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, int64(id)))
}

// Save inserts a new user or updates an existing one.
func (r *PgxUserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == 0 {
		query := `INSERT INTO users (email, password_hash, first_name, last_name, admin)
			VALUES ($1, $2, $3, $4, $5) RETURNING ` + userColumns
		saved, err := scanUser(r.db.QueryRow(ctx, query,
			user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Admin))
		if err != nil {
			return nil, translateUserError(user.Email, err)
		}
		return saved, nil
	}

	query := `UPDATE users
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5, admin = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 RETURNING ` + userColumns
	saved, err := scanUser(r.db.QueryRow(ctx, query,
		int64(user.ID), user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Admin))
	if err != nil {
		return nil, translateUserError(user.Email, err)
	}
	if saved == nil {
		return nil, fmt.Errorf("update user %d: no such row", user.ID)
	}
	return saved, nil
}

// DeleteByID removes the user; participations cascade in the schema.
func (r *PgxUserRepository) DeleteByID(ctx context.Context, id domain.UserID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, int64(id))
	return err
}

func translateUserError(email string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("save user %q: %w", email, domain.ErrDuplicateEmail)
	}
	return err
}
