package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateEmail is returned by UserRepository.Save when another user
// already holds the email.
var ErrDuplicateEmail = errors.New("email already stored")

// UserID identifies a user account. Participation and ownership checks
// compare UserIDs, never record pointers.
type UserID int64

// User represents a user record from the Credential Store.
// It includes the password hash so the Logic layer can verify credentials;
// the hash is never serialized.
type User struct {
	ID           UserID    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRepository defines the data-access contract for the Credential Store.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only, never on SQL or pgx directly.
type UserRepository interface {
	// FindByEmail returns the user with the given email (case-sensitive).
	// Returns (nil, nil) when no user is found.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail returns true when a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByID returns the user with the given id.
	// Returns (nil, nil) when no user is found.
	FindByID(ctx context.Context, id UserID) (*User, error)

	// Save inserts the user when ID is zero and updates it otherwise.
	// The returned copy carries the store-assigned id and timestamps.
	// Fails with ErrDuplicateEmail when the email belongs to another user.
	Save(ctx context.Context, user *User) (*User, error)

	// DeleteByID removes the user. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id UserID) error
}
