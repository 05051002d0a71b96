package v1

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/duynhne/booking-service/internal/core/domain"
	"github.com/duynhne/booking-service/internal/core/repository"
)

var errStoreDown = errors.New("connection refused")

type fixture struct {
	store    *repository.MemoryStore
	hasher   PasswordHasher
	tokens   *TokenService
	auth     *AuthService
	sessions *SessionService
	users    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	hasher := BcryptHasher{Cost: bcrypt.MinCost}
	tokens := NewTokenService("test-secret", time.Hour)
	return &fixture{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		auth:     NewAuthService(store.Users, tokens, hasher),
		sessions: NewSessionService(store.Sessions, store.Users, store.Teachers),
		users:    NewUserService(store.Users),
	}
}

func (f *fixture) seedUser(t *testing.T, id domain.UserID, email, password string, admin bool) *domain.User {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	u, err := f.store.Users.Save(context.Background(), &domain.User{
		ID: id, Email: email, PasswordHash: hash, FirstName: "John", LastName: "Doe", Admin: admin,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) seedSession(t *testing.T, id domain.SessionID, participants ...domain.UserID) {
	t.Helper()
	if participants == nil {
		participants = []domain.UserID{}
	}
	_, err := f.store.Sessions.Save(context.Background(), &domain.Session{
		ID: id, Name: "Yoga", Description: "desc", Date: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		Participants: participants,
	})
	require.NoError(t, err)
}

func (f *fixture) participants(t *testing.T, id domain.SessionID) []domain.UserID {
	t.Helper()
	s, err := f.store.Sessions.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s.Participants
}

// failingUsers fails every call, for store outage paths.
type failingUsers struct{}

func (failingUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, errStoreDown
}
func (failingUsers) ExistsByEmail(context.Context, string) (bool, error) { return false, errStoreDown }
func (failingUsers) FindByID(context.Context, domain.UserID) (*domain.User, error) {
	return nil, errStoreDown
}
func (failingUsers) Save(context.Context, *domain.User) (*domain.User, error) {
	return nil, errStoreDown
}
func (failingUsers) DeleteByID(context.Context, domain.UserID) error { return errStoreDown }
