package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/booking-service/internal/core/domain"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	saved, err := repo.Save(ctx, &domain.User{Email: "user@test.com", FirstName: "John"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(1), saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "user@test.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, saved.ID, found.ID)

	missing, err := repo.FindByEmail(ctx, "USER@test.com")
	require.NoError(t, err)
	assert.Nil(t, missing, "email lookup is case-sensitive")

	exists, err := repo.ExistsByEmail(ctx, "user@test.com")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteByID(ctx, saved.ID))
	gone, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemoryUserRepository_RejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	first, err := repo.Save(ctx, &domain.User{Email: "user@test.com"})
	require.NoError(t, err)

	_, err = repo.Save(ctx, &domain.User{Email: "user@test.com"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// Re-saving the owner is an update, not a collision.
	first.FirstName = "John"
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Save(ctx, &domain.User{Email: "race@test.com"}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}

func TestMemorySessionRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	saved, err := repo.Save(ctx, &domain.Session{Name: "Yoga", Participants: []domain.UserID{1}})
	require.NoError(t, err)

	saved.Participants[0] = 99

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.UserID{1}, found.Participants)
}

func TestMemorySessionRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	saved, err := repo.Save(ctx, &domain.Session{Name: "Yoga"})
	require.NoError(t, err)

	t.Run("missing session skips fn", func(t *testing.T) {
		called := false
		got, err := repo.Update(ctx, 404, func(*domain.Session) error {
			called = true
			return nil
		})
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.False(t, called)
	})

	t.Run("fn error discards changes", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := repo.Update(ctx, saved.ID, func(s *domain.Session) error {
			s.AddParticipant(5)
			return boom
		})
		require.ErrorIs(t, err, boom)

		found, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Participants)
	})

	t.Run("concurrent joins keep every member", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 1; i <= 50; i++ {
			wg.Add(1)
			go func(id domain.UserID) {
				defer wg.Done()
				_, err := repo.Update(ctx, saved.ID, func(s *domain.Session) error {
					s.AddParticipant(id)
					return nil
				})
				assert.NoError(t, err)
			}(domain.UserID(i))
		}
		wg.Wait()

		found, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Len(t, found.Participants, 50)
	})
}

func TestMemoryStore_DeleteUserDropsParticipations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	user, err := store.Users.Save(ctx, &domain.User{Email: "a@test.com"})
	require.NoError(t, err)
	session, err := store.Sessions.Save(ctx, &domain.Session{Name: "Yoga", Participants: []domain.UserID{user.ID, 42}})
	require.NoError(t, err)

	require.NoError(t, store.Users.DeleteByID(ctx, user.ID))

	found, err := store.Sessions.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.UserID{42}, found.Participants)
}

func TestMemoryTeacherRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTeacherRepository()

	a, err := repo.Save(ctx, &domain.Teacher{FirstName: "Margot", LastName: "Delahaye"})
	require.NoError(t, err)
	b, err := repo.Save(ctx, &domain.Teacher{FirstName: "Hélène", LastName: "Thiercelin"})
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, b.ID, all[1].ID)

	require.NoError(t, repo.DeleteByID(ctx, a.ID))
	gone, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemoryStore_DeleteTeacherClearsSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	teacher, err := store.Teachers.Save(ctx, &domain.Teacher{FirstName: "Margot", LastName: "Delahaye"})
	require.NoError(t, err)
	_, err = store.Sessions.Save(ctx, &domain.Session{ID: 1, TeacherID: teacher.ID, Participants: []domain.UserID{}})
	require.NoError(t, err)
	_, err = store.Sessions.Save(ctx, &domain.Session{ID: 2, TeacherID: 99, Participants: []domain.UserID{}})
	require.NoError(t, err)

	require.NoError(t, store.Teachers.DeleteByID(ctx, teacher.ID))

	cleared, err := store.Sessions.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, cleared.TeacherID)

	untouched, err := store.Sessions.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.TeacherID(99), untouched.TeacherID)
}
