package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/duynhne/booking-service/internal/core/domain"
)

// MemoryStore bundles in-memory repositories for DB_DRIVER=memory and tests.
// Deleting a user removes it from every session, like the ON DELETE CASCADE
// of the participate table. Deleting a teacher clears the sessions that
// referenced it, like ON DELETE SET NULL.
type MemoryStore struct {
	Users    *MemoryUserRepository
	Sessions *MemorySessionRepository
	Teachers *MemoryTeacherRepository
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	sessions := NewMemorySessionRepository()
	users := NewMemoryUserRepository()
	users.sessions = sessions
	teachers := NewMemoryTeacherRepository()
	teachers.sessions = sessions
	return &MemoryStore{
		Users:    users,
		Sessions: sessions,
		Teachers: teachers,
	}
}

// MemoryUserRepository implements domain.UserRepository in memory.
type MemoryUserRepository struct {
	mu       sync.RWMutex
	nextID   domain.UserID
	byID     map[domain.UserID]domain.User
	sessions *MemorySessionRepository
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byID: map[domain.UserID]domain.User{}}
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.FindByEmail(ctx, email)
	return u != nil, err
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, other := range r.byID {
		if other.Email == user.Email && id != user.ID {
			return nil, fmt.Errorf("save user %q: %w", user.Email, domain.ErrDuplicateEmail)
		}
	}

	u := *user
	now := time.Now().UTC()
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
		u.CreatedAt = now
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	u.UpdatedAt = now
	r.byID[u.ID] = u
	return &u, nil
}

func (r *MemoryUserRepository) DeleteByID(_ context.Context, id domain.UserID) error {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()

	// The users lock is released first: session updates look users up.
	if r.sessions != nil {
		r.sessions.dropParticipant(id)
	}
	return nil
}

// MemorySessionRepository implements domain.SessionRepository in memory.
// A single mutex guards every session, which makes Update atomic.
type MemorySessionRepository struct {
	mu     sync.Mutex
	nextID domain.SessionID
	byID   map[domain.SessionID]domain.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{byID: map[domain.SessionID]domain.Session{}}
}

func cloneSession(s domain.Session) *domain.Session {
	s.Participants = append([]domain.UserID{}, s.Participants...)
	return &s
}

func (r *MemorySessionRepository) FindByID(_ context.Context, id domain.SessionID) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(s), nil
}

func (r *MemorySessionRepository) FindAll(_ context.Context) ([]domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessions := make([]domain.Session, 0, len(r.byID))
	for _, s := range r.byID {
		sessions = append(sessions, *cloneSession(s))
	}
	slices.SortFunc(sessions, func(a, b domain.Session) int { return int(a.ID - b.ID) })
	return sessions, nil
}

func (r *MemorySessionRepository) Save(_ context.Context, session *domain.Session) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store(*session), nil
}

// store must be called with r.mu held.
func (r *MemorySessionRepository) store(s domain.Session) *domain.Session {
	now := time.Now().UTC()
	if s.ID == 0 {
		r.nextID++
		s.ID = r.nextID
		s.CreatedAt = now
	} else if s.ID > r.nextID {
		r.nextID = s.ID
	}
	s.UpdatedAt = now
	saved := cloneSession(s)
	r.byID[s.ID] = *saved
	return cloneSession(*saved)
}

func (r *MemorySessionRepository) DeleteByID(_ context.Context, id domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *MemorySessionRepository) Update(_ context.Context, id domain.SessionID, fn func(*domain.Session) error) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	working := cloneSession(current)
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = id
	return r.store(*working), nil
}

func (r *MemorySessionRepository) dropParticipant(userID domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.byID {
		if s.RemoveParticipant(userID) {
			r.byID[id] = s
		}
	}
}

func (r *MemorySessionRepository) clearTeacher(teacherID domain.TeacherID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.byID {
		if s.TeacherID == teacherID {
			s.TeacherID = 0
			r.byID[id] = s
		}
	}
}

// MemoryTeacherRepository implements domain.TeacherRepository in memory.
type MemoryTeacherRepository struct {
	mu       sync.RWMutex
	nextID   domain.TeacherID
	byID     map[domain.TeacherID]domain.Teacher
	sessions *MemorySessionRepository
}

func NewMemoryTeacherRepository() *MemoryTeacherRepository {
	return &MemoryTeacherRepository{byID: map[domain.TeacherID]domain.Teacher{}}
}

func (r *MemoryTeacherRepository) FindByID(_ context.Context, id domain.TeacherID) (*domain.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *MemoryTeacherRepository) FindAll(_ context.Context) ([]domain.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	teachers := make([]domain.Teacher, 0, len(r.byID))
	for _, t := range r.byID {
		teachers = append(teachers, t)
	}
	slices.SortFunc(teachers, func(a, b domain.Teacher) int { return int(a.ID - b.ID) })
	return teachers, nil
}

func (r *MemoryTeacherRepository) Save(_ context.Context, teacher *domain.Teacher) (*domain.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := *teacher
	now := time.Now().UTC()
	if t.ID == 0 {
		r.nextID++
		t.ID = r.nextID
		t.CreatedAt = now
	} else if t.ID > r.nextID {
		r.nextID = t.ID
	}
	t.UpdatedAt = now
	r.byID[t.ID] = t
	return &t, nil
}

func (r *MemoryTeacherRepository) DeleteByID(_ context.Context, id domain.TeacherID) error {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()

	if r.sessions != nil {
		r.sessions.clearTeacher(id)
	}
	return nil
}

var (
	_ domain.UserRepository    = (*MemoryUserRepository)(nil)
	_ domain.SessionRepository = (*MemorySessionRepository)(nil)
	_ domain.TeacherRepository = (*MemoryTeacherRepository)(nil)
)
