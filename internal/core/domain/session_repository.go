package domain

import (
	"context"
	"slices"
	"time"
)

// SessionID identifies a bookable session.
type SessionID int64

// Session is a scheduled class with its participant set.
// Participants is an ordered sequence that never holds the same UserID twice;
// mutate it only through AddParticipant and RemoveParticipant.
type Session struct {
	ID           SessionID `json:"id"`
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	TeacherID    TeacherID `json:"teacher_id"`
	Description  string    `json:"description"`
	Participants []UserID  `json:"users"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasParticipant reports whether userID is in the participant set.
func (s *Session) HasParticipant(userID UserID) bool {
	return slices.Contains(s.Participants, userID)
}

// AddParticipant appends userID unless it is already present.
// It returns false when the set was left unchanged.
func (s *Session) AddParticipant(userID UserID) bool {
	if s.HasParticipant(userID) {
		return false
	}
	s.Participants = append(s.Participants, userID)
	return true
}

// RemoveParticipant deletes userID from the set.
// It returns false when userID was not a participant.
func (s *Session) RemoveParticipant(userID UserID) bool {
	i := slices.Index(s.Participants, userID)
	if i < 0 {
		return false
	}
	s.Participants = slices.Delete(s.Participants, i, i+1)
	return true
}

// SessionRepository defines the data-access contract for the Session Store.
// Implementations live in internal/core/repository (Core layer).
type SessionRepository interface {
	// FindByID returns the session with its participants.
	// Returns (nil, nil) when the session does not exist.
	FindByID(ctx context.Context, id SessionID) (*Session, error)

	// FindAll returns every session ordered by id.
	FindAll(ctx context.Context) ([]Session, error)

	// Save inserts the session when ID is zero and updates it otherwise,
	// replacing the stored participant set with session.Participants.
	Save(ctx context.Context, session *Session) (*Session, error)

	// DeleteByID removes the session and its participations.
	DeleteByID(ctx context.Context, id SessionID) error

	// Update loads the session, applies fn and persists the result as one
	// atomic read-modify-write: concurrent Update calls on the same session
	// are serialized. When fn returns an error nothing is written and the
	// error is returned unchanged.
	// Returns (nil, nil) without calling fn when the session does not exist.
	// fn must not call back into any repository: implementations may hold a
	// lock or a pooled connection while it runs.
	Update(ctx context.Context, id SessionID, fn func(*Session) error) (*Session, error)
}
