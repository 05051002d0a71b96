package v1

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/booking-service/internal/core/domain"
	"github.com/duynhne/booking-service/middleware"
)

// SessionService implements session management and the participation
// state machine. Membership changes run inside SessionRepository.Update so
// the read-modify-write of a participant set is atomic per session.
type SessionService struct {
	sessions domain.SessionRepository
	users    domain.UserRepository
	teachers domain.TeacherRepository
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessions domain.SessionRepository, users domain.UserRepository, teachers domain.TeacherRepository) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		teachers: teachers,
	}
}

// List returns every session.
func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	ctx, span := middleware.StartSpan(ctx, "session.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	sessions, err := s.sessions.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return sessions, nil
}

// Get returns one session.
func (s *SessionService) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	ctx, span := middleware.StartSpan(ctx, "session.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("session.id", int64(id)),
	))
	defer span.End()

	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query session %d: %w", id, err)
	}
	if session == nil {
		return nil, fmt.Errorf("get session %d: %w", id, ErrSessionNotFound)
	}
	return session, nil
}

func (s *SessionService) checkTeacher(ctx context.Context, id domain.TeacherID) error {
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("query teacher %d: %w", id, err)
	}
	if teacher == nil {
		return fmt.Errorf("teacher %d: %w", id, ErrTeacherNotFound)
	}
	return nil
}

// Create stores a new session with no participants.
func (s *SessionService) Create(ctx context.Context, req domain.SessionRequest) (*domain.Session, error) {
	ctx, span := middleware.StartSpan(ctx, "session.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	saved, err := s.sessions.Save(ctx, &domain.Session{
		Name:         req.Name,
		Date:         req.Date,
		TeacherID:    req.TeacherID,
		Description:  req.Description,
		Participants: []domain.UserID{},
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert session: %w", err)
	}

	span.SetAttributes(attribute.Int64("session.id", int64(saved.ID)))
	return saved, nil
}

// Update replaces the descriptive fields of a session and keeps its
// participants.
func (s *SessionService) Update(ctx context.Context, id domain.SessionID, req domain.SessionRequest) (*domain.Session, error) {
	ctx, span := middleware.StartSpan(ctx, "session.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("session.id", int64(id)),
	))
	defer span.End()

	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	updated, err := s.sessions.Update(ctx, id, func(session *domain.Session) error {
		session.Name = req.Name
		session.Date = req.Date
		session.TeacherID = req.TeacherID
		session.Description = req.Description
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update session %d: %w", id, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("update session %d: %w", id, ErrSessionNotFound)
	}
	return updated, nil
}

// Delete removes a session.
func (s *SessionService) Delete(ctx context.Context, id domain.SessionID) error {
	ctx, span := middleware.StartSpan(ctx, "session.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("session.id", int64(id)),
	))
	defer span.End()

	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("query session %d: %w", id, err)
	}
	if session == nil {
		return fmt.Errorf("delete session %d: %w", id, ErrSessionNotFound)
	}

	if err := s.sessions.DeleteByID(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}

// Participate adds userID to the session's participant set.
//
// Checks run in a fixed order: session existence (ErrSessionNotFound), then
// user existence (ErrUserNotFound), then membership (ErrAlreadyParticipant).
// A second join is an error, not a no-op.
func (s *SessionService) Participate(ctx context.Context, id domain.SessionID, userID domain.UserID) (*domain.Session, error) {
	ctx, span := middleware.StartSpan(ctx, "session.participate", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("session.id", int64(id)),
		attribute.Int64("user.id", int64(userID)),
	))
	defer span.End()

	updated, err := s.join(ctx, id, userID)

	middleware.RecordParticipation("join", participationResult(err))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.AddEvent("session.joined")
	return updated, nil
}

// join runs the existence checks before taking the session lock. The user
// lookup must not happen inside Update: on Postgres that would hold the
// locked transaction's connection while acquiring a second one.
func (s *SessionService) join(ctx context.Context, id domain.SessionID, userID domain.UserID) (*domain.Session, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("query session %d: %w", id, err)
	}
	if session == nil {
		return nil, fmt.Errorf("participate session %d: %w", id, ErrSessionNotFound)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("participate session %d: user %d: %w", id, userID, ErrUserNotFound)
	}

	updated, err := s.sessions.Update(ctx, id, func(session *domain.Session) error {
		if !session.AddParticipant(userID) {
			return fmt.Errorf("participate session %d: user %d: %w", id, userID, ErrAlreadyParticipant)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Deleted between the lookup and the lock.
		return nil, fmt.Errorf("participate session %d: %w", id, ErrSessionNotFound)
	}
	return updated, nil
}

// NoLongerParticipate removes userID from the session's participant set.
// It fails with ErrSessionNotFound for a missing session and with
// ErrNotParticipant when userID is not in the set.
func (s *SessionService) NoLongerParticipate(ctx context.Context, id domain.SessionID, userID domain.UserID) error {
	ctx, span := middleware.StartSpan(ctx, "session.no_longer_participate", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("session.id", int64(id)),
		attribute.Int64("user.id", int64(userID)),
	))
	defer span.End()

	updated, err := s.sessions.Update(ctx, id, func(session *domain.Session) error {
		if !session.RemoveParticipant(userID) {
			return fmt.Errorf("leave session %d: user %d: %w", id, userID, ErrNotParticipant)
		}
		return nil
	})
	if err == nil && updated == nil {
		err = fmt.Errorf("leave session %d: %w", id, ErrSessionNotFound)
	}

	middleware.RecordParticipation("leave", participationResult(err))
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.AddEvent("session.left")
	return nil
}

func participationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrAlreadyParticipant):
		return "already_participant"
	case errors.Is(err, ErrNotParticipant):
		return "not_participant"
	default:
		return "error"
	}
}
