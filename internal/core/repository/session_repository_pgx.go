package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/duynhne/booking-service/internal/core/domain"
)

const sessionColumns = `id, name, description, date, teacher_id, created_at, updated_at`

// PgxSessionRepository implements domain.SessionRepository using pgxpool.
// Participants live in the participate join table.
type PgxSessionRepository struct {
	db DB
}

// NewSessionRepository creates a new PgxSessionRepository.
func NewSessionRepository(db DB) *PgxSessionRepository {
	return &PgxSessionRepository{db: db}
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var (
		s         domain.Session
		id        int64
		teacherID *int64
	)
	err := row.Scan(&id, &s.Name, &s.Description, &s.Date, &teacherID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.ID = domain.SessionID(id)
	if teacherID != nil {
		s.TeacherID = domain.TeacherID(*teacherID)
	}
	s.Participants = []domain.UserID{}
	return &s, nil
}

func loadParticipants(ctx context.Context, q querier, id domain.SessionID) ([]domain.UserID, error) {
	query := `SELECT user_id FROM participate WHERE session_id = $1 ORDER BY joined_at, user_id`
	rows, err := q.Query(ctx, query, int64(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []domain.UserID{}
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		ids = append(ids, domain.UserID(userID))
	}
	return ids, rows.Err()
}

// writeParticipants makes the stored set equal to ids while keeping the
// join order of users that stay.
func writeParticipants(ctx context.Context, q querier, id domain.SessionID, ids []domain.UserID) error {
	keep := make([]int64, 0, len(ids))
	for _, userID := range ids {
		keep = append(keep, int64(userID))
	}

	query := `DELETE FROM participate WHERE session_id = $1 AND NOT (user_id = ANY($2))`
	if _, err := q.Exec(ctx, query, int64(id), keep); err != nil {
		return fmt.Errorf("prune participants: %w", err)
	}

	insert := `INSERT INTO participate (session_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, userID := range keep {
		if _, err := q.Exec(ctx, insert, int64(id), userID); err != nil {
			return fmt.Errorf("insert participant %d: %w", userID, err)
		}
	}
	return nil
}

func nullableTeacher(id domain.TeacherID) *int64 {
	if id == 0 {
		return nil
	}
	v := int64(id)
	return &v
}

// writeSession upserts the session row and its participants using q.
func writeSession(ctx context.Context, q querier, session *domain.Session) (*domain.Session, error) {
	var (
		saved *domain.Session
		err   error
	)
	if session.ID == 0 {
		query := `INSERT INTO sessions (name, description, date, teacher_id)
			VALUES ($1, $2, $3, $4) RETURNING ` + sessionColumns
		saved, err = scanSession(q.QueryRow(ctx, query,
			session.Name, session.Description, session.Date, nullableTeacher(session.TeacherID)))
	} else {
		query := `UPDATE sessions
			SET name = $2, description = $3, date = $4, teacher_id = $5, updated_at = CURRENT_TIMESTAMP
			WHERE id = $1 RETURNING ` + sessionColumns
		saved, err = scanSession(q.QueryRow(ctx, query,
			int64(session.ID), session.Name, session.Description, session.Date, nullableTeacher(session.TeacherID)))
	}
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("update session %d: no such row", session.ID)
	}

	if err := writeParticipants(ctx, q, saved.ID, session.Participants); err != nil {
		return nil, err
	}
	saved.Participants = append(saved.Participants, session.Participants...)
	return saved, nil
}

// FindByID returns the session with its participants.
// Returns (nil, nil) when the session does not exist.
func (r *PgxSessionRepository) FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	session, err := scanSession(r.db.QueryRow(ctx, query, int64(id)))
	if err != nil || session == nil {
		return nil, err
	}

	session.Participants, err = loadParticipants(ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("load participants of session %d: %w", id, err)
	}
	return session, nil
}

// FindAll returns every session ordered by id.
func (r *PgxSessionRepository) FindAll(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.db.Query(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	sessions := []domain.Session{}
	index := map[domain.SessionID]int{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		index[s.ID] = len(sessions)
		sessions = append(sessions, *s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := r.db.Query(ctx, `SELECT session_id, user_id FROM participate ORDER BY joined_at, user_id`)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var sessionID, userID int64
		if err := prows.Scan(&sessionID, &userID); err != nil {
			return nil, err
		}
		if i, ok := index[domain.SessionID(sessionID)]; ok {
			sessions[i].Participants = append(sessions[i].Participants, domain.UserID(userID))
		}
	}
	return sessions, prows.Err()
}

// Save inserts or updates the session and its participant set in one transaction.
func (r *PgxSessionRepository) Save(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	saved, err := writeSession(ctx, tx, session)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}

// DeleteByID removes the session; participations cascade in the schema.
func (r *PgxSessionRepository) DeleteByID(ctx context.Context, id domain.SessionID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, int64(id))
	return err
}

// Update locks the session row with SELECT ... FOR UPDATE for the whole
// read-modify-write, so concurrent joins on one session cannot lose writes.
func (r *PgxSessionRepository) Update(ctx context.Context, id domain.SessionID, fn func(*domain.Session) error) (*domain.Session, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 FOR UPDATE`
	session, err := scanSession(tx.QueryRow(ctx, query, int64(id)))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	session.Participants, err = loadParticipants(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("load participants of session %d: %w", id, err)
	}

	if err := fn(session); err != nil {
		return nil, err
	}
	session.ID = id

	saved, err := writeSession(ctx, tx, session)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}
