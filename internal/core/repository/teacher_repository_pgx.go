package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/duynhne/booking-service/internal/core/domain"
)

const teacherColumns = `id, first_name, last_name, created_at, updated_at`

// PgxTeacherRepository implements domain.TeacherRepository using pgxpool.
type PgxTeacherRepository struct {
	db DB
}

// NewTeacherRepository creates a new PgxTeacherRepository.
func NewTeacherRepository(db DB) *PgxTeacherRepository {
	return &PgxTeacherRepository{db: db}
}

func scanTeacher(row pgx.Row) (*domain.Teacher, error) {
	var (
		t  domain.Teacher
		id int64
	)
	if err := row.Scan(&id, &t.FirstName, &t.LastName, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.ID = domain.TeacherID(id)
	return &t, nil
}

// FindByID returns (nil, nil) when the teacher does not exist.
func (r *PgxTeacherRepository) FindByID(ctx context.Context, id domain.TeacherID) (*domain.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1`
	return scanTeacher(r.db.QueryRow(ctx, query, int64(id)))
}

func (r *PgxTeacherRepository) FindAll(ctx context.Context) ([]domain.Teacher, error) {
	rows, err := r.db.Query(ctx, `SELECT `+teacherColumns+` FROM teachers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := []domain.Teacher{}
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, *t)
	}
	return teachers, rows.Err()
}

func (r *PgxTeacherRepository) Save(ctx context.Context, teacher *domain.Teacher) (*domain.Teacher, error) {
	if teacher.ID == 0 {
		query := `INSERT INTO teachers (first_name, last_name) VALUES ($1, $2) RETURNING ` + teacherColumns
		return scanTeacher(r.db.QueryRow(ctx, query, teacher.FirstName, teacher.LastName))
	}

	query := `UPDATE teachers SET first_name = $2, last_name = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 RETURNING ` + teacherColumns
	saved, err := scanTeacher(r.db.QueryRow(ctx, query, int64(teacher.ID), teacher.FirstName, teacher.LastName))
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("update teacher %d: no such row", teacher.ID)
	}
	return saved, nil
}

func (r *PgxTeacherRepository) DeleteByID(ctx context.Context, id domain.TeacherID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, int64(id))
	return err
}
