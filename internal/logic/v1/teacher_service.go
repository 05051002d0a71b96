package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/booking-service/internal/core/domain"
	"github.com/duynhne/booking-service/middleware"
)

// TeacherService is plain CRUD over the teacher store.
type TeacherService struct {
	teachers domain.TeacherRepository
}

// NewTeacherService creates a TeacherService over the given store.
func NewTeacherService(teachers domain.TeacherRepository) *TeacherService {
	return &TeacherService{teachers: teachers}
}

// List returns every teacher ordered by id.
func (s *TeacherService) List(ctx context.Context) ([]domain.Teacher, error) {
	ctx, span := middleware.StartSpan(ctx, "teacher.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	teachers, err := s.teachers.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query teachers: %w", err)
	}
	return teachers, nil
}

// Get returns the teacher or ErrTeacherNotFound.
func (s *TeacherService) Get(ctx context.Context, id domain.TeacherID) (*domain.Teacher, error) {
	ctx, span := middleware.StartSpan(ctx, "teacher.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("teacher.id", int64(id)),
	))
	defer span.End()

	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query teacher %d: %w", id, err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("get teacher %d: %w", id, ErrTeacherNotFound)
	}
	return teacher, nil
}

// Create stores a new teacher.
func (s *TeacherService) Create(ctx context.Context, req domain.TeacherRequest) (*domain.Teacher, error) {
	ctx, span := middleware.StartSpan(ctx, "teacher.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	saved, err := s.teachers.Save(ctx, &domain.Teacher{FirstName: req.FirstName, LastName: req.LastName})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert teacher: %w", err)
	}
	span.SetAttributes(attribute.Int64("teacher.id", int64(saved.ID)))
	return saved, nil
}

// Delete removes the teacher; sessions it taught keep no teacher.
// A missing teacher fails with ErrTeacherNotFound.
func (s *TeacherService) Delete(ctx context.Context, id domain.TeacherID) error {
	ctx, span := middleware.StartSpan(ctx, "teacher.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("teacher.id", int64(id)),
	))
	defer span.End()

	if _, err := s.Get(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.teachers.DeleteByID(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete teacher %d: %w", id, err)
	}
	return nil
}
