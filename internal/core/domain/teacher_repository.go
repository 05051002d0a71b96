package domain

import (
	"context"
	"time"
)

// TeacherID identifies a teacher.
type TeacherID int64

// Teacher runs sessions.
type Teacher struct {
	ID        TeacherID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TeacherRepository defines the data-access contract for teachers.
type TeacherRepository interface {
	// FindByID returns (nil, nil) when the teacher does not exist.
	FindByID(ctx context.Context, id TeacherID) (*Teacher, error)
	FindAll(ctx context.Context) ([]Teacher, error)
	Save(ctx context.Context, teacher *Teacher) (*Teacher, error)
	DeleteByID(ctx context.Context, id TeacherID) error
}
