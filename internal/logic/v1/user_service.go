package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/booking-service/internal/core/domain"
	"github.com/duynhne/booking-service/middleware"
)

// UserService implements account lookups and guarded deletion.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "user.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("user.id", int64(id)),
	))
	defer span.End()

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %d: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("get user %d: %w", id, ErrUserNotFound)
	}
	return user, nil
}

// Delete removes the account id on behalf of principal.
// The target is resolved first, so a missing account is always
// ErrTargetNotFound, before ownership is considered.
func (s *UserService) Delete(ctx context.Context, principal domain.Principal, id domain.UserID) error {
	ctx, span := middleware.StartSpan(ctx, "user.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("user.id", int64(id)),
		attribute.Int64("principal.id", int64(principal.ID)),
	))
	defer span.End()

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("query user %d: %w", id, err)
	}

	decision := AuthorizeDeleteAccount(principal, target)
	span.SetAttributes(attribute.String("access.decision", decision.String()))

	switch decision {
	case TargetNotFound:
		return fmt.Errorf("delete user %d: %w", id, ErrTargetNotFound)
	case Deny:
		return fmt.Errorf("delete user %d by %d: %w", id, principal.ID, ErrDeleteDenied)
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
