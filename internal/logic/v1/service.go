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

// AuthService implements login, registration and token resolution.
// It depends on repository interfaces (injected via constructor) and
// MUST NOT access the database or SQL directly.
type AuthService struct {
	users  domain.UserRepository
	tokens *TokenService
	hasher PasswordHasher
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, tokens *TokenService, hasher PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Authenticate verifies email and password against the Credential Store.
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.Principal, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.authenticate", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	row, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return domain.Principal{}, fmt.Errorf("query user %q: %w", email, err)
	}
	if row == nil || !s.hasher.Matches(password, row.PasswordHash) {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return domain.Principal{}, fmt.Errorf("authenticate user %q: %w", email, ErrInvalidCredentials)
	}

	span.SetAttributes(
		attribute.Int64("user.id", int64(row.ID)),
		attribute.Bool("auth.success", true),
	)
	return domain.PrincipalOf(row), nil
}

// Login authenticates the request and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.JwtResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	principal, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, _, err := s.tokens.Issue(principal)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue token for user %d: %w", principal.ID, err)
	}

	span.AddEvent("user.authenticated")

	return &domain.JwtResponse{
		Token:     token,
		Type:      "Bearer",
		ID:        principal.ID,
		Username:  principal.Email,
		FirstName: principal.FirstName,
		LastName:  principal.LastName,
		Admin:     principal.Admin,
	}, nil
}

// Register creates a non-admin account. It is not idempotent: any call with
// an email that is already stored fails with ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req domain.SignupRequest) (domain.UserID, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return 0, fmt.Errorf("register user %q: %w", req.Email, ErrEmailTaken)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("hash password: %w", err)
	}

	saved, err := s.users.Save(ctx, &domain.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Admin:        false,
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		// Lost a race with a concurrent signup for the same email.
		span.SetAttributes(attribute.Bool("registration.success", false))
		return 0, fmt.Errorf("register user %q: %w", req.Email, ErrEmailTaken)
	}
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("user.id", int64(saved.ID)),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return saved.ID, nil
}
