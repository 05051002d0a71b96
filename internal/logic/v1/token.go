package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/duynhne/booking-service/internal/core/domain"
)

// tokenClaims is the wire payload of an identity token. Field names are
// part of the client contract.
type tokenClaims struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS512-signed identity tokens.
// It holds no state besides the key, so it is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a token for p and returns it with its expiry.
func (s *TokenService) Issue(p domain.Principal) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := tokenClaims{
		ID:        int64(p.ID),
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Admin:     p.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Validate verifies the signature and expiry of token and returns the
// Principal it carries. A token is expired from its exp instant onwards.
func (s *TokenService) Validate(token string) (domain.Principal, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, fmt.Errorf("token expired: %w", ErrInvalidToken)
		}
		return domain.Principal{}, fmt.Errorf("parse token: %v: %w", err, ErrInvalidToken)
	}

	return domain.Principal{
		ID:        domain.UserID(claims.ID),
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Admin:     claims.Admin,
	}, nil
}
