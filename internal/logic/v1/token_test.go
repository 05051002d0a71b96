package v1

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/booking-service/internal/core/domain"
)

var issuedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour).WithClock(fixedClock(issuedAt))
	want := domain.Principal{ID: 42, Email: "admin@test.com", FirstName: "Ada", LastName: "Lovelace", Admin: true}

	token, exp, err := svc.Issue(want)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour), exp)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokenService_PayloadFields(t *testing.T) {
	svc := NewTokenService("secret", time.Hour).WithClock(fixedClock(issuedAt))
	token, _, err := svc.Issue(domain.Principal{ID: 7, Email: "user@test.com", FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	for _, key := range []string{"id", "email", "firstName", "lastName", "admin", "sub", "iat", "exp"} {
		assert.Contains(t, claims, key)
	}
	assert.Equal(t, "user@test.com", claims["sub"])
}

func TestTokenService_Expiry(t *testing.T) {
	issuer := NewTokenService("secret", time.Hour).WithClock(fixedClock(issuedAt))
	token, _, err := issuer.Issue(domain.Principal{ID: 1, Email: "user@test.com"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{name: "just issued", at: issuedAt},
		{name: "one second before expiry", at: issuedAt.Add(time.Hour - time.Second)},
		{name: "at expiry", at: issuedAt.Add(time.Hour), wantErr: true},
		{name: "after expiry", at: issuedAt.Add(2 * time.Hour), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewTokenService("secret", time.Hour).WithClock(fixedClock(tt.at))
			_, err := validator.Validate(token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, _, err := svc.Issue(domain.Principal{ID: 1, Email: "user@test.com"})
	require.NoError(t, err)

	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": 1, "email": "user@test.com", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id": 1, "email": "user@test.com",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "tampered payload", token: tampered},
		{name: "other secret", token: mustIssue(t, NewTokenService("other", time.Hour))},
		{name: "other algorithm", token: hs256},
		{name: "missing exp", token: noExp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func mustIssue(t *testing.T, svc *TokenService) string {
	t.Helper()
	token, _, err := svc.Issue(domain.Principal{ID: 1, Email: "user@test.com"})
	require.NoError(t, err)
	return token
}
