package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/duynhne/booking-service/internal/core/domain"
)

type stubValidator map[string]domain.Principal

func (s stubValidator) Validate(token string) (domain.Principal, error) {
	p, ok := s[token]
	if !ok {
		return domain.Principal{}, errors.New("invalid token")
	}
	return p, nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := stubValidator{
		"user-token":  {ID: 7, Email: "user@test.com"},
		"admin-token": {ID: 1, Email: "admin@test.com", Admin: true},
	}

	r := gin.New()
	authed := r.Group("", RequireAuth(tokens))
	authed.GET("/me", func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, p)
	})
	authed.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRequireAuth(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "no header", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic dXNlcjpwd2Q=", wantCode: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantCode: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer user-token", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	r := newAuthRouter()

	for token, want := range map[string]int{
		"user-token":  http.StatusForbidden,
		"admin-token": http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, token)
	}
}
