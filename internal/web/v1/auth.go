package v1

import (
	"errors"
	"net/http"

	pkgzerolog "github.com/duynhne/pkg/logger/zerolog"
	"github.com/gin-gonic/gin"

	"github.com/duynhne/booking-service/internal/core/domain"
	logicv1 "github.com/duynhne/booking-service/internal/logic/v1"
	"github.com/duynhne/booking-service/middleware"
)

// Login handles HTTP request for user login.
// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	var req domain.LoginRequest
	if !bindJSON(c, span, &req) {
		return
	}

	response, err := h.auth.Login(ctx, req)
	if err != nil {
		respondError(c, span, err, "Login failed")
		return
	}

	logger.Info().Int64("user_id", int64(response.ID)).Msg("Login successful")
	c.JSON(http.StatusOK, response)
}

// Register handles HTTP request for user registration.
// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	var req domain.SignupRequest
	if !bindJSON(c, span, &req) {
		return
	}

	userID, err := h.auth.Register(ctx, req)
	if err != nil {
		if errors.Is(err, logicv1.ErrEmailTaken) {
			span.RecordError(err)
			logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
			c.JSON(http.StatusBadRequest, domain.MessageResponse{Message: "Error: Email is already taken!"})
			return
		}
		respondError(c, span, err, "Registration failed")
		return
	}

	logger.Info().Int64("user_id", int64(userID)).Msg("Registration successful")
	c.JSON(http.StatusOK, domain.MessageResponse{Message: "User registered successfully!"})
}

// GetMe returns the principal of the bearer token.
// GET /api/auth/me
// Authorization: Bearer <token>
func (h *Handler) GetMe(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, principal)
}
