package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	logicv1 "github.com/duynhne/booking-service/internal/logic/v1"
	"github.com/duynhne/booking-service/middleware"
)

// Handler groups HTTP handlers for the booking API v1.
// Dependencies are injected via the constructor; there is no global state.
type Handler struct {
	auth     *logicv1.AuthService
	tokens   *logicv1.TokenService
	sessions *logicv1.SessionService
	users    *logicv1.UserService
	teachers *logicv1.TeacherService
}

// NewHandler creates a new Handler.
func NewHandler(
	auth *logicv1.AuthService,
	tokens *logicv1.TokenService,
	sessions *logicv1.SessionService,
	users *logicv1.UserService,
	teachers *logicv1.TeacherService,
) *Handler {
	return &Handler{
		auth:     auth,
		tokens:   tokens,
		sessions: sessions,
		users:    users,
		teachers: teachers,
	}
}

// RegisterRoutes registers all booking API v1 routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/register", h.Register)

	authed := rg.Group("", middleware.RequireAuth(h.tokens))
	authed.GET("/auth/me", h.GetMe)

	authed.GET("/session", h.ListSessions)
	authed.GET("/session/:id", h.GetSession)
	authed.POST("/session/:id/participate/:userId", h.Participate)
	authed.DELETE("/session/:id/participate/:userId", h.NoLongerParticipate)

	authed.GET("/teacher", h.ListTeachers)
	authed.GET("/teacher/:id", h.GetTeacher)

	authed.GET("/user/:id", h.GetUser)
	authed.DELETE("/user/:id", h.DeleteUser)

	admin := authed.Group("", middleware.RequireAdmin())
	admin.POST("/session", h.CreateSession)
	admin.PUT("/session/:id", h.UpdateSession)
	admin.DELETE("/session/:id", h.DeleteSession)
	admin.POST("/teacher", h.CreateTeacher)
	admin.DELETE("/teacher/:id", h.DeleteTeacher)
}

func startSpan(c *gin.Context) (context.Context, trace.Span) {
	return middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
}

// pathID parses a numeric path parameter. Non-numeric ids are answered
// with 400 before any service is called.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps logic errors to HTTP responses.
func respondError(c *gin.Context, span trace.Span, err error, msg string) {
	span.RecordError(err)
	logger := zerolog.Ctx(c.Request.Context())

	var status int
	switch {
	case errors.Is(err, logicv1.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, logicv1.ErrDeleteDenied):
		// Unauthorized rather than forbidden, as existing clients expect.
		status = http.StatusUnauthorized
	case errors.Is(err, logicv1.ErrEmailTaken),
		errors.Is(err, logicv1.ErrAlreadyParticipant),
		errors.Is(err, logicv1.ErrNotParticipant):
		status = http.StatusBadRequest
	case errors.Is(err, logicv1.ErrSessionNotFound),
		errors.Is(err, logicv1.ErrUserNotFound),
		errors.Is(err, logicv1.ErrTargetNotFound),
		errors.Is(err, logicv1.ErrTeacherNotFound):
		status = http.StatusNotFound
	default:
		logger.Error().Err(err).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	logger.Warn().Err(err).Msg(msg)
	c.JSON(status, gin.H{"error": errorMessage(err)})
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, logicv1.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, logicv1.ErrDeleteDenied):
		return "Unauthorized"
	case errors.Is(err, logicv1.ErrAlreadyParticipant):
		return "User already participates in this session"
	case errors.Is(err, logicv1.ErrNotParticipant):
		return "User does not participate in this session"
	case errors.Is(err, logicv1.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, logicv1.ErrUserNotFound), errors.Is(err, logicv1.ErrTargetNotFound):
		return "User not found"
	case errors.Is(err, logicv1.ErrTeacherNotFound):
		return "Teacher not found"
	default:
		return "Bad request"
	}
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, span trace.Span, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger := zerolog.Ctx(c.Request.Context())
		span.SetAttributes(attribute.Bool("request.valid", false))
		span.RecordError(err)
		logger.Warn().Err(err).Msg("Invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	span.SetAttributes(attribute.Bool("request.valid", true))
	return true
}
