package v1

import (
	"net/http"

	pkgzerolog "github.com/duynhne/pkg/logger/zerolog"
	"github.com/gin-gonic/gin"

	"github.com/duynhne/booking-service/internal/core/domain"
)

// ListSessions handles GET /api/session.
func (h *Handler) ListSessions(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	sessions, err := h.sessions.List(ctx)
	if err != nil {
		respondError(c, span, err, "List sessions failed")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession handles GET /api/session/:id.
func (h *Handler) GetSession(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessions.Get(ctx, domain.SessionID(id))
	if err != nil {
		respondError(c, span, err, "Get session failed")
		return
	}
	c.JSON(http.StatusOK, session)
}

// CreateSession handles POST /api/session (admin).
func (h *Handler) CreateSession(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	var req domain.SessionRequest
	if !bindJSON(c, span, &req) {
		return
	}

	session, err := h.sessions.Create(ctx, req)
	if err != nil {
		respondError(c, span, err, "Create session failed")
		return
	}

	logger.Info().Int64("session_id", int64(session.ID)).Msg("Session created")
	c.JSON(http.StatusOK, session)
}

// UpdateSession handles PUT /api/session/:id (admin).
func (h *Handler) UpdateSession(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req domain.SessionRequest
	if !bindJSON(c, span, &req) {
		return
	}

	session, err := h.sessions.Update(ctx, domain.SessionID(id), req)
	if err != nil {
		respondError(c, span, err, "Update session failed")
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession handles DELETE /api/session/:id (admin).
func (h *Handler) DeleteSession(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.sessions.Delete(ctx, domain.SessionID(id)); err != nil {
		respondError(c, span, err, "Delete session failed")
		return
	}

	logger.Info().Int64("session_id", id).Msg("Session deleted")
	c.Status(http.StatusOK)
}

// Participate handles POST /api/session/:id/participate/:userId.
func (h *Handler) Participate(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if _, err := h.sessions.Participate(ctx, domain.SessionID(id), domain.UserID(userID)); err != nil {
		respondError(c, span, err, "Participate failed")
		return
	}

	logger.Info().Int64("session_id", id).Int64("participant_id", userID).Msg("Participation added")
	c.Status(http.StatusOK)
}

// NoLongerParticipate handles DELETE /api/session/:id/participate/:userId.
func (h *Handler) NoLongerParticipate(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.sessions.NoLongerParticipate(ctx, domain.SessionID(id), domain.UserID(userID)); err != nil {
		respondError(c, span, err, "Leave failed")
		return
	}

	logger.Info().Int64("session_id", id).Int64("participant_id", userID).Msg("Participation removed")
	c.Status(http.StatusOK)
}
