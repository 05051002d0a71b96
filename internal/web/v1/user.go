package v1

import (
	"net/http"

	pkgzerolog "github.com/duynhne/pkg/logger/zerolog"
	"github.com/gin-gonic/gin"

	"github.com/duynhne/booking-service/internal/core/domain"
	"github.com/duynhne/booking-service/middleware"
)

// GetUser handles GET /api/user/:id.
func (h *Handler) GetUser(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(ctx, domain.UserID(id))
	if err != nil {
		respondError(c, span, err, "Get user failed")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/user/:id. Only the account owner may
// delete it; anyone else gets 401.
func (h *Handler) DeleteUser(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	logger := pkgzerolog.FromContext(ctx)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.users.Delete(ctx, principal, domain.UserID(id)); err != nil {
		respondError(c, span, err, "Delete user failed")
		return
	}

	logger.Info().Int64("deleted_user_id", id).Msg("Account deleted")
	c.Status(http.StatusOK)
}
