package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynhne/booking-service/internal/core/domain"
)

// ListTeachers handles GET /api/teacher.
func (h *Handler) ListTeachers(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	teachers, err := h.teachers.List(ctx)
	if err != nil {
		respondError(c, span, err, "List teachers failed")
		return
	}
	c.JSON(http.StatusOK, teachers)
}

// GetTeacher handles GET /api/teacher/:id.
func (h *Handler) GetTeacher(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	teacher, err := h.teachers.Get(ctx, domain.TeacherID(id))
	if err != nil {
		respondError(c, span, err, "Get teacher failed")
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// CreateTeacher handles POST /api/teacher (admin).
func (h *Handler) CreateTeacher(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req domain.TeacherRequest
	if !bindJSON(c, span, &req) {
		return
	}

	teacher, err := h.teachers.Create(ctx, req)
	if err != nil {
		respondError(c, span, err, "Create teacher failed")
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// DeleteTeacher handles DELETE /api/teacher/:id (admin).
func (h *Handler) DeleteTeacher(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.teachers.Delete(ctx, domain.TeacherID(id)); err != nil {
		respondError(c, span, err, "Delete teacher failed")
		return
	}
	c.Status(http.StatusOK)
}
