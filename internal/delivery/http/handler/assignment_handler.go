package handler

import (
	"time"

	"staff-match/internal/delivery/http/middleware"
	"staff-match/internal/pkg/response"
	"staff-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssignmentHandler struct {
	uc usecase.ArchiveUsecase
}

func NewAssignmentHandler(uc usecase.ArchiveUsecase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

func (h *AssignmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/assignments")
	grp.Post("/archive", h.Archive)
}

func (h *AssignmentHandler) Archive(c fiber.Ctx) error {
	asOf := time.Time{}
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Dates must be YYYY-MM-DD", nil, err)
		}
		asOf = parsed
	}

	archived, err := h.uc.ArchiveCompleted(c.Context(), asOf)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"archived": archived})
}
