package handler

import (
	"errors"

	"staff-match/internal/delivery/http/dto"
	"staff-match/internal/delivery/http/middleware"
	"staff-match/internal/pkg/response"
	"staff-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SettingsHandler struct {
	uc usecase.WeightSettingsUsecase
}

func NewSettingsHandler(uc usecase.WeightSettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

func (h *SettingsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/settings")
	grp.Get("/weights", h.GetWeights)
	grp.Put("/weights", h.SaveWeights)
}

func (h *SettingsHandler) GetWeights(c fiber.Ctx) error {
	managerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	w, custom, err := h.uc.Weights(c.Context(), managerID)
	if err != nil {
		return mapSettingsUsecaseError(err)
	}

	out := dto.WeightsResponse{Weights: weightsToPayload(w), Custom: custom}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SettingsHandler) SaveWeights(c fiber.Ctx) error {
	managerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.SaveWeightsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.SaveWeights(c.Context(), managerID, weightsFromPayload(req.Weights))
	if err != nil {
		return mapSettingsUsecaseError(err)
	}

	out := dto.WeightsResponse{Weights: weightsToPayload(saved), Custom: true}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapSettingsUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidWeightProfile):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid weight profile", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
