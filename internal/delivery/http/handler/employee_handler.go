package handler

import (
	"errors"

	"staff-match/internal/delivery/http/dto"
	"staff-match/internal/delivery/http/middleware"
	"staff-match/internal/domain/employee"
	"staff-match/internal/pkg/response"
	"staff-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EmployeeHandler struct {
	uc usecase.EmployeeUsecase
}

func NewEmployeeHandler(uc usecase.EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

func (h *EmployeeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/employees")
	grp.Put("/:employee_id/skills", h.ReplaceSkills)
	grp.Put("/:employee_id/goals", h.ReplaceGoals)
}

func (h *EmployeeHandler) ReplaceSkills(c fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("employee_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.ReplaceSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	skills := make([]employee.SkillEntry, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, employee.SkillEntry{Label: s.Label, Years: s.Years})
	}

	if err := h.uc.ReplaceSelfSkills(c.Context(), employeeID, skills); err != nil {
		return mapEmployeeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *EmployeeHandler) ReplaceGoals(c fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("employee_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.ReplaceGoalsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	goals := make([]employee.LearningGoal, 0, len(req.Goals))
	for _, g := range req.Goals {
		goals = append(goals, employee.LearningGoal{Label: g.Label, Priority: g.Priority})
	}

	if err := h.uc.ReplaceLearningGoals(c.Context(), employeeID, goals); err != nil {
		return mapEmployeeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapEmployeeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidSkillEntry):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill entry", nil, err)
	case errors.Is(err, usecase.ErrInvalidLearningGoal):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid learning goal", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
