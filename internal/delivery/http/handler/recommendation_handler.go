package handler

import (
	"errors"
	"fmt"
	"strconv"

	"staff-match/internal/delivery/http/dto"
	"staff-match/internal/delivery/http/middleware"
	"staff-match/internal/domain/matching"
	"staff-match/internal/pkg/response"
	"staff-match/internal/repository"
	"staff-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/recommendations")
	grp.Post("/", h.Recommend)
	grp.Get("/employees/:employee_id", h.Explain)
}

func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	managerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.RecommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Rank(c.Context(), rankParams(managerID, req.TaskDescription, req.StartDate, req.EndDate, req.Weights))
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toRecommendationResponse(res))
}

func (h *RecommendationHandler) Explain(c fiber.Ctx) error {
	managerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	employeeID, err := uuid.Parse(c.Params("employee_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	wp, err := weightsFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid weight profile", nil, err)
	}

	p := rankParams(managerID, c.Query("task_description"), c.Query("start_date"), c.Query("end_date"), wp)
	entry, err := h.uc.Explain(c.Context(), employeeID, p)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toEntryResponse(entry))
}

func rankParams(managerID uuid.UUID, task, start, end string, wp *dto.WeightsPayload) usecase.RankParams {
	p := usecase.RankParams{
		ManagerID:       managerID,
		TaskDescription: task,
		StartDate:       start,
		EndDate:         end,
	}
	if wp != nil {
		w := weightsFromPayload(*wp)
		p.Weights = &w
	}
	return p
}

// weightsFromQuery reads the same optional weight overrides the ranking POST
// accepts in its body, so a single-employee lookup can reproduce the exact
// scores of the ranking it came from. Absent params mean no override.
func weightsFromQuery(c fiber.Ctx) (*dto.WeightsPayload, error) {
	var wp dto.WeightsPayload
	found := false
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"weight_semantic", &wp.Semantic},
		{"weight_skill", &wp.Skill},
		{"weight_experience", &wp.Experience},
		{"weight_role", &wp.Role},
		{"weight_availability", &wp.Availability},
		{"weight_fairness", &wp.Fairness},
		{"weight_preference", &wp.Preference},
	} {
		raw := c.Query(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.key, err)
		}
		*f.dst = v
		found = true
	}
	if !found {
		return nil, nil
	}
	return &wp, nil
}

func weightsFromPayload(wp dto.WeightsPayload) matching.Weights {
	return matching.Weights{
		Semantic:     wp.Semantic,
		Skill:        wp.Skill,
		Experience:   wp.Experience,
		Role:         wp.Role,
		Availability: wp.Availability,
		Fairness:     wp.Fairness,
		Preference:   wp.Preference,
	}
}

func weightsToPayload(w matching.Weights) dto.WeightsPayload {
	return dto.WeightsPayload{
		Semantic:     w.Semantic,
		Skill:        w.Skill,
		Experience:   w.Experience,
		Role:         w.Role,
		Availability: w.Availability,
		Fairness:     w.Fairness,
		Preference:   w.Preference,
	}
}

func toRecommendationResponse(res usecase.RankResult) dto.RecommendationResponse {
	out := dto.RecommendationResponse{
		Employees: make([]dto.RecommendationEntryResponse, 0, len(res.Entries)),
		Warnings:  make([]dto.WarningResponse, 0, len(res.Warnings)),
	}
	for _, e := range res.Entries {
		out.Employees = append(out.Employees, toEntryResponse(e))
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, toWarningResponse(w))
	}
	return out
}

func toEntryResponse(e matching.Entry) dto.RecommendationEntryResponse {
	return dto.RecommendationEntryResponse{
		EmployeeID:          e.EmployeeID,
		Name:                e.Name,
		Role:                e.Role,
		ScorePercent:        e.ScorePercent,
		AvailabilityPercent: e.AvailabilityPercent,
		AvailabilityLabel:   e.AvailabilityLabel,
		Skills:              e.Skills,
		LearningGoals:       e.LearningGoals,
		WorkloadScore:       e.WorkloadScore,
		Reason:              e.Reason,
		FinalScore:          e.FinalScore,
		Scores: dto.ScoresResponse{
			Semantic:     e.Scores.Semantic,
			Skill:        e.Scores.Skill,
			Experience:   e.Scores.Experience,
			Role:         e.Scores.Role,
			Availability: e.Scores.Availability,
			Fairness:     e.Scores.Fairness,
			Preference:   e.Scores.Preference,
		},
	}
}

func toWarningResponse(w repository.ParseWarning) dto.WarningResponse {
	return dto.WarningResponse{
		EmployeeID: w.EmployeeID,
		Field:      w.Field,
		Detail:     w.Detail,
	}
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrTaskDescriptionRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Task description is required", nil, err)
	case errors.Is(err, usecase.ErrInvalidDate):
		return middleware.NewAppError(fiber.StatusBadRequest, "Dates must be YYYY-MM-DD", nil, err)
	case errors.Is(err, usecase.ErrInvalidDateRange):
		return middleware.NewAppError(fiber.StatusBadRequest, "End date precedes start date", nil, err)
	case errors.Is(err, usecase.ErrInvalidWeightProfile):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid weight profile", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotRanked):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not in ranking", nil, err)
	case errors.Is(err, usecase.ErrEmbeddingUnavailable):
		return middleware.NewAppError(fiber.StatusInternalServerError, "Embedding service unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
