package dto

// WeightsPayload is an optional per-request override of the scoring weights.
type WeightsPayload struct {
	Semantic     float64 `json:"semantic" validate:"gte=0"`
	Skill        float64 `json:"skill" validate:"gte=0"`
	Experience   float64 `json:"experience" validate:"gte=0"`
	Role         float64 `json:"role" validate:"gte=0"`
	Availability float64 `json:"availability" validate:"gte=0"`
	Fairness     float64 `json:"fairness" validate:"gte=0"`
	Preference   float64 `json:"preference" validate:"gte=0"`
}

type RecommendationRequest struct {
	TaskDescription string          `json:"task_description" validate:"required"`
	StartDate       string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string          `json:"end_date" validate:"required,datetime=2006-01-02"`
	Weights         *WeightsPayload `json:"weights,omitempty"`
}
