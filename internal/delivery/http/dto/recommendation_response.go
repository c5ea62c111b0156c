package dto

import "github.com/google/uuid"

type ScoresResponse struct {
	Semantic     float64 `json:"semantic"`
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Role         float64 `json:"role"`
	Availability float64 `json:"availability"`
	Fairness     float64 `json:"fairness"`
	Preference   float64 `json:"preference"`
}

type RecommendationEntryResponse struct {
	EmployeeID          uuid.UUID      `json:"employee_id"`
	Name                string         `json:"name"`
	Role                string         `json:"role"`
	ScorePercent        int            `json:"score_percent"`
	AvailabilityPercent int            `json:"availability_percent"`
	AvailabilityLabel   string         `json:"availability_label"`
	Skills              []string       `json:"skills"`
	LearningGoals       []string       `json:"learning_goals"`
	WorkloadScore       float64        `json:"workload_score"`
	Reason              string         `json:"reason"`
	FinalScore          float64        `json:"final_score"`
	Scores              ScoresResponse `json:"scores"`
}

type WarningResponse struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Field      string    `json:"field"`
	Detail     string    `json:"detail"`
}

type RecommendationResponse struct {
	Employees []RecommendationEntryResponse `json:"employees"`
	Warnings  []WarningResponse             `json:"warnings"`
}
