package dto

type SkillEntryPayload struct {
	Label string  `json:"label" validate:"required"`
	Years float64 `json:"years" validate:"gte=0"`
}

type ReplaceSkillsRequest struct {
	Skills []SkillEntryPayload `json:"skills" validate:"dive"`
}

type LearningGoalPayload struct {
	Label    string `json:"label" validate:"required"`
	Priority int    `json:"priority" validate:"gte=1,lte=5"`
}

type ReplaceGoalsRequest struct {
	Goals []LearningGoalPayload `json:"goals" validate:"dive"`
}
