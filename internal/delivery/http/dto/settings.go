package dto

type SaveWeightsRequest struct {
	Weights WeightsPayload `json:"weights" validate:"required"`
}

type WeightsResponse struct {
	Weights WeightsPayload `json:"weights"`
	Custom  bool           `json:"custom"`
}
