package usecase

import "errors"

var (
	ErrTaskDescriptionRequired = errors.New("task description is required")
	ErrInvalidDate             = errors.New("start and end dates must be valid YYYY-MM-DD dates")
	ErrInvalidDateRange        = errors.New("start date must be on or before end date")
	ErrInvalidWeightProfile    = errors.New("invalid weight profile")
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeNotRanked       = errors.New("employee not present in ranking")
	ErrEmbeddingUnavailable    = errors.New("embedding service unavailable")
	ErrInternal                = errors.New("internal error")
)
