package usecase

import (
	"context"
	"fmt"
	"log"

	"staff-match/internal/domain/matching"
	"staff-match/internal/repository"

	"github.com/google/uuid"
)

type WeightSettingsUsecase interface {
	// Weights returns the stored profile, found=false when the manager has
	// never saved one and rankings run on the default heuristic.
	Weights(ctx context.Context, managerID uuid.UUID) (matching.Weights, bool, error)
	SaveWeights(ctx context.Context, managerID uuid.UUID, w matching.Weights) (matching.Weights, error)
}

type WeightSettings struct {
	repo   repository.WeightProfileRepository
	cache  CacheInvalidator
	logger *log.Logger
}

func NewWeightSettingsUsecase(repo repository.WeightProfileRepository, cache CacheInvalidator, logger *log.Logger) *WeightSettings {
	if logger == nil {
		logger = log.Default()
	}
	return &WeightSettings{repo: repo, cache: cache, logger: logger}
}

func (u *WeightSettings) Weights(ctx context.Context, managerID uuid.UUID) (matching.Weights, bool, error) {
	w, found, err := u.repo.FindByManager(ctx, managerID)
	if err != nil {
		return matching.Weights{}, false, fmt.Errorf("%w: load weight profile: %v", ErrInternal, err)
	}
	return w, found, nil
}

// SaveWeights validates and normalizes the profile before persisting it.
// A malformed profile is rejected outright and the stored one is untouched.
func (u *WeightSettings) SaveWeights(ctx context.Context, managerID uuid.UUID, w matching.Weights) (matching.Weights, error) {
	if err := w.Validate(); err != nil {
		return matching.Weights{}, fmt.Errorf("%w: %v", ErrInvalidWeightProfile, err)
	}

	normalized := w.Normalize()
	if err := u.repo.Upsert(ctx, managerID, normalized); err != nil {
		return matching.Weights{}, fmt.Errorf("%w: save weight profile: %v", ErrInternal, err)
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, RankCachePattern(managerID)); err != nil {
			u.logger.Printf("[Settings] cache invalidation failed: %v", err)
		}
	}
	return normalized, nil
}
