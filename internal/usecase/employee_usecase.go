package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"staff-match/internal/domain/employee"
	"staff-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidSkillEntry   = errors.New("skill entries need a non-empty label and non-negative years")
	ErrInvalidLearningGoal = errors.New("learning goals need a non-empty label and a priority between 1 and 5")
)

// CacheInvalidator is the slice of the cache used to drop stale rankings
// after roster writes; nil disables invalidation.
type CacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type EmployeeUsecase interface {
	ReplaceSelfSkills(ctx context.Context, employeeID uuid.UUID, skills []employee.SkillEntry) error
	ReplaceLearningGoals(ctx context.Context, employeeID uuid.UUID, goals []employee.LearningGoal) error
}

type Employees struct {
	repo   repository.EmployeeRepository
	cache  CacheInvalidator
	logger *log.Logger
}

func NewEmployeeUsecase(repo repository.EmployeeRepository, cache CacheInvalidator, logger *log.Logger) *Employees {
	if logger == nil {
		logger = log.Default()
	}
	return &Employees{repo: repo, cache: cache, logger: logger}
}

// ReplaceSelfSkills swaps the employee's self-asserted skills wholesale.
// An empty list clears them; entries are never patched in place.
func (u *Employees) ReplaceSelfSkills(ctx context.Context, employeeID uuid.UUID, skills []employee.SkillEntry) error {
	cleaned := make([]employee.SkillEntry, 0, len(skills))
	for _, s := range skills {
		label := strings.TrimSpace(s.Label)
		if label == "" || s.Years < 0 {
			return ErrInvalidSkillEntry
		}
		cleaned = append(cleaned, employee.SkillEntry{Label: label, Years: s.Years})
	}

	if err := u.ensureExists(ctx, employeeID); err != nil {
		return err
	}
	if err := u.repo.ReplaceSelfSkills(ctx, employeeID, cleaned); err != nil {
		return fmt.Errorf("%w: replace self skills: %v", ErrInternal, err)
	}

	u.invalidateRankings(ctx, employeeID)
	return nil
}

func (u *Employees) ReplaceLearningGoals(ctx context.Context, employeeID uuid.UUID, goals []employee.LearningGoal) error {
	cleaned := make([]employee.LearningGoal, 0, len(goals))
	for _, g := range goals {
		label := strings.TrimSpace(g.Label)
		if label == "" || g.Priority < 1 || g.Priority > 5 {
			return ErrInvalidLearningGoal
		}
		cleaned = append(cleaned, employee.LearningGoal{Label: label, Priority: g.Priority})
	}

	if err := u.ensureExists(ctx, employeeID); err != nil {
		return err
	}
	if err := u.repo.ReplaceLearningGoals(ctx, employeeID, cleaned); err != nil {
		return fmt.Errorf("%w: replace learning goals: %v", ErrInternal, err)
	}

	u.invalidateRankings(ctx, employeeID)
	return nil
}

func (u *Employees) ensureExists(ctx context.Context, employeeID uuid.UUID) error {
	exists, err := u.repo.ExistsByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("%w: check employee: %v", ErrInternal, err)
	}
	if !exists {
		return ErrEmployeeNotFound
	}
	return nil
}

func (u *Employees) invalidateRankings(ctx context.Context, employeeID uuid.UUID) {
	if u.cache == nil {
		return
	}
	managerID, err := u.repo.ManagerIDByEmployee(ctx, employeeID)
	if err != nil {
		u.logger.Printf("[Employees] cache invalidation skipped, manager lookup failed: %v", err)
		return
	}
	if err := u.cache.DeleteByPattern(ctx, RankCachePattern(managerID)); err != nil {
		u.logger.Printf("[Employees] cache invalidation failed: %v", err)
	}
}
