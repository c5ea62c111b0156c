package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"staff-match/internal/domain/employee"

	"github.com/google/uuid"
)

func TestReplaceSelfSkills_InvalidEntries(t *testing.T) {
	uc := NewEmployeeUsecase(&mockEmployeeRepo{exists: true}, nil, nil)

	err := uc.ReplaceSelfSkills(context.Background(), uuid.New(), []employee.SkillEntry{{Label: "  "}})
	if !errors.Is(err, ErrInvalidSkillEntry) {
		t.Fatalf("expected ErrInvalidSkillEntry for blank label, got %v", err)
	}

	err = uc.ReplaceSelfSkills(context.Background(), uuid.New(), []employee.SkillEntry{{Label: "Go", Years: -1}})
	if !errors.Is(err, ErrInvalidSkillEntry) {
		t.Fatalf("expected ErrInvalidSkillEntry for negative years, got %v", err)
	}
}

func TestReplaceSelfSkills_UnknownEmployee(t *testing.T) {
	uc := NewEmployeeUsecase(&mockEmployeeRepo{exists: false}, nil, nil)

	err := uc.ReplaceSelfSkills(context.Background(), uuid.New(), nil)
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestReplaceSelfSkills_ReplacesAndInvalidates(t *testing.T) {
	managerID := uuid.New()
	repo := &mockEmployeeRepo{exists: true, managerID: managerID}
	cache := newFakeCache()
	uc := NewEmployeeUsecase(repo, cache, nil)

	employeeID := uuid.New()
	err := uc.ReplaceSelfSkills(context.Background(), employeeID, []employee.SkillEntry{{Label: " Python ", Years: 3}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got := repo.replacedSkills[employeeID]
	if len(got) != 1 || got[0].Label != "Python" {
		t.Fatalf("labels should persist trimmed, got %+v", got)
	}
	if len(cache.patterns) != 1 || !strings.Contains(cache.patterns[0], managerID.String()) {
		t.Fatalf("manager rankings should be invalidated, got %v", cache.patterns)
	}
}

func TestReplaceSelfSkills_EmptyListClears(t *testing.T) {
	repo := &mockEmployeeRepo{exists: true}
	uc := NewEmployeeUsecase(repo, nil, nil)

	employeeID := uuid.New()
	if err := uc.ReplaceSelfSkills(context.Background(), employeeID, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got, ok := repo.replacedSkills[employeeID]; !ok || len(got) != 0 {
		t.Fatalf("empty replacement should still run, got %+v ok=%v", got, ok)
	}
}

func TestReplaceLearningGoals_PriorityBounds(t *testing.T) {
	uc := NewEmployeeUsecase(&mockEmployeeRepo{exists: true}, nil, nil)

	for _, p := range []int{0, 6, -1} {
		err := uc.ReplaceLearningGoals(context.Background(), uuid.New(), []employee.LearningGoal{{Label: "Airflow", Priority: p}})
		if !errors.Is(err, ErrInvalidLearningGoal) {
			t.Fatalf("priority %d should be rejected, got %v", p, err)
		}
	}
}

func TestReplaceLearningGoals_Success(t *testing.T) {
	repo := &mockEmployeeRepo{exists: true, managerID: uuid.New()}
	uc := NewEmployeeUsecase(repo, nil, nil)

	employeeID := uuid.New()
	err := uc.ReplaceLearningGoals(context.Background(), employeeID, []employee.LearningGoal{{Label: "Airflow", Priority: 4}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := repo.replacedGoals[employeeID]; len(got) != 1 || got[0].Priority != 4 {
		t.Fatalf("goal not persisted, got %+v", got)
	}
}
