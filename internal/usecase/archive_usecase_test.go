package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestArchiveCompleted_ZeroTimeMeansNow(t *testing.T) {
	repo := &mockAssignmentRepo{archived: 3}
	uc := NewArchiveUsecase(repo, nil)
	uc.now = func() time.Time {
		return time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	}

	n, err := uc.ArchiveCompleted(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 archived, got %d", n)
	}

	want := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !repo.gotCutoff.Equal(want) {
		t.Fatalf("cutoff should truncate to the day, got %s", repo.gotCutoff)
	}
}

func TestArchiveCompleted_ExplicitCutoff(t *testing.T) {
	repo := &mockAssignmentRepo{}
	uc := NewArchiveUsecase(repo, nil)

	asOf := time.Date(2026, 1, 15, 23, 59, 0, 0, time.UTC)
	if _, err := uc.ArchiveCompleted(context.Background(), asOf); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if !repo.gotCutoff.Equal(want) {
		t.Fatalf("expected %s, got %s", want, repo.gotCutoff)
	}
}

func TestArchiveCompleted_RepositoryError(t *testing.T) {
	repo := &mockAssignmentRepo{archiveErr: errors.New("db down")}
	uc := NewArchiveUsecase(repo, nil)

	if _, err := uc.ArchiveCompleted(context.Background(), time.Now()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
