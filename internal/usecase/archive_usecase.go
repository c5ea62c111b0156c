package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"staff-match/internal/repository"
)

type ArchiveUsecase interface {
	// ArchiveCompleted moves assignments that ended before asOf into the
	// append-only history and returns how many were archived. Zero time
	// means today.
	ArchiveCompleted(ctx context.Context, asOf time.Time) (int64, error)
}

type Archive struct {
	repo   repository.AssignmentRepository
	logger *log.Logger

	now func() time.Time
}

func NewArchiveUsecase(repo repository.AssignmentRepository, logger *log.Logger) *Archive {
	if logger == nil {
		logger = log.Default()
	}
	return &Archive{repo: repo, logger: logger, now: time.Now}
}

func (u *Archive) ArchiveCompleted(ctx context.Context, asOf time.Time) (int64, error) {
	if asOf.IsZero() {
		asOf = u.now()
	}
	cutoff := asOf.UTC().Truncate(24 * time.Hour)

	archived, err := u.repo.ArchiveCompleted(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: archive assignments: %v", ErrInternal, err)
	}
	if archived > 0 {
		u.logger.Printf("[Archive] moved %d completed assignments to history (cutoff=%s)", archived, cutoff.Format(dateLayout))
	}
	return archived, nil
}
