package repository

import (
	"context"
	"time"

	"staff-match/internal/database"
	"staff-match/internal/domain/assignment"

	"github.com/google/uuid"
)

type AssignmentRepository interface {
	// OverlappingByEmployeeIDs returns the live assignments whose interval
	// intersects [start, end], batched for a whole candidate pool in one
	// query.
	OverlappingByEmployeeIDs(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) (map[uuid.UUID][]assignment.Assignment, error)

	// RecentWorkloadHours sums total_hours of live assignments and history
	// rows ending inside [from, to], per employee. NULL hours count as zero.
	RecentWorkloadHours(ctx context.Context, employeeIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]float64, error)

	// ArchiveCompleted moves assignments that ended before cutoff into
	// assignment_history and removes them from the live set. Re-running with
	// the same cutoff archives nothing new.
	ArchiveCompleted(ctx context.Context, cutoff time.Time) (int64, error)
}

type PostgresAssignmentRepository struct {
	db database.DB
}

func NewPostgresAssignmentRepository(db database.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

const assignmentColumns = `id, employee_id, COALESCE(title, ''), start_date, end_date,
	COALESCE(total_hours, 0), COALESCE(remaining_hours, 0), COALESCE(priority, 0)`

func (r *PostgresAssignmentRepository) OverlappingByEmployeeIDs(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) (map[uuid.UUID][]assignment.Assignment, error) {
	out := make(map[uuid.UUID][]assignment.Assignment, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+assignmentColumns+`
		 FROM assignments
		 WHERE employee_id = ANY($1) AND start_date <= $2 AND end_date >= $3
		 ORDER BY employee_id ASC, start_date ASC, id ASC`,
		employeeIDs, end, start,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out[a.EmployeeID] = append(out[a.EmployeeID], a)
	}
	return out, rows.Err()
}

func (r *PostgresAssignmentRepository) RecentWorkloadHours(ctx context.Context, employeeIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]float64, error) {
	out := make(map[uuid.UUID]float64, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}

	queries := []string{
		`SELECT employee_id, SUM(COALESCE(total_hours, 0))
		 FROM assignments
		 WHERE employee_id = ANY($1) AND end_date >= $2 AND end_date <= $3
		 GROUP BY employee_id`,
		`SELECT employee_id, SUM(COALESCE(total_hours, 0))
		 FROM assignment_history
		 WHERE employee_id = ANY($1) AND end_date >= $2 AND end_date <= $3
		 GROUP BY employee_id`,
	}

	for _, q := range queries {
		rows, err := r.db.Query(ctx, q, employeeIDs, from, to)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var id uuid.UUID
			var hours float64
			if err := rows.Scan(&id, &hours); err != nil {
				rows.Close()
				return nil, err
			}
			out[id] += hours
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PostgresAssignmentRepository) ArchiveCompleted(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO assignment_history (
			id, source_assignment_id, employee_id, title, start_date, end_date,
			total_hours, remaining_hours, priority, archived_at
		 )
		 SELECT gen_random_uuid(), a.id, a.employee_id, a.title, a.start_date, a.end_date,
			a.total_hours, a.remaining_hours, a.priority, NOW()
		 FROM assignments a
		 WHERE a.end_date < $1
		   AND NOT EXISTS (
			SELECT 1 FROM assignment_history h WHERE h.source_assignment_id = a.id
		   )`,
		cutoff,
	); err != nil {
		return 0, err
	}

	deleted, err := tx.Exec(ctx,
		`DELETE FROM assignments a
		 WHERE a.end_date < $1
		   AND EXISTS (
			SELECT 1 FROM assignment_history h WHERE h.source_assignment_id = a.id
		   )`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return deleted, nil
}

type assignmentRow interface {
	Scan(dest ...any) error
}

func scanAssignment(row assignmentRow) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Title, &a.StartDate, &a.EndDate,
		&a.TotalHours, &a.RemainingHours, &a.Priority)
	return a, err
}
