package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"staff-match/internal/database"
	"staff-match/internal/domain/employee"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// ParseWarning records a per-employee field that could not be decoded and
// was degraded to a safe default instead of aborting the request.
type ParseWarning struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Field      string    `json:"field"`
	Detail     string    `json:"detail"`
}

type EmployeeRepository interface {
	// ListCandidates assembles every employee of the manager with merged
	// org/self skills, learning goals, growth note. Listing order is the
	// roster insertion order and is preserved for stable ranking.
	ListCandidates(ctx context.Context, managerID uuid.UUID) ([]employee.Candidate, []ParseWarning, error)
	ExistsByID(ctx context.Context, employeeID uuid.UUID) (bool, error)
	ManagerIDByEmployee(ctx context.Context, employeeID uuid.UUID) (uuid.UUID, error)
	ReplaceSelfSkills(ctx context.Context, employeeID uuid.UUID, skills []employee.SkillEntry) error
	ReplaceLearningGoals(ctx context.Context, employeeID uuid.UUID, goals []employee.LearningGoal) error
}

type PostgresEmployeeRepository struct {
	db database.DB
}

func NewPostgresEmployeeRepository(db database.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

func (r *PostgresEmployeeRepository) ListCandidates(ctx context.Context, managerID uuid.UUID) ([]employee.Candidate, []ParseWarning, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, manager_id, name, COALESCE(role, ''), COALESCE(department, ''), COALESCE(skills_raw, '')
		 FROM employees
		 WHERE manager_id = $1
		 ORDER BY created_at ASC, id ASC`,
		managerID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	candidates := make([]employee.Candidate, 0)
	rawBlobs := make(map[uuid.UUID]string)
	for rows.Next() {
		var c employee.Candidate
		var raw string
		if err := rows.Scan(&c.ID, &c.ManagerID, &c.Name, &c.Role, &c.Department, &raw); err != nil {
			return nil, nil, err
		}
		rawBlobs[c.ID] = raw
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	orgSkills, err := r.skillsByEmployeeIDs(ctx, `employee_skills`, ids)
	if err != nil {
		return nil, nil, err
	}
	selfSkills, err := r.skillsByEmployeeIDs(ctx, `employee_self_skills`, ids)
	if err != nil {
		return nil, nil, err
	}
	goals, err := r.goalsByEmployeeIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	growth, err := r.growthByEmployeeIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	warnings := make([]ParseWarning, 0)
	for i := range candidates {
		c := &candidates[i]

		org := orgSkills[c.ID]
		if raw := strings.TrimSpace(rawBlobs[c.ID]); raw != "" {
			legacy, perr := parseSkillBlob(raw)
			if perr != nil {
				warnings = append(warnings, ParseWarning{
					EmployeeID: c.ID,
					Field:      "skills_raw",
					Detail:     perr.Error(),
				})
			} else {
				org = append(org, legacy...)
			}
		}

		c.Skills = employee.MergeSkills(org, selfSkills[c.ID])
		c.LearningGoals = goals[c.ID]
		c.GrowthText = growth[c.ID]
	}

	return candidates, warnings, nil
}

func (r *PostgresEmployeeRepository) skillsByEmployeeIDs(ctx context.Context, table string, ids []uuid.UUID) (map[uuid.UUID][]employee.SkillEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT employee_id, label, COALESCE(years_experience, 0)
		 FROM `+table+`
		 WHERE employee_id = ANY($1)
		 ORDER BY label ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]employee.SkillEntry)
	for rows.Next() {
		var id uuid.UUID
		var e employee.SkillEntry
		if err := rows.Scan(&id, &e.Label, &e.Years); err != nil {
			return nil, err
		}
		out[id] = append(out[id], e)
	}
	return out, rows.Err()
}

func (r *PostgresEmployeeRepository) goalsByEmployeeIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]employee.LearningGoal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT employee_id, label, COALESCE(priority, 1)
		 FROM employee_learning_goals
		 WHERE employee_id = ANY($1)
		 ORDER BY priority DESC, label ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]employee.LearningGoal)
	for rows.Next() {
		var id uuid.UUID
		var g employee.LearningGoal
		if err := rows.Scan(&id, &g.Label, &g.Priority); err != nil {
			return nil, err
		}
		out[id] = append(out[id], g)
	}
	return out, rows.Err()
}

func (r *PostgresEmployeeRepository) growthByEmployeeIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT employee_id, COALESCE(growth_text, '')
		 FROM employee_preferences
		 WHERE employee_id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, err
		}
		out[id] = text
	}
	return out, rows.Err()
}

func (r *PostgresEmployeeRepository) ExistsByID(ctx context.Context, employeeID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, employeeID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresEmployeeRepository) ManagerIDByEmployee(ctx context.Context, employeeID uuid.UUID) (uuid.UUID, error) {
	var managerID uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT manager_id FROM employees WHERE id = $1`, employeeID)
	if err := row.Scan(&managerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrEmployeeNotFound
		}
		return uuid.Nil, err
	}
	return managerID, nil
}

// ReplaceSelfSkills is a full replacement: delete then reinsert in one
// transaction. An empty list clears every entry.
func (r *PostgresEmployeeRepository) ReplaceSelfSkills(ctx context.Context, employeeID uuid.UUID, skills []employee.SkillEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM employee_self_skills WHERE employee_id = $1`, employeeID); err != nil {
		return err
	}
	for _, s := range skills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO employee_self_skills (id, employee_id, label, years_experience) VALUES ($1, $2, $3, $4)`,
			uuid.New(), employeeID, s.Label, s.Years,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresEmployeeRepository) ReplaceLearningGoals(ctx context.Context, employeeID uuid.UUID, goals []employee.LearningGoal) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM employee_learning_goals WHERE employee_id = $1`, employeeID); err != nil {
		return err
	}
	for _, g := range goals {
		if _, err := tx.Exec(ctx,
			`INSERT INTO employee_learning_goals (id, employee_id, label, priority) VALUES ($1, $2, $3, $4)`,
			uuid.New(), employeeID, g.Label, g.Priority,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// parseSkillBlob decodes the roster-import skill column. Imports have
// written either a JSON array of labels or a comma-separated string; both
// normalize into SkillEntry values with zero years. Anything else is a
// parse warning for the caller.
func parseSkillBlob(raw string) ([]employee.SkillEntry, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var labels []string
		if err := json.Unmarshal([]byte(trimmed), &labels); err != nil {
			return nil, errors.New("skills column is not a JSON array of strings")
		}
		return labelsToEntries(labels), nil
	}

	return labelsToEntries(strings.Split(trimmed, ",")), nil
}

func labelsToEntries(labels []string) []employee.SkillEntry {
	out := make([]employee.SkillEntry, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, employee.SkillEntry{Label: l})
	}
	return out
}
