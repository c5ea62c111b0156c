package repository

import (
	"context"
	"database/sql"
	"errors"

	"staff-match/internal/database"
	"staff-match/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WeightProfileRepository interface {
	// FindByManager returns the manager's stored profile, reporting absence
	// without an error so callers fall back to the default heuristic.
	FindByManager(ctx context.Context, managerID uuid.UUID) (matching.Weights, bool, error)
	Upsert(ctx context.Context, managerID uuid.UUID, w matching.Weights) error
}

type PostgresWeightProfileRepository struct {
	db database.DB
}

func NewPostgresWeightProfileRepository(db database.DB) *PostgresWeightProfileRepository {
	return &PostgresWeightProfileRepository{db: db}
}

func (r *PostgresWeightProfileRepository) FindByManager(ctx context.Context, managerID uuid.UUID) (matching.Weights, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT semantic, skill, experience, role, availability, fairness, preference
		 FROM weight_profiles
		 WHERE manager_id = $1`,
		managerID,
	)

	var w matching.Weights
	err := row.Scan(&w.Semantic, &w.Skill, &w.Experience, &w.Role, &w.Availability, &w.Fairness, &w.Preference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return matching.Weights{}, false, nil
		}
		return matching.Weights{}, false, err
	}
	return w, true, nil
}

func (r *PostgresWeightProfileRepository) Upsert(ctx context.Context, managerID uuid.UUID, w matching.Weights) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO weight_profiles (manager_id, semantic, skill, experience, role, availability, fairness, preference, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 ON CONFLICT (manager_id) DO UPDATE SET
			semantic = EXCLUDED.semantic,
			skill = EXCLUDED.skill,
			experience = EXCLUDED.experience,
			role = EXCLUDED.role,
			availability = EXCLUDED.availability,
			fairness = EXCLUDED.fairness,
			preference = EXCLUDED.preference,
			updated_at = NOW()`,
		managerID, w.Semantic, w.Skill, w.Experience, w.Role, w.Availability, w.Fairness, w.Preference,
	)
	return err
}
