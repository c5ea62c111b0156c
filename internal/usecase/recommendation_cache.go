package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"staff-match/internal/domain/matching"

	"github.com/google/uuid"
)

type rankCacheKeyInput struct {
	ManagerID string            `json:"manager_id"`
	Task      string            `json:"task"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Weights   *matching.Weights `json:"weights,omitempty"`
}

// rankCacheKey derives a stable key for one ranking request. The task text
// is normalized so incidental whitespace and casing changes still hit the
// same entry; the weights are the normalized profile actually in effect, so
// a profile update naturally changes the key.
func rankCacheKey(managerID uuid.UUID, task, startDate, endDate string, weights *matching.Weights) string {
	in := rankCacheKeyInput{
		ManagerID: managerID.String(),
		Task:      normalizeCacheValue(task),
		StartDate: strings.TrimSpace(startDate),
		EndDate:   strings.TrimSpace(endDate),
		Weights:   weights,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "recommend:" + managerID.String() + ":" + hex.EncodeToString(sum[:])
}

// RankCachePattern matches every cached ranking of one manager, for
// invalidation after roster or assignment writes.
func RankCachePattern(managerID uuid.UUID) string {
	return "recommend:" + managerID.String() + ":*"
}

func normalizeCacheValue(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}
