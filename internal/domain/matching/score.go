package matching

import "strings"

const (
	rolePhraseScore = 1.0
	roleWordScore   = 0.6
	roleFloorScore  = 0.3
)

// RoleMatch scores the textual overlap between the task description and the
// employee's role title. A role name alone is weak evidence either way, so
// the score never drops below a floor.
func RoleMatch(description, role string) float64 {
	description = strings.ToLower(strings.TrimSpace(description))
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" || description == "" {
		return roleFloorScore
	}

	if strings.Contains(description, role) {
		return rolePhraseScore
	}

	descTokens := tokenSet(description)
	for _, word := range strings.Fields(role) {
		if _, ok := descTokens[word]; ok {
			return roleWordScore
		}
	}
	return roleFloorScore
}

// NormalizeExperience scales years against the highest years in the current
// candidate pool, so a pool of juniors does not uniformly score near zero.
// Recomputed per query, never a fixed scale.
func NormalizeExperience(years, poolMaxYears float64) float64 {
	if poolMaxYears < 1 {
		poolMaxYears = 1
	}
	score := years / poolMaxYears
	if score < 0 {
		return 0
	}
	return score
}
