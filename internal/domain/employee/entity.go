package employee

import (
	"strings"

	"github.com/google/uuid"
)

// SkillEntry is one skill label with the years of experience asserted for it.
// Entries come from two sources (organization-asserted and self-asserted) and
// are merged with MergeSkills before scoring.
type SkillEntry struct {
	Label string
	Years float64
}

type LearningGoal struct {
	Label    string
	Priority int
}

type Employee struct {
	ID         uuid.UUID
	ManagerID  uuid.UUID
	Name       string
	Role       string
	Department string
}

// Candidate is one employee assembled for ranking: merged skills, learning
// goals, growth note and the recent-workload signal.
type Candidate struct {
	Employee
	Skills        []SkillEntry
	LearningGoals []LearningGoal
	GrowthText    string
	WorkloadHours float64
}

// MergeSkills combines organization-asserted and self-asserted entries,
// deduplicating case-insensitively and keeping the maximum years per label.
// The label casing of the first occurrence wins. Order of first occurrence
// is preserved so ranking stays deterministic.
func MergeSkills(org, self []SkillEntry) []SkillEntry {
	merged := make([]SkillEntry, 0, len(org)+len(self))
	index := make(map[string]int, len(org)+len(self))

	add := func(e SkillEntry) {
		label := strings.TrimSpace(e.Label)
		if label == "" {
			return
		}
		key := strings.ToLower(label)
		if i, ok := index[key]; ok {
			if e.Years > merged[i].Years {
				merged[i].Years = e.Years
			}
			return
		}
		index[key] = len(merged)
		merged = append(merged, SkillEntry{Label: label, Years: e.Years})
	}

	for _, e := range org {
		add(e)
	}
	for _, e := range self {
		add(e)
	}
	return merged
}

// MaxYears returns the highest years value across the entries, 0 when empty.
func MaxYears(skills []SkillEntry) float64 {
	max := 0.0
	for _, s := range skills {
		if s.Years > max {
			max = s.Years
		}
	}
	return max
}

// SkillLabels projects the labels of the entries in order.
func SkillLabels(skills []SkillEntry) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Label)
	}
	return out
}

// GoalLabels projects the labels of the learning goals in order.
func GoalLabels(goals []LearningGoal) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.Label)
	}
	return out
}
