package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	availabilityHighMin    = 70
	availabilityPartialMin = 40

	fairnessLightMin    = 0.75
	fairnessBalancedMin = 0.45
)

// Scores carries the six signal components plus the learning-goal
// preference signal, all in [0,1].
type Scores struct {
	Semantic     float64 `json:"semantic"`
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Role         float64 `json:"role"`
	Availability float64 `json:"availability"`
	Fairness     float64 `json:"fairness"`
	Preference   float64 `json:"preference"`
}

// CandidateInput is everything the aggregator needs for one employee.
type CandidateInput struct {
	EmployeeID      uuid.UUID
	Name            string
	Role            string
	ExperienceYears float64
	Scores          Scores
	MatchedSkills   []string
	MatchedGoals    []string
}

// Entry is one ranked result: component scores, the final weighted score,
// readable percentages and a reproducible explanation. Entries are built
// fresh per query and never stored.
type Entry struct {
	EmployeeID          uuid.UUID `json:"employee_id"`
	Name                string    `json:"name"`
	Role                string    `json:"role"`
	ScorePercent        int       `json:"score_percent"`
	AvailabilityPercent int       `json:"availability_percent"`
	AvailabilityLabel   string    `json:"availability_label"`
	Skills              []string  `json:"skills"`
	LearningGoals       []string  `json:"learning_goals"`
	WorkloadScore       float64   `json:"workload_score"`
	Reason              string    `json:"reason"`
	FinalScore          float64   `json:"final_score"`
	Scores              Scores    `json:"scores"`
}

// BuildEntry resolves the weight policy for the candidate, folds the
// component scores into the final score and renders the explanation. The
// output is fully determined by its inputs.
func BuildEntry(in CandidateInput, policy WeightPolicy) Entry {
	w := policy.Resolve(in.Scores.Skill > 0)

	final := w.Semantic*in.Scores.Semantic +
		w.Skill*in.Scores.Skill +
		w.Experience*in.Scores.Experience +
		w.Role*in.Scores.Role +
		w.Availability*in.Scores.Availability +
		w.Fairness*in.Scores.Fairness +
		w.Preference*in.Scores.Preference

	scorePercent := roundPercent(final * 100)
	availabilityPercent := roundPercent(in.Scores.Availability * 100)

	skills := in.MatchedSkills
	if skills == nil {
		skills = []string{}
	}
	goals := in.MatchedGoals
	if goals == nil {
		goals = []string{}
	}

	return Entry{
		EmployeeID:          in.EmployeeID,
		Name:                in.Name,
		Role:                in.Role,
		ScorePercent:        scorePercent,
		AvailabilityPercent: availabilityPercent,
		AvailabilityLabel:   availabilityLabel(availabilityPercent),
		Skills:              skills,
		LearningGoals:       goals,
		WorkloadScore:       in.Scores.Fairness,
		Reason:              buildReason(in, availabilityPercent),
		FinalScore:          final,
		Scores:              in.Scores,
	}
}

func availabilityLabel(percent int) string {
	switch {
	case percent >= availabilityHighMin:
		return "High availability"
	case percent >= availabilityPartialMin:
		return "Partial availability"
	default:
		return "Limited availability"
	}
}

// buildReason assembles the explanation as an ordered list of short clauses
// joined into sentences. No randomness and no external calls, so identical
// inputs always render the same text.
func buildReason(in CandidateInput, availabilityPercent int) string {
	clauses := make([]string, 0, 5)

	if len(in.MatchedSkills) > 0 {
		clauses = append(clauses, "Direct skill matches: "+strings.Join(in.MatchedSkills, ", "))
	} else {
		clauses = append(clauses, "No direct skill overlap with this task")
	}

	switch {
	case in.Scores.Role >= 0.8:
		clauses = append(clauses, fmt.Sprintf("Role as %s fits the task directly", in.Role))
	case in.Scores.Role >= 0.5:
		clauses = append(clauses, fmt.Sprintf("Role as %s is related to the task", in.Role))
	default:
		clauses = append(clauses, fmt.Sprintf("Role as %s provides partial relevance", in.Role))
	}

	if in.ExperienceYears >= 5 {
		clauses = append(clauses, fmt.Sprintf("Strong experience (%g years)", in.ExperienceYears))
	} else {
		clauses = append(clauses, fmt.Sprintf("%g years of experience", in.ExperienceYears))
	}

	switch {
	case availabilityPercent >= availabilityHighMin:
		clauses = append(clauses, "Fully available during the required timeframe")
	case availabilityPercent >= availabilityPartialMin:
		clauses = append(clauses, "Partially available during the timeframe")
	default:
		clauses = append(clauses, "Availability is limited for this period")
	}

	switch {
	case in.Scores.Fairness >= fairnessLightMin:
		clauses = append(clauses, "Recent workload is lighter than average")
	case in.Scores.Fairness >= fairnessBalancedMin:
		clauses = append(clauses, "Recent workload is balanced")
	default:
		clauses = append(clauses, "Recent workload is heavier than average")
	}

	return strings.Join(clauses, ". ") + "."
}

func roundPercent(v float64) int {
	p := int(math.Round(v))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
