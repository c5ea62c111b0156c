package matching

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func sampleInput() CandidateInput {
	return CandidateInput{
		EmployeeID:      uuid.MustParse("7e57ab1e-0000-4000-8000-000000000001"),
		Name:            "Dewi",
		Role:            "Data Engineer",
		ExperienceYears: 6,
		Scores: Scores{
			Semantic:     0.8,
			Skill:        0.9,
			Experience:   0.6,
			Role:         1.0,
			Availability: 0.85,
			Fairness:     0.8,
			Preference:   0.5,
		},
		MatchedSkills: []string{"Python", "SQL"},
		MatchedGoals:  []string{"Airflow"},
	}
}

func TestBuildEntry_Deterministic(t *testing.T) {
	in := sampleInput()
	a := BuildEntry(in, HeuristicDefault())
	b := BuildEntry(in, HeuristicDefault())

	if a.FinalScore != b.FinalScore {
		t.Fatalf("final score not deterministic: %v vs %v", a.FinalScore, b.FinalScore)
	}
	if a.Reason != b.Reason {
		t.Fatalf("reason not deterministic:\n%s\n%s", a.Reason, b.Reason)
	}
}

func TestBuildEntry_ReasonClauses(t *testing.T) {
	e := BuildEntry(sampleInput(), HeuristicDefault())

	wants := []string{
		"Direct skill matches: Python, SQL",
		"Role as Data Engineer fits the task directly",
		"Strong experience (6 years)",
		"Fully available during the required timeframe",
		"Recent workload is lighter than average",
	}
	for _, w := range wants {
		if !strings.Contains(e.Reason, w) {
			t.Fatalf("reason missing %q:\n%s", w, e.Reason)
		}
	}
	if !strings.HasSuffix(e.Reason, ".") {
		t.Fatalf("reason should end with a period: %s", e.Reason)
	}
}

func TestBuildEntry_NoSkillOverlapBranch(t *testing.T) {
	in := sampleInput()
	in.MatchedSkills = nil
	in.Scores.Skill = 0
	in.Scores.Fairness = 0.2
	in.Scores.Availability = 0.5
	in.ExperienceYears = 2

	e := BuildEntry(in, HeuristicDefault())

	wants := []string{
		"No direct skill overlap with this task",
		"2 years of experience",
		"Partially available during the timeframe",
		"Recent workload is heavier than average",
	}
	for _, w := range wants {
		if !strings.Contains(e.Reason, w) {
			t.Fatalf("reason missing %q:\n%s", w, e.Reason)
		}
	}
	if e.Skills == nil || len(e.Skills) != 0 {
		t.Fatalf("nil matched skills should render as empty slice")
	}
}

func TestBuildEntry_WeightedScore(t *testing.T) {
	in := sampleInput()
	p, err := CustomProfile(Weights{Semantic: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	e := BuildEntry(in, p)
	if e.FinalScore != 0.8 {
		t.Fatalf("semantic-only profile should yield 0.8, got %v", e.FinalScore)
	}
	if e.ScorePercent != 80 {
		t.Fatalf("expected 80%%, got %d", e.ScorePercent)
	}
	if e.AvailabilityPercent != 85 {
		t.Fatalf("expected availability 85%%, got %d", e.AvailabilityPercent)
	}
	if e.WorkloadScore != in.Scores.Fairness {
		t.Fatalf("workload score should mirror fairness")
	}
}

func TestAvailabilityLabel(t *testing.T) {
	cases := []struct {
		percent int
		want    string
	}{
		{100, "High availability"},
		{70, "High availability"},
		{69, "Partial availability"},
		{40, "Partial availability"},
		{39, "Limited availability"},
		{0, "Limited availability"},
	}
	for _, c := range cases {
		if got := availabilityLabel(c.percent); got != c.want {
			t.Fatalf("availabilityLabel(%d) = %q, want %q", c.percent, got, c.want)
		}
	}
}
