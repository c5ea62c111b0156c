package matching

import (
	"errors"
	"math"
)

var (
	ErrNegativeWeight = errors.New("weight values must be non-negative")
	ErrZeroWeightSum  = errors.New("weight values must not all be zero")
)

// Weights is one full profile over the seven scoring components. A valid
// profile is non-negative and sums to 1 after Normalize.
type Weights struct {
	Semantic     float64 `json:"semantic"`
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Role         float64 `json:"role"`
	Availability float64 `json:"availability"`
	Fairness     float64 `json:"fairness"`
	Preference   float64 `json:"preference"`
}

func (w Weights) Sum() float64 {
	return w.Semantic + w.Skill + w.Experience + w.Role + w.Availability + w.Fairness + w.Preference
}

// Validate rejects malformed profiles outright. Invalid input is an error,
// never silently redistributed.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Semantic, w.Skill, w.Experience, w.Role, w.Availability, w.Fairness, w.Preference} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNegativeWeight
		}
	}
	if w.Sum() <= 0 {
		return ErrZeroWeightSum
	}
	return nil
}

func (w Weights) Normalize() Weights {
	sum := w.Sum()
	if sum <= 0 {
		return w
	}
	return Weights{
		Semantic:     w.Semantic / sum,
		Skill:        w.Skill / sum,
		Experience:   w.Experience / sum,
		Role:         w.Role / sum,
		Availability: w.Availability / sum,
		Fairness:     w.Fairness / sum,
		Preference:   w.Preference / sum,
	}
}

// The default heuristic carries two branches. An all-zero skill vector is
// uninformative noise rather than evidence of poor fit, so when no skill
// matched at all the weight shifts from skill toward semantic similarity
// and availability.
var (
	defaultWithSkillMatch = Weights{
		Semantic:     0.28,
		Skill:        0.30,
		Experience:   0.20,
		Role:         0.10,
		Availability: 0.07,
		Fairness:     0.05,
		Preference:   0,
	}
	defaultNoSkillMatch = Weights{
		Semantic:     0.33,
		Skill:        0.10,
		Experience:   0.20,
		Role:         0.15,
		Availability: 0.17,
		Fairness:     0.05,
		Preference:   0,
	}
)

// WeightPolicy is the tagged choice between a caller-supplied profile and
// the default heuristic. It is resolved once per candidate before
// aggregation.
type WeightPolicy struct {
	custom *Weights
}

// CustomProfile validates and normalizes a user-supplied profile.
func CustomProfile(w Weights) (WeightPolicy, error) {
	if err := w.Validate(); err != nil {
		return WeightPolicy{}, err
	}
	n := w.Normalize()
	return WeightPolicy{custom: &n}, nil
}

// HeuristicDefault is the fixed two-branch default policy.
func HeuristicDefault() WeightPolicy {
	return WeightPolicy{}
}

func (p WeightPolicy) IsCustom() bool {
	return p.custom != nil
}

// Resolve picks the effective weights for one candidate. Custom profiles
// apply verbatim; the default branches on whether any skill matched.
func (p WeightPolicy) Resolve(hasSkillMatch bool) Weights {
	if p.custom != nil {
		return *p.custom
	}
	if hasSkillMatch {
		return defaultWithSkillMatch
	}
	return defaultNoSkillMatch
}
