package scheduling

// DefaultLookbackDays is the trailing period over which recent committed
// hours count toward the workload fairness signal.
const DefaultLookbackDays = 90

// FairnessScores turns recent-workload hour sums into comparative [0,1]
// scores, higher meaning a lighter recent load. The normalization is
// relative to the busiest candidate in the pool; when nobody has recent
// hours everyone scores 1.
func FairnessScores(loads []float64) []float64 {
	max := 0.0
	for _, l := range loads {
		if l > max {
			max = l
		}
	}

	scores := make([]float64, len(loads))
	for i, l := range loads {
		if max <= 0 {
			scores[i] = 1
			continue
		}
		if l < 0 {
			l = 0
		}
		scores[i] = 1 - l/max
	}
	return scores
}
