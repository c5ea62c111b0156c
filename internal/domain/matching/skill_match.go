package matching

import (
	"strings"

	"staff-match/internal/embedding"
)

// DefaultThreshold is the minimum similarity a label must reach to count as
// matched against the task description.
const DefaultThreshold = 0.45

const (
	exactMatchScore = 1.0
	tokenMatchScore = 0.75
)

type SkillMatch struct {
	Label string
	Score float64
}

// MatchSkills resolves each label against the task description with a
// three-tier strategy: exact phrase containment, token overlap, then
// embedding similarity. The first tier that fires sets a floor; the
// embedding tier only runs when the lexical tiers left the score below the
// token floor, and can only raise the score. Labels below threshold are
// dropped.
//
// labelVecs holds the label embeddings aligned with labels; descVec is the
// task description embedding, computed once per query by the caller. Either
// may be nil, in which case the embedding tier is skipped.
func MatchSkills(description string, labels []string, descVec []float32, labelVecs [][]float32, threshold float64) []SkillMatch {
	description = strings.ToLower(strings.TrimSpace(description))
	if description == "" || len(labels) == 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	descTokens := tokenSet(description)

	matches := make([]SkillMatch, 0, len(labels))
	for i, raw := range labels {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		normal := strings.ToLower(label)

		score := 0.0
		if strings.Contains(description, normal) {
			score = exactMatchScore
		} else if anyLabelToken(normal, descTokens) {
			score = tokenMatchScore
		}

		if score < tokenMatchScore && descVec != nil && i < len(labelVecs) && labelVecs[i] != nil {
			if sim := embedding.Cosine(descVec, labelVecs[i]); sim > score {
				score = sim
			}
		}

		if score >= threshold {
			matches = append(matches, SkillMatch{Label: label, Score: score})
		}
	}
	return matches
}

// SkillScore collapses the per-label matches into one [0,1] signal:
// whichever is larger of the average matched score and the coverage of the
// employee's label set. A few strong matches and broad partial coverage are
// both rewarded.
func SkillScore(matches []SkillMatch, totalLabels int) float64 {
	if totalLabels == 0 || len(matches) == 0 {
		return 0
	}

	sum := 0.0
	for _, m := range matches {
		sum += m.Score
	}
	avg := sum / float64(len(matches))

	coverage := float64(len(matches)) / float64(totalLabels)
	if coverage > avg {
		return coverage
	}
	return avg
}

// MatchedLabels projects the labels of the matches in order.
func MatchedLabels(matches []SkillMatch) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Label)
	}
	return out
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func anyLabelToken(label string, descTokens map[string]struct{}) bool {
	for _, tok := range strings.Fields(strings.ReplaceAll(label, "/", " ")) {
		if _, ok := descTokens[tok]; ok {
			return true
		}
	}
	return false
}
