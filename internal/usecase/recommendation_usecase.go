package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"staff-match/internal/domain/employee"
	"staff-match/internal/domain/matching"
	"staff-match/internal/domain/scheduling"
	"staff-match/internal/embedding"
	"staff-match/internal/repository"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// encodeChunkSize bounds one embedding round trip; a query encodes the task
// description, every candidate profile and every distinct label, which can
// exceed the service's batch limit on large rosters.
const encodeChunkSize = 128

type RankingConfig struct {
	Scheduling     scheduling.Policy
	MatchThreshold float64
	LookbackDays   int
	CacheTTL       time.Duration
}

func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		Scheduling:     scheduling.DefaultPolicy(),
		MatchThreshold: matching.DefaultThreshold,
		LookbackDays:   scheduling.DefaultLookbackDays,
		CacheTTL:       5 * time.Minute,
	}
}

type RankParams struct {
	ManagerID       uuid.UUID
	TaskDescription string
	StartDate       string
	EndDate         string
	// Weights optionally overrides both the stored profile and the default
	// heuristic for this one request.
	Weights *matching.Weights
}

type RankResult struct {
	Entries  []matching.Entry          `json:"entries"`
	Warnings []repository.ParseWarning `json:"warnings"`
}

// ResultCache is the slice of the redis cache the pipeline needs; a nil
// cache disables caching.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type RecommendationUsecase interface {
	Rank(ctx context.Context, p RankParams) (RankResult, error)
	Explain(ctx context.Context, employeeID uuid.UUID, p RankParams) (matching.Entry, error)
}

type Recommendation struct {
	employees   repository.EmployeeRepository
	assignments repository.AssignmentRepository
	profiles    repository.WeightProfileRepository
	encoder     embedding.Encoder
	cache       ResultCache
	cfg         RankingConfig
	logger      *log.Logger

	now func() time.Time
}

func NewRecommendationUsecase(
	employees repository.EmployeeRepository,
	assignments repository.AssignmentRepository,
	profiles repository.WeightProfileRepository,
	encoder embedding.Encoder,
	cache ResultCache,
	cfg RankingConfig,
	logger *log.Logger,
) *Recommendation {
	if logger == nil {
		logger = log.Default()
	}
	return &Recommendation{
		employees:   employees,
		assignments: assignments,
		profiles:    profiles,
		encoder:     encoder,
		cache:       cache,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// Rank scores every employee of the manager against the task and returns a
// descending-sorted list. Ranking is read-only; per-candidate data problems
// degrade to warnings, while encoder or storage failures abort the request.
func (u *Recommendation) Rank(ctx context.Context, p RankParams) (RankResult, error) {
	task := strings.TrimSpace(p.TaskDescription)
	if task == "" {
		return RankResult{}, ErrTaskDescriptionRequired
	}

	start, end, err := parseWindow(p.StartDate, p.EndDate)
	if err != nil {
		return RankResult{}, err
	}

	policy, weightsUsed, err := u.resolveWeightPolicy(ctx, p)
	if err != nil {
		return RankResult{}, err
	}

	cacheKey := rankCacheKey(p.ManagerID, task, p.StartDate, p.EndDate, weightsUsed)
	if u.cache != nil {
		var cached RankResult
		if ok, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	candidates, warnings, err := u.employees.ListCandidates(ctx, p.ManagerID)
	if err != nil {
		return RankResult{}, fmt.Errorf("%w: load candidates: %v", ErrInternal, err)
	}
	for _, w := range warnings {
		u.logger.Printf("[Recommend] degraded candidate data: employee=%s field=%s detail=%s", w.EmployeeID, w.Field, w.Detail)
	}

	result := RankResult{Entries: []matching.Entry{}, Warnings: warnings}
	if warnings == nil {
		result.Warnings = []repository.ParseWarning{}
	}
	if len(candidates) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	overlaps, err := u.assignments.OverlappingByEmployeeIDs(ctx, ids, start, end)
	if err != nil {
		return RankResult{}, fmt.Errorf("%w: load assignments: %v", ErrInternal, err)
	}

	nowDate := u.now().UTC().Truncate(24 * time.Hour)
	lookbackFrom := nowDate.AddDate(0, 0, -u.cfg.LookbackDays)
	loads, err := u.assignments.RecentWorkloadHours(ctx, ids, lookbackFrom, nowDate)
	if err != nil {
		return RankResult{}, fmt.Errorf("%w: load workload history: %v", ErrInternal, err)
	}

	taskVec, profileVecs, labelVecs, err := u.encodeQuery(ctx, task, candidates)
	if err != nil {
		return RankResult{}, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	loadByIndex := make([]float64, len(candidates))
	for i, c := range candidates {
		loadByIndex[i] = loads[c.ID]
	}
	fairness := scheduling.FairnessScores(loadByIndex)

	poolMaxYears := 0.0
	for _, c := range candidates {
		if y := employee.MaxYears(c.Skills); y > poolMaxYears {
			poolMaxYears = y
		}
	}

	entries := make([]matching.Entry, 0, len(candidates))
	for i, c := range candidates {
		avail := scheduling.Calculate(overlaps[c.ID], start, end, u.cfg.Scheduling)

		skillMatches := matching.MatchSkills(task, employee.SkillLabels(c.Skills), taskVec, vectorsFor(employee.SkillLabels(c.Skills), labelVecs), u.cfg.MatchThreshold)
		goalMatches := matching.MatchSkills(task, employee.GoalLabels(c.LearningGoals), taskVec, vectorsFor(employee.GoalLabels(c.LearningGoals), labelVecs), u.cfg.MatchThreshold)

		years := employee.MaxYears(c.Skills)

		scores := matching.Scores{
			Semantic:     clampUnit(embedding.Cosine(taskVec, profileVecs[i])),
			Skill:        matching.SkillScore(skillMatches, len(c.Skills)),
			Experience:   matching.NormalizeExperience(years, poolMaxYears),
			Role:         matching.RoleMatch(task, c.Role),
			Availability: avail.Percent / 100,
			Fairness:     fairness[i],
			Preference:   matching.SkillScore(goalMatches, len(c.LearningGoals)),
		}

		entries = append(entries, matching.BuildEntry(matching.CandidateInput{
			EmployeeID:      c.ID,
			Name:            c.Name,
			Role:            c.Role,
			ExperienceYears: years,
			Scores:          scores,
			MatchedSkills:   matching.MatchedLabels(skillMatches),
			MatchedGoals:    matching.MatchedLabels(goalMatches),
		}, policy))
	}

	// ties keep roster listing order
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FinalScore > entries[j].FinalScore
	})
	result.Entries = entries

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, result, u.cfg.CacheTTL); err != nil {
			u.logger.Printf("[Recommend] cache write failed: %v", err)
		}
	}
	return result, nil
}

// Explain returns the single ranked entry of one employee, for the portal
// view of why the employee was or was not recommended.
func (u *Recommendation) Explain(ctx context.Context, employeeID uuid.UUID, p RankParams) (matching.Entry, error) {
	res, err := u.Rank(ctx, p)
	if err != nil {
		return matching.Entry{}, err
	}
	for _, e := range res.Entries {
		if e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return matching.Entry{}, ErrEmployeeNotRanked
}

func (u *Recommendation) resolveWeightPolicy(ctx context.Context, p RankParams) (matching.WeightPolicy, *matching.Weights, error) {
	if p.Weights != nil {
		policy, err := matching.CustomProfile(*p.Weights)
		if err != nil {
			return matching.WeightPolicy{}, nil, fmt.Errorf("%w: %v", ErrInvalidWeightProfile, err)
		}
		norm := p.Weights.Normalize()
		return policy, &norm, nil
	}

	if u.profiles != nil {
		stored, found, err := u.profiles.FindByManager(ctx, p.ManagerID)
		if err != nil {
			return matching.WeightPolicy{}, nil, fmt.Errorf("%w: load weight profile: %v", ErrInternal, err)
		}
		if found {
			policy, err := matching.CustomProfile(stored)
			if err != nil {
				// a corrupt stored profile must not poison every ranking
				u.logger.Printf("[Recommend] stored weight profile invalid for manager=%s, using default: %v", p.ManagerID, err)
				return matching.HeuristicDefault(), nil, nil
			}
			norm := stored.Normalize()
			return policy, &norm, nil
		}
	}
	return matching.HeuristicDefault(), nil, nil
}

// encodeQuery embeds the task description, one profile text per candidate
// and every distinct skill/goal label in chunked batch calls. The task
// vector is computed once and reused across all labels and candidates.
func (u *Recommendation) encodeQuery(ctx context.Context, task string, candidates []employee.Candidate) ([]float32, [][]float32, map[string][]float32, error) {
	labelSet := make(map[string]struct{})
	labelOrder := make([]string, 0)
	addLabel := func(label string) {
		key := strings.ToLower(strings.TrimSpace(label))
		if key == "" {
			return
		}
		if _, ok := labelSet[key]; ok {
			return
		}
		labelSet[key] = struct{}{}
		labelOrder = append(labelOrder, key)
	}

	texts := make([]string, 0, 1+len(candidates))
	texts = append(texts, strings.ToLower(task))
	for _, c := range candidates {
		texts = append(texts, profileText(c))
		for _, s := range c.Skills {
			addLabel(s.Label)
		}
		for _, g := range c.LearningGoals {
			addLabel(g.Label)
		}
	}
	texts = append(texts, labelOrder...)

	vecs := make([][]float32, 0, len(texts))
	for offset := 0; offset < len(texts); offset += encodeChunkSize {
		chunkEnd := offset + encodeChunkSize
		if chunkEnd > len(texts) {
			chunkEnd = len(texts)
		}
		chunk, err := u.encoder.EncodeBatch(ctx, texts[offset:chunkEnd])
		if err != nil {
			return nil, nil, nil, err
		}
		vecs = append(vecs, chunk...)
	}

	taskVec := vecs[0]
	profileVecs := vecs[1 : 1+len(candidates)]
	byLabel := make(map[string][]float32, len(labelOrder))
	for i, label := range labelOrder {
		byLabel[label] = vecs[1+len(candidates)+i]
	}
	return taskVec, profileVecs, byLabel, nil
}

func vectorsFor(labels []string, byLabel map[string][]float32) [][]float32 {
	out := make([][]float32, len(labels))
	for i, l := range labels {
		out[i] = byLabel[strings.ToLower(strings.TrimSpace(l))]
	}
	return out
}

// profileText is the descriptive block the semantic component embeds per
// candidate: role, full skill list, experience, plus the growth note when
// the employee wrote one.
func profileText(c employee.Candidate) string {
	text := fmt.Sprintf("%s with skills: %s. experience: %g years.",
		strings.ToLower(c.Role),
		strings.ToLower(strings.Join(employee.SkillLabels(c.Skills), ", ")),
		employee.MaxYears(c.Skills),
	)
	if growth := strings.TrimSpace(c.GrowthText); growth != "" {
		text += " interested in: " + strings.ToLower(growth) + "."
	}
	return text
}

func parseWindow(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(startRaw), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(endRaw), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
