package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"staff-match/internal/domain/assignment"
	"staff-match/internal/domain/employee"
	"staff-match/internal/domain/matching"
	"staff-match/internal/repository"

	"github.com/google/uuid"
)

type mockEmployeeRepo struct {
	candidates []employee.Candidate
	warnings   []repository.ParseWarning
	listErr    error

	exists    bool
	existsErr error

	managerID  uuid.UUID
	managerErr error

	replacedSkills map[uuid.UUID][]employee.SkillEntry
	replacedGoals  map[uuid.UUID][]employee.LearningGoal
	replaceErr     error
}

func (m *mockEmployeeRepo) ListCandidates(context.Context, uuid.UUID) ([]employee.Candidate, []repository.ParseWarning, error) {
	return m.candidates, m.warnings, m.listErr
}

func (m *mockEmployeeRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockEmployeeRepo) ManagerIDByEmployee(context.Context, uuid.UUID) (uuid.UUID, error) {
	return m.managerID, m.managerErr
}

func (m *mockEmployeeRepo) ReplaceSelfSkills(_ context.Context, id uuid.UUID, skills []employee.SkillEntry) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if m.replacedSkills == nil {
		m.replacedSkills = map[uuid.UUID][]employee.SkillEntry{}
	}
	m.replacedSkills[id] = skills
	return nil
}

func (m *mockEmployeeRepo) ReplaceLearningGoals(_ context.Context, id uuid.UUID, goals []employee.LearningGoal) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if m.replacedGoals == nil {
		m.replacedGoals = map[uuid.UUID][]employee.LearningGoal{}
	}
	m.replacedGoals[id] = goals
	return nil
}

type mockAssignmentRepo struct {
	overlaps map[uuid.UUID][]assignment.Assignment
	loads    map[uuid.UUID]float64
	err      error

	archived    int64
	archiveErr  error
	gotCutoff   time.Time
	archiveRuns int
}

func (m *mockAssignmentRepo) OverlappingByEmployeeIDs(context.Context, []uuid.UUID, time.Time, time.Time) (map[uuid.UUID][]assignment.Assignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.overlaps == nil {
		return map[uuid.UUID][]assignment.Assignment{}, nil
	}
	return m.overlaps, nil
}

func (m *mockAssignmentRepo) RecentWorkloadHours(context.Context, []uuid.UUID, time.Time, time.Time) (map[uuid.UUID]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.loads == nil {
		return map[uuid.UUID]float64{}, nil
	}
	return m.loads, nil
}

func (m *mockAssignmentRepo) ArchiveCompleted(_ context.Context, cutoff time.Time) (int64, error) {
	m.archiveRuns++
	m.gotCutoff = cutoff
	return m.archived, m.archiveErr
}

type mockProfileRepo struct {
	weights matching.Weights
	found   bool
	findErr error

	upserted  *matching.Weights
	upsertErr error
}

func (m *mockProfileRepo) FindByManager(context.Context, uuid.UUID) (matching.Weights, bool, error) {
	return m.weights, m.found, m.findErr
}

func (m *mockProfileRepo) Upsert(_ context.Context, _ uuid.UUID, w matching.Weights) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = &w
	return nil
}

// stubEncoder maps any text mentioning python onto one axis and everything
// else onto the orthogonal one, which is enough signal for ranking tests.
type stubEncoder struct {
	err error
}

func stubVec(text string) []float32 {
	if strings.Contains(strings.ToLower(text), "python") {
		return []float32{1, 0}
	}
	return []float32{0, 1}
}

func (s stubEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return stubVec(text), nil
}

func (s stubEncoder) EncodeBatch(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = stubVec(t)
	}
	return out, nil
}

type fakeCache struct {
	data     map[string][]byte
	patterns []string
	gets     int
	sets     int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.gets++
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	f.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	return nil
}

func testCandidates() (employee.Candidate, employee.Candidate) {
	dev := employee.Candidate{
		Employee: employee.Employee{
			ID:   uuid.MustParse("11111111-1111-4111-8111-111111111111"),
			Name: "Dewi",
			Role: "Backend Engineer",
		},
		Skills: []employee.SkillEntry{
			{Label: "Python", Years: 6},
			{Label: "SQL", Years: 4},
		},
	}
	designer := employee.Candidate{
		Employee: employee.Employee{
			ID:   uuid.MustParse("22222222-2222-4222-8222-222222222222"),
			Name: "Bram",
			Role: "Product Designer",
		},
		Skills: []employee.SkillEntry{
			{Label: "Figma", Years: 2},
		},
	}
	return dev, designer
}

func newRankUsecase(emp *mockEmployeeRepo, asg *mockAssignmentRepo, prof *mockProfileRepo, cache ResultCache) *Recommendation {
	return NewRecommendationUsecase(emp, asg, prof, stubEncoder{}, cache, DefaultRankingConfig(), nil)
}

func rankParams() RankParams {
	return RankParams{
		ManagerID:       uuid.MustParse("99999999-9999-4999-8999-999999999999"),
		TaskDescription: "Needs Python and SQL support",
		StartDate:       "2026-03-02",
		EndDate:         "2026-03-06",
	}
}

func TestRank_ValidationErrors(t *testing.T) {
	uc := newRankUsecase(&mockEmployeeRepo{}, &mockAssignmentRepo{}, &mockProfileRepo{}, nil)

	p := rankParams()
	p.TaskDescription = "   "
	if _, err := uc.Rank(context.Background(), p); !errors.Is(err, ErrTaskDescriptionRequired) {
		t.Fatalf("expected ErrTaskDescriptionRequired, got %v", err)
	}

	p = rankParams()
	p.StartDate = "03/02/2026"
	if _, err := uc.Rank(context.Background(), p); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	p = rankParams()
	p.StartDate, p.EndDate = "2026-03-06", "2026-03-02"
	if _, err := uc.Rank(context.Background(), p); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	p = rankParams()
	p.Weights = &matching.Weights{Semantic: -1}
	if _, err := uc.Rank(context.Background(), p); !errors.Is(err, ErrInvalidWeightProfile) {
		t.Fatalf("expected ErrInvalidWeightProfile, got %v", err)
	}
}

func TestRank_EmptyRoster(t *testing.T) {
	uc := newRankUsecase(&mockEmployeeRepo{}, &mockAssignmentRepo{}, &mockProfileRepo{}, nil)

	res, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("empty roster must not error: %v", err)
	}
	if len(res.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(res.Entries))
	}
	if res.Entries == nil || res.Warnings == nil {
		t.Fatalf("result slices must be non-nil for JSON rendering")
	}
}

func TestRank_OrdersBySkillFit(t *testing.T) {
	dev, designer := testCandidates()
	emp := &mockEmployeeRepo{candidates: []employee.Candidate{designer, dev}}
	uc := newRankUsecase(emp, &mockAssignmentRepo{}, &mockProfileRepo{}, nil)

	res, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Entries))
	}

	top := res.Entries[0]
	if top.EmployeeID != dev.ID {
		t.Fatalf("expected skill-matched candidate first, got %s", top.Name)
	}
	if top.Scores.Skill != 1 {
		t.Fatalf("expected full skill score, got %v", top.Scores.Skill)
	}
	if top.Scores.Semantic != 1 {
		t.Fatalf("expected full semantic score, got %v", top.Scores.Semantic)
	}
	if len(top.Skills) != 2 {
		t.Fatalf("expected both matched skills listed, got %v", top.Skills)
	}
	if !strings.Contains(top.Reason, "Direct skill matches: Python, SQL") {
		t.Fatalf("reason missing matched skills: %s", top.Reason)
	}

	bottom := res.Entries[1]
	if bottom.Scores.Skill != 0 {
		t.Fatalf("expected zero skill score for designer, got %v", bottom.Scores.Skill)
	}
	if !strings.Contains(bottom.Reason, "No direct skill overlap") {
		t.Fatalf("reason missing no-overlap clause: %s", bottom.Reason)
	}
	if bottom.Scores.Experience != 2.0/6.0 {
		t.Fatalf("experience should normalize to pool max, got %v", bottom.Scores.Experience)
	}
}

func TestRank_Deterministic(t *testing.T) {
	dev, designer := testCandidates()
	emp := &mockEmployeeRepo{candidates: []employee.Candidate{dev, designer}}
	uc := newRankUsecase(emp, &mockAssignmentRepo{}, &mockProfileRepo{}, nil)

	a, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(a.Entries) != len(b.Entries) {
		t.Fatalf("entry counts differ")
	}
	for i := range a.Entries {
		if a.Entries[i].FinalScore != b.Entries[i].FinalScore || a.Entries[i].Reason != b.Entries[i].Reason {
			t.Fatalf("rerun produced a different entry at %d", i)
		}
	}
}

func TestRank_WarningsSurfaced(t *testing.T) {
	dev, _ := testCandidates()
	warn := repository.ParseWarning{EmployeeID: dev.ID, Field: "skills_raw", Detail: "skills column is not a JSON array of strings"}
	emp := &mockEmployeeRepo{candidates: []employee.Candidate{dev}, warnings: []repository.ParseWarning{warn}}
	uc := newRankUsecase(emp, &mockAssignmentRepo{}, &mockProfileRepo{}, nil)

	res, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("degraded data must not abort ranking: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Field != "skills_raw" {
		t.Fatalf("expected surfaced warning, got %+v", res.Warnings)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("candidate with degraded data must still rank")
	}
}

func TestRank_BusyCandidateScoresLowerAvailability(t *testing.T) {
	dev, designer := testCandidates()
	asg := &mockAssignmentRepo{overlaps: map[uuid.UUID][]assignment.Assignment{
		dev.ID: {{
			ID:         uuid.New(),
			EmployeeID: dev.ID,
			StartDate:  mustDay("2026-03-02"),
			EndDate:    mustDay("2026-03-06"),
			TotalHours: 40,
		}},
	}}
	emp := &mockEmployeeRepo{candidates: []employee.Candidate{dev, designer}}
	uc := newRankUsecase(emp, asg, &mockProfileRepo{}, nil)

	res, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	byID := map[uuid.UUID]matching.Entry{}
	for _, e := range res.Entries {
		byID[e.EmployeeID] = e
	}
	if byID[dev.ID].AvailabilityPercent != 0 {
		t.Fatalf("fully committed window should read 0%%, got %d", byID[dev.ID].AvailabilityPercent)
	}
	if byID[dev.ID].AvailabilityLabel != "Limited availability" {
		t.Fatalf("unexpected label %q", byID[dev.ID].AvailabilityLabel)
	}
	if byID[designer.ID].AvailabilityPercent != 100 {
		t.Fatalf("free candidate should read 100%%, got %d", byID[designer.ID].AvailabilityPercent)
	}
}

func TestRank_FairnessFavorsLighterLoad(t *testing.T) {
	dev, designer := testCandidates()
	asg := &mockAssignmentRepo{loads: map[uuid.UUID]float64{dev.ID: 120, designer.ID: 30}}
	emp := &mockEmployeeRepo{candidates: []employee.Candidate{dev, designer}}
	uc := newRankUsecase(emp, asg, &mockProfileRepo{}, nil)

	res, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	byID := map[uuid.UUID]matching.Entry{}
	for _, e := range res.Entries {
		byID[e.EmployeeID] = e
	}
	if byID[dev.ID].Scores.Fairness != 0 {
		t.Fatalf("busiest candidate should score 0 fairness, got %v", byID[dev.ID].Scores.Fairness)
	}
	if byID[designer.ID].Scores.Fairness != 0.75 {
		t.Fatalf("expected 0.75 fairness, got %v", byID[designer.ID].Scores.Fairness)
	}
}

func TestRank_StoredProfileUsed_CorruptProfileDegrades(t *testing.T) {
	dev, _ := testCandidates()
	emp := &mockEmployeeRepo{candidates: []employee.Candidate{dev}}

	// valid stored profile: semantic only
	prof := &mockProfileRepo{weights: matching.Weights{Semantic: 1}, found: true}
	uc := newRankUsecase(emp, &mockAssignmentRepo{}, prof, nil)
	res, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Entries[0].FinalScore != res.Entries[0].Scores.Semantic {
		t.Fatalf("stored semantic-only profile should weigh semantic alone")
	}

	// corrupt stored profile: falls back to the default heuristic
	prof = &mockProfileRepo{weights: matching.Weights{Semantic: -3}, found: true}
	uc = newRankUsecase(emp, &mockAssignmentRepo{}, prof, nil)
	if _, err := uc.Rank(context.Background(), rankParams()); err != nil {
		t.Fatalf("corrupt stored profile must not abort ranking: %v", err)
	}
}

func TestRank_EncoderFailure(t *testing.T) {
	dev, _ := testCandidates()
	emp := &mockEmployeeRepo{candidates: []employee.Candidate{dev}}
	uc := NewRecommendationUsecase(emp, &mockAssignmentRepo{}, &mockProfileRepo{}, stubEncoder{err: errors.New("boom")}, nil, DefaultRankingConfig(), nil)

	if _, err := uc.Rank(context.Background(), rankParams()); !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestRank_RepositoryFailure(t *testing.T) {
	emp := &mockEmployeeRepo{listErr: errors.New("db down")}
	uc := newRankUsecase(emp, &mockAssignmentRepo{}, &mockProfileRepo{}, nil)

	if _, err := uc.Rank(context.Background(), rankParams()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestRank_CacheRoundTrip(t *testing.T) {
	dev, designer := testCandidates()
	emp := &mockEmployeeRepo{candidates: []employee.Candidate{dev, designer}}
	cache := newFakeCache()
	uc := newRankUsecase(emp, &mockAssignmentRepo{}, &mockProfileRepo{}, cache)

	first, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	// second run is served from cache: drop the roster and expect the same
	// entries anyway
	emp.candidates = nil
	second, err := uc.Rank(context.Background(), rankParams())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(second.Entries) != len(first.Entries) {
		t.Fatalf("cached result not served")
	}
	if cache.sets != 1 {
		t.Fatalf("cache hit should not rewrite, got %d writes", cache.sets)
	}
}

func TestExplain(t *testing.T) {
	dev, designer := testCandidates()
	emp := &mockEmployeeRepo{candidates: []employee.Candidate{dev, designer}}
	uc := newRankUsecase(emp, &mockAssignmentRepo{}, &mockProfileRepo{}, nil)

	entry, err := uc.Explain(context.Background(), designer.ID, rankParams())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if entry.EmployeeID != designer.ID {
		t.Fatalf("wrong entry returned")
	}
	if entry.Reason == "" {
		t.Fatalf("explanation must not be empty")
	}

	if _, err := uc.Explain(context.Background(), uuid.New(), rankParams()); !errors.Is(err, ErrEmployeeNotRanked) {
		t.Fatalf("expected ErrEmployeeNotRanked, got %v", err)
	}
}

func mustDay(s string) time.Time {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}
