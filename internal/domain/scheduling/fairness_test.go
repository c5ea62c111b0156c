package scheduling

import "testing"

func TestFairnessScores_NoRecentWork(t *testing.T) {
	got := FairnessScores([]float64{0, 0, 0})
	for i, s := range got {
		if s != 1 {
			t.Fatalf("score[%d] = %v, want 1", i, s)
		}
	}
}

func TestFairnessScores_RelativeToBusiest(t *testing.T) {
	got := FairnessScores([]float64{100, 50, 0})
	if got[0] != 0 {
		t.Fatalf("busiest should score 0, got %v", got[0])
	}
	if got[1] != 0.5 {
		t.Fatalf("half load should score 0.5, got %v", got[1])
	}
	if got[2] != 1 {
		t.Fatalf("idle should score 1, got %v", got[2])
	}
}

func TestFairnessScores_NegativeLoadClamped(t *testing.T) {
	got := FairnessScores([]float64{-10, 20})
	if got[0] != 1 {
		t.Fatalf("negative load should score 1, got %v", got[0])
	}
}
