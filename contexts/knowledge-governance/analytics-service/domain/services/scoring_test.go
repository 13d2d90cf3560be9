package services

import "testing"

func TestDefaultScore(t *testing.T) {
	weights := DefaultWeights()
	score := weights.Score(ActivityCounts{
		TrustedCount:      10,
		PendingCount:      2,
		GovernanceActions: 3,
		WorkspaceCount:    1,
	})
	// 10*3 + 3*2 + 1*1 - 2*0.5
	if score != 36 {
		t.Fatalf("score = %v, want 36", score)
	}
}

func TestPendingPenaltyCanGoNegative(t *testing.T) {
	weights := DefaultWeights()
	score := weights.Score(ActivityCounts{PendingCount: 4})
	if score != -2 {
		t.Fatalf("score = %v, want -2", score)
	}
}

func TestZeroActivityScoresZero(t *testing.T) {
	if score := DefaultWeights().Score(ActivityCounts{}); score != 0 {
		t.Fatalf("score = %v, want 0", score)
	}
}
