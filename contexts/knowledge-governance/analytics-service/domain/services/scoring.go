package services

// ActivityCounts are the per-user counters the leaderboard ranks on.
type ActivityCounts struct {
	TrustedCount      int
	PendingCount      int
	GovernanceActions int
	WorkspaceCount    int
}

// Weights price each counter in the contribution score. Pending
// submissions count against the author so stale backlogs do not rank.
type Weights struct {
	Trusted        float64
	Governance     float64
	Workspace      float64
	PendingPenalty float64
}

func DefaultWeights() Weights {
	return Weights{
		Trusted:        3,
		Governance:     2,
		Workspace:      1,
		PendingPenalty: 0.5,
	}
}

func (w Weights) Score(counts ActivityCounts) float64 {
	return float64(counts.TrustedCount)*w.Trusted +
		float64(counts.GovernanceActions)*w.Governance +
		float64(counts.WorkspaceCount)*w.Workspace -
		float64(counts.PendingCount)*w.PendingPenalty
}
