package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LeaderboardRowView matches the table the original leaderboard page
// renders; counter keys stay snake_case for compatibility.
type LeaderboardRowView struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Role              string  `json:"role"`
	OfficeName        string  `json:"officeName"`
	TrustedCount      int     `json:"trusted_count"`
	PendingCount      int     `json:"pending_count"`
	GovernanceActions int     `json:"governance_actions"`
	WorkspaceCount    int     `json:"workspace_count"`
	Score             float64 `json:"score"`
}

type RecentArtefactView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	OwnerName   string `json:"ownerName"`
	ProjectName string `json:"projectName,omitempty"`
	Status      string `json:"status"`
	CreatedOn   string `json:"created_on"`
}

type DashboardSummaryView struct {
	CommunityCount        int                  `json:"communityCount"`
	ArtefactCount         int                  `json:"artefactCount"`
	ExpertCount           int                  `json:"expertCount"`
	GovernanceRuleCount   int                  `json:"governanceRuleCount"`
	PendingCount          int                  `json:"pendingCount"`
	TrustedPercentage     string               `json:"trustedPercentage"`
	CrossRegionPercentage string               `json:"crossRegionPercentage"`
	PendingRuleUpdates    int                  `json:"pendingRuleUpdates"`
	CommunitiesDelta      int                  `json:"communitiesDelta"`
	RecentArtefacts       []RecentArtefactView `json:"recentArtefacts"`
}
