package ports

import (
	"context"
	"time"
)

// OwnerActivity is the artefact side of a user's leaderboard counters.
type OwnerActivity struct {
	TrustedCount int
	PendingCount int
}

type RecentArtefact struct {
	ArtefactID  string
	Title       string
	OwnerName   string
	ProjectName string
	Status      string
	CreatedAt   time.Time
}

type ArtefactStats struct {
	Total   int
	Trusted int
	Recent  []RecentArtefact
}

// ArtefactSource reads aggregate artefact facts. Implementations bridge
// to the artefact service and may fail independently of other sources.
type ArtefactSource interface {
	ArtefactStats(ctx context.Context) (ArtefactStats, error)
	PendingCount(ctx context.Context) (int, error)
	OwnerActivity(ctx context.Context) (map[string]OwnerActivity, error)
}

type WorkspaceSource interface {
	WorkspaceCount(ctx context.Context) (int, error)
	MembershipCount(ctx context.Context, userID string) (int, error)
}

type RuleSource interface {
	RuleCount(ctx context.Context) (int, error)
}

type UserProfile struct {
	UserID     string
	Name       string
	Role       string
	OfficeName string
	RegionID   string
}

type UserDirectory interface {
	ListUsers(ctx context.Context) ([]UserProfile, error)
}

// ActivityProjection tracks governance actions per reviewer, fed by
// review events. RecordGovernanceAction reports false for an event id
// that was already applied.
type ActivityProjection interface {
	RecordGovernanceAction(ctx context.Context, eventID string, reviewerID string) (bool, error)
	GovernanceActionCount(ctx context.Context, userID string) (int, error)
}
