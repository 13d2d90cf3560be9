package entities

import "time"

// Workspace is a collaboration room attached to knowledge work, either
// scoped to a delivery project or open as a community of practice.
type Workspace struct {
	WorkspaceID string
	Name        string
	Type        string
	ProjectID   string
	CreatedAt   time.Time
}

const (
	TypeProjectDelivery     = "ProjectDelivery"
	TypeCommunityOfPractice = "CommunityOfPractice"
)

type Membership struct {
	WorkspaceID string
	UserID      string
	JoinedOn    time.Time
}
