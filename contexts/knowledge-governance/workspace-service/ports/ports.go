package ports

import (
	"context"
	"time"

	"knowledgenet/contexts/knowledge-governance/workspace-service/domain/entities"
)

type WorkspaceRepository interface {
	GetWorkspace(ctx context.Context, workspaceID string) (entities.Workspace, error)
	ListWorkspaces(ctx context.Context) ([]entities.Workspace, error)
}

// MembershipRepository stores one row per workspace and user. AddMember
// reports whether the membership was newly created so joins stay
// idempotent for callers.
type MembershipRepository interface {
	AddMember(ctx context.Context, membership entities.Membership) (bool, error)
	CountMembers(ctx context.Context, workspaceID string) (int, error)
	CountMemberships(ctx context.Context, userID string) (int, error)
	ListMemberWorkspaceIDs(ctx context.Context, userID string) ([]string, error)
}

type Clock interface {
	Now() time.Time
}
