package application

import (
	"context"
	"log/slog"
	"strings"

	"knowledgenet/contexts/knowledge-governance/workspace-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/workspace-service/domain/errors"
	"knowledgenet/contexts/knowledge-governance/workspace-service/ports"
	"knowledgenet/internal/shared/identity"
)

type Service struct {
	Workspaces  ports.WorkspaceRepository
	Memberships ports.MembershipRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

type WorkspaceView struct {
	Workspace   entities.Workspace
	MemberCount int
}

// JoinWorkspace adds the caller to a workspace and returns the member
// count after the join. Joining a workspace the caller already belongs
// to is a no-op with the unchanged count.
func (s Service) JoinWorkspace(ctx context.Context, caller identity.Identity, workspaceID string) (int, error) {
	logger := resolveLogger(s.Logger)
	if caller.IsAnonymous() {
		return 0, domainerrors.ErrInvalidRequest
	}
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return 0, domainerrors.ErrInvalidRequest
	}

	workspace, err := s.Workspaces.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return 0, err
	}

	joined, err := s.Memberships.AddMember(ctx, entities.Membership{
		WorkspaceID: workspace.WorkspaceID,
		UserID:      caller.UserID,
		JoinedOn:    s.Clock.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}
	count, err := s.Memberships.CountMembers(ctx, workspace.WorkspaceID)
	if err != nil {
		return 0, err
	}

	if joined {
		logger.Info("workspace member joined",
			"event", "workspace_member_joined",
			"module", "knowledge-governance/workspace-service",
			"layer", "application",
			"workspace_id", workspace.WorkspaceID,
			"user_id", caller.UserID,
			"member_count", count,
		)
	}
	return count, nil
}

func (s Service) ListWorkspaces(ctx context.Context) ([]WorkspaceView, error) {
	workspaces, err := s.Workspaces.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	return s.withMemberCounts(ctx, workspaces)
}

func (s Service) ListMyWorkspaces(ctx context.Context, caller identity.Identity) ([]WorkspaceView, error) {
	if caller.IsAnonymous() {
		return nil, domainerrors.ErrInvalidRequest
	}
	ids, err := s.Memberships.ListMemberWorkspaceIDs(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	workspaces := make([]entities.Workspace, 0, len(ids))
	for _, id := range ids {
		workspace, err := s.Workspaces.GetWorkspace(ctx, id)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, workspace)
	}
	return s.withMemberCounts(ctx, workspaces)
}

func (s Service) withMemberCounts(ctx context.Context, workspaces []entities.Workspace) ([]WorkspaceView, error) {
	views := make([]WorkspaceView, 0, len(workspaces))
	for _, workspace := range workspaces {
		count, err := s.Memberships.CountMembers(ctx, workspace.WorkspaceID)
		if err != nil {
			return nil, err
		}
		views = append(views, WorkspaceView{Workspace: workspace, MemberCount: count})
	}
	return views, nil
}
