package httpadapter

import (
	"context"
	"log/slog"

	"knowledgenet/contexts/knowledge-governance/workspace-service/application"
	httptransport "knowledgenet/contexts/knowledge-governance/workspace-service/transport/http"
	"knowledgenet/internal/shared/identity"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) JoinWorkspaceHandler(
	ctx context.Context,
	caller identity.Identity,
	workspaceID string,
) (httptransport.JoinWorkspaceResponse, error) {
	count, err := h.Service.JoinWorkspace(ctx, caller, workspaceID)
	if err != nil {
		return httptransport.JoinWorkspaceResponse{}, err
	}
	return httptransport.JoinWorkspaceResponse{MemberCount: count}, nil
}

func (h Handler) ListWorkspacesHandler(ctx context.Context) ([]httptransport.WorkspaceView, error) {
	views, err := h.Service.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	return toWorkspaceViews(views), nil
}

func (h Handler) ListMyWorkspacesHandler(
	ctx context.Context,
	caller identity.Identity,
) ([]httptransport.WorkspaceView, error) {
	views, err := h.Service.ListMyWorkspaces(ctx, caller)
	if err != nil {
		return nil, err
	}
	return toWorkspaceViews(views), nil
}

func toWorkspaceViews(items []application.WorkspaceView) []httptransport.WorkspaceView {
	views := make([]httptransport.WorkspaceView, 0, len(items))
	for _, item := range items {
		views = append(views, httptransport.WorkspaceView{
			ID:          item.Workspace.WorkspaceID,
			Name:        item.Workspace.Name,
			Type:        item.Workspace.Type,
			ProjectID:   item.Workspace.ProjectID,
			MemberCount: item.MemberCount,
		})
	}
	return views
}
