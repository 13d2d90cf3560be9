package httpadapter

import (
	"context"
	"log/slog"

	"knowledgenet/contexts/knowledge-governance/analytics-service/application"
	httptransport "knowledgenet/contexts/knowledge-governance/analytics-service/transport/http"
)

const dateLayout = "2006-01-02"

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) LeaderboardHandler(
	ctx context.Context,
	regionID string,
	limit int,
) ([]httptransport.LeaderboardRowView, error) {
	rows, err := h.Service.GetLeaderboard(ctx, application.LeaderboardFilter{
		RegionID: regionID,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	views := make([]httptransport.LeaderboardRowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, httptransport.LeaderboardRowView{
			ID:                row.UserID,
			Name:              row.Name,
			Role:              row.Role,
			OfficeName:        row.OfficeName,
			TrustedCount:      row.Counts.TrustedCount,
			PendingCount:      row.Counts.PendingCount,
			GovernanceActions: row.Counts.GovernanceActions,
			WorkspaceCount:    row.Counts.WorkspaceCount,
			Score:             row.Score,
		})
	}
	return views, nil
}

func (h Handler) DashboardSummaryHandler(ctx context.Context) httptransport.DashboardSummaryView {
	summary := h.Service.GetDashboardSummary(ctx)

	recent := make([]httptransport.RecentArtefactView, 0, len(summary.RecentArtefacts))
	for _, artefact := range summary.RecentArtefacts {
		recent = append(recent, httptransport.RecentArtefactView{
			ID:          artefact.ArtefactID,
			Title:       artefact.Title,
			OwnerName:   artefact.OwnerName,
			ProjectName: artefact.ProjectName,
			Status:      artefact.Status,
			CreatedOn:   artefact.CreatedAt.UTC().Format(dateLayout),
		})
	}
	return httptransport.DashboardSummaryView{
		CommunityCount:        summary.CommunityCount,
		ArtefactCount:         summary.ArtefactCount,
		ExpertCount:           summary.ExpertCount,
		GovernanceRuleCount:   summary.GovernanceRuleCount,
		PendingCount:          summary.PendingCount,
		TrustedPercentage:     summary.TrustedPercentage,
		CrossRegionPercentage: summary.CrossRegionPercentage,
		PendingRuleUpdates:    summary.PendingRuleUpdates,
		CommunitiesDelta:      summary.CommunitiesDelta,
		RecentArtefacts:       recent,
	}
}
