package sources

import (
	"context"

	"knowledgenet/contexts/knowledge-governance/analytics-service/ports"
	artefactapplication "knowledgenet/contexts/knowledge-governance/artefact-service/application"
	artefactentities "knowledgenet/contexts/knowledge-governance/artefact-service/domain/entities"
	artefactports "knowledgenet/contexts/knowledge-governance/artefact-service/ports"
	ruleapplication "knowledgenet/contexts/knowledge-governance/rule-catalog-service/application"
	workspaceapplication "knowledgenet/contexts/knowledge-governance/workspace-service/application"
	workspaceports "knowledgenet/contexts/knowledge-governance/workspace-service/ports"
)

const recentArtefactLimit = 5

// ArtefactSource reads dashboard and leaderboard facts through the
// artefact service's own listing path, so enrichment and ordering stay
// consistent with the artefact views.
type ArtefactSource struct {
	Service artefactapplication.Service
}

func (s ArtefactSource) ArtefactStats(ctx context.Context) (ports.ArtefactStats, error) {
	views, err := s.Service.ListArtefacts(ctx, artefactports.ArtefactFilter{})
	if err != nil {
		return ports.ArtefactStats{}, err
	}

	stats := ports.ArtefactStats{Total: len(views)}
	for _, view := range views {
		if view.Artefact.Status == artefactentities.StatusTrusted {
			stats.Trusted++
		}
	}
	for _, view := range views {
		if len(stats.Recent) >= recentArtefactLimit {
			break
		}
		stats.Recent = append(stats.Recent, ports.RecentArtefact{
			ArtefactID:  view.Artefact.ArtefactID,
			Title:       view.Artefact.Title,
			OwnerName:   view.OwnerName,
			ProjectName: view.ProjectName,
			Status:      string(view.Artefact.Status),
			CreatedAt:   view.Artefact.CreatedAt,
		})
	}
	return stats, nil
}

func (s ArtefactSource) PendingCount(ctx context.Context) (int, error) {
	views, err := s.Service.ListArtefacts(ctx, artefactports.ArtefactFilter{
		Status: artefactentities.StatusPendingReview,
	})
	if err != nil {
		return 0, err
	}
	return len(views), nil
}

func (s ArtefactSource) OwnerActivity(ctx context.Context) (map[string]ports.OwnerActivity, error) {
	views, err := s.Service.ListArtefacts(ctx, artefactports.ArtefactFilter{})
	if err != nil {
		return nil, err
	}
	activity := make(map[string]ports.OwnerActivity, len(views))
	for _, view := range views {
		entry := activity[view.Artefact.OwnerID]
		switch view.Artefact.Status {
		case artefactentities.StatusTrusted:
			entry.TrustedCount++
		case artefactentities.StatusPendingReview:
			entry.PendingCount++
		}
		activity[view.Artefact.OwnerID] = entry
	}
	return activity, nil
}

type WorkspaceSource struct {
	Service     workspaceapplication.Service
	Memberships workspaceports.MembershipRepository
}

func (s WorkspaceSource) WorkspaceCount(ctx context.Context) (int, error) {
	views, err := s.Service.ListWorkspaces(ctx)
	if err != nil {
		return 0, err
	}
	return len(views), nil
}

func (s WorkspaceSource) MembershipCount(ctx context.Context, userID string) (int, error) {
	return s.Memberships.CountMemberships(ctx, userID)
}

type RuleSource struct {
	Service ruleapplication.Service
}

func (s RuleSource) RuleCount(ctx context.Context) (int, error) {
	rules, err := s.Service.ListRules(ctx)
	if err != nil {
		return 0, err
	}
	return len(rules), nil
}

type UserDirectory struct {
	Directory artefactports.DirectoryRepository
}

func (s UserDirectory) ListUsers(ctx context.Context) ([]ports.UserProfile, error) {
	users, err := s.Directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]ports.UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, ports.UserProfile{
			UserID:     user.UserID,
			Name:       user.Name,
			Role:       user.Role,
			OfficeName: user.OfficeName,
			RegionID:   user.RegionID,
		})
	}
	return profiles, nil
}

var _ ports.ArtefactSource = ArtefactSource{}
var _ ports.WorkspaceSource = WorkspaceSource{}
var _ ports.RuleSource = RuleSource{}
var _ ports.UserDirectory = UserDirectory{}
