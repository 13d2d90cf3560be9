package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"

	"knowledgenet/contexts/knowledge-governance/analytics-service/domain/services"
	"knowledgenet/contexts/knowledge-governance/analytics-service/ports"
)

const defaultLeaderboardLimit = 10

// noDataPlaceholder is what percentage fields degrade to when the
// backing source is unavailable or the denominator is zero.
const noDataPlaceholder = "–"

type Service struct {
	Artefacts  ports.ArtefactSource
	Workspaces ports.WorkspaceSource
	Rules      ports.RuleSource
	Users      ports.UserDirectory
	Activity   ports.ActivityProjection
	Weights    services.Weights
	Limit      int
	Logger     *slog.Logger
}

type LeaderboardFilter struct {
	RegionID string
	Limit    int
}

type LeaderboardRow struct {
	UserID     string
	Name       string
	Role       string
	OfficeName string
	RegionID   string
	Counts     services.ActivityCounts
	Score      float64
}

type DashboardSummary struct {
	CommunityCount        int
	ArtefactCount         int
	ExpertCount           int
	GovernanceRuleCount   int
	PendingCount          int
	TrustedPercentage     string
	CrossRegionPercentage string
	PendingRuleUpdates    int
	CommunitiesDelta      int
	RecentArtefacts       []ports.RecentArtefact
}

func (s Service) weights() services.Weights {
	if (s.Weights == services.Weights{}) {
		return services.DefaultWeights()
	}
	return s.Weights
}

// GetLeaderboard ranks every directory user by contribution score. Any
// failing source fails the whole listing; partial rankings would be
// misleading.
func (s Service) GetLeaderboard(ctx context.Context, filter LeaderboardFilter) ([]LeaderboardRow, error) {
	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboard user directory: %w", err)
	}
	ownerActivity, err := s.Artefacts.OwnerActivity(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboard artefact source: %w", err)
	}

	regionID := strings.TrimSpace(filter.RegionID)
	rows := make([]LeaderboardRow, 0, len(users))
	weights := s.weights()
	for _, user := range users {
		if regionID != "" && user.RegionID != regionID {
			continue
		}
		counts := services.ActivityCounts{
			TrustedCount: ownerActivity[user.UserID].TrustedCount,
			PendingCount: ownerActivity[user.UserID].PendingCount,
		}
		counts.GovernanceActions, err = s.Activity.GovernanceActionCount(ctx, user.UserID)
		if err != nil {
			return nil, fmt.Errorf("leaderboard activity projection: %w", err)
		}
		counts.WorkspaceCount, err = s.Workspaces.MembershipCount(ctx, user.UserID)
		if err != nil {
			return nil, fmt.Errorf("leaderboard workspace source: %w", err)
		}
		rows = append(rows, LeaderboardRow{
			UserID:     user.UserID,
			Name:       user.Name,
			Role:       user.Role,
			OfficeName: user.OfficeName,
			RegionID:   user.RegionID,
			Counts:     counts,
			Score:      weights.Score(counts),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score == rows[j].Score {
			return rows[i].UserID < rows[j].UserID
		}
		return rows[i].Score > rows[j].Score
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = s.Limit
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// GetDashboardSummary aggregates the dashboard tiles from every source
// at once and never fails: a broken source only zeroes its own fields.
func (s Service) GetDashboardSummary(ctx context.Context) DashboardSummary {
	logger := resolveLogger(s.Logger)
	summary := DashboardSummary{
		TrustedPercentage:     noDataPlaceholder,
		CrossRegionPercentage: noDataPlaceholder,
		RecentArtefacts:       []ports.RecentArtefact{},
	}

	var (
		wg           sync.WaitGroup
		stats        ports.ArtefactStats
		statsErr     error
		pending      int
		pendingErr   error
		experts      []LeaderboardRow
		expertsErr   error
		workspaces   int
		workspaceErr error
		rules        int
		rulesErr     error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		stats, statsErr = s.Artefacts.ArtefactStats(ctx)
	}()
	go func() {
		defer wg.Done()
		pending, pendingErr = s.Artefacts.PendingCount(ctx)
	}()
	go func() {
		defer wg.Done()
		experts, expertsErr = s.GetLeaderboard(ctx, LeaderboardFilter{})
	}()
	go func() {
		defer wg.Done()
		workspaces, workspaceErr = s.Workspaces.WorkspaceCount(ctx)
	}()
	go func() {
		defer wg.Done()
		rules, rulesErr = s.Rules.RuleCount(ctx)
	}()
	wg.Wait()

	if statsErr != nil {
		s.logDegraded(logger, "artefact_stats", statsErr)
	} else {
		summary.ArtefactCount = stats.Total
		if stats.Total > 0 {
			rate := math.Round(float64(stats.Trusted) * 100 / float64(stats.Total))
			summary.TrustedPercentage = fmt.Sprintf("%d%%", int(rate))
		}
		if stats.Recent != nil {
			summary.RecentArtefacts = stats.Recent
		}
	}
	if pendingErr != nil {
		s.logDegraded(logger, "pending_backlog", pendingErr)
	} else {
		summary.PendingCount = pending
		summary.PendingRuleUpdates = pending
	}
	if expertsErr != nil {
		s.logDegraded(logger, "leaderboard", expertsErr)
	} else {
		summary.ExpertCount = len(experts)
	}
	if workspaceErr != nil {
		s.logDegraded(logger, "workspaces", workspaceErr)
	} else {
		summary.CommunityCount = workspaces
	}
	if rulesErr != nil {
		s.logDegraded(logger, "governance_rules", rulesErr)
	} else {
		summary.GovernanceRuleCount = rules
	}

	return summary
}

func (s Service) logDegraded(logger *slog.Logger, source string, err error) {
	logger.Warn("dashboard source degraded",
		"event", "analytics_dashboard_source_degraded",
		"module", "knowledge-governance/analytics-service",
		"layer", "application",
		"source", source,
		"error", err.Error(),
	)
}
