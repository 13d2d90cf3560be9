package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"knowledgenet/contexts/knowledge-governance/analytics-service/application"
	"knowledgenet/contexts/knowledge-governance/analytics-service/ports"
	"knowledgenet/internal/shared/events"
)

// ReviewRecordedConsumer feeds the governance-action projection from
// artefact review events. Redeliveries are dropped by event id, so the
// projection stays correct under at-least-once transport.
type ReviewRecordedConsumer struct {
	Activity ports.ActivityProjection
	Logger   *slog.Logger
}

type reviewRecordedPayload struct {
	ReviewerID string `json:"reviewer_id"`
	Decision   string `json:"decision"`
}

func (c ReviewRecordedConsumer) Handle(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload reviewRecordedPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		logger.Error("review event payload decode failed",
			"event", "analytics_review_event_decode_failed",
			"module", "knowledge-governance/analytics-service",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}
	reviewerID := strings.TrimSpace(payload.ReviewerID)
	if reviewerID == "" {
		return fmt.Errorf("review event %s has no reviewer id", event.EventID)
	}

	applied, err := c.Activity.RecordGovernanceAction(ctx, event.EventID, reviewerID)
	if err != nil {
		return err
	}
	if !applied {
		logger.Debug("review event already applied",
			"event", "analytics_review_event_duplicate",
			"module", "knowledge-governance/analytics-service",
			"layer", "worker",
			"event_id", event.EventID,
		)
		return nil
	}

	logger.Info("governance action projected",
		"event", "analytics_governance_action_projected",
		"module", "knowledge-governance/analytics-service",
		"layer", "worker",
		"event_id", event.EventID,
		"reviewer_id", reviewerID,
		"decision", payload.Decision,
	)
	return nil
}
