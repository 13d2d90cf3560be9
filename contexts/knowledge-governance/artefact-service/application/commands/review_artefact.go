package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "knowledgenet/contexts/knowledge-governance/artefact-service/application"
	"knowledgenet/contexts/knowledge-governance/artefact-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/artefact-service/domain/errors"
	"knowledgenet/contexts/knowledge-governance/artefact-service/ports"
	ruleerrors "knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/errors"
	"knowledgenet/internal/shared/identity"
)

const (
	ReviewRecordedTopic = "artefact.review.recorded"

	// Conflicting updates are retried against the re-read state; two
	// passes are enough because the retry re-validates preconditions and
	// a second conflict means another decision already landed.
	maxDecisionAttempts = 2
)

type ReviewArtefactCommand struct {
	ArtefactID string
	Reviewer   identity.Identity
	Decision   entities.ReviewDecision
	Comment    string
}

type ReviewArtefactUseCase struct {
	Artefacts ports.ArtefactRepository
	History   ports.HistoryRepository
	Rules     ports.RuleFinder
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

type reviewRecordedPayload struct {
	ArtefactID string `json:"artefact_id"`
	ReviewerID string `json:"reviewer_id"`
	Decision   string `json:"decision"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	RecordedAt string `json:"recorded_at"`
}

// Execute applies one review decision. Preconditions are validated against
// the currently persisted status: the versioned update rejects stale
// writes, and on conflict the artefact is re-read and re-validated so a
// concurrent duplicate decision fails with ErrInvalidTransition instead
// of double-applying.
func (uc ReviewArtefactUseCase) Execute(ctx context.Context, cmd ReviewArtefactCommand) (entities.Artefact, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !identity.CanGovern(cmd.Reviewer.Role) {
		return entities.Artefact{}, domainerrors.ErrForbidden
	}
	if !entities.IsSupportedDecision(cmd.Decision) {
		return entities.Artefact{}, domainerrors.ErrInvalidArtefactInput
	}

	artefactID := strings.TrimSpace(cmd.ArtefactID)
	var lastErr error
	for attempt := 0; attempt < maxDecisionAttempts; attempt++ {
		artefact, err := uc.Artefacts.GetArtefact(ctx, artefactID)
		if err != nil {
			return entities.Artefact{}, err
		}

		updated, err := uc.applyDecision(ctx, artefact, cmd)
		if err != nil {
			return entities.Artefact{}, err
		}

		if err := uc.Artefacts.UpdateArtefactVersioned(ctx, updated, artefact.Version); err != nil {
			if errors.Is(err, domainerrors.ErrVersionConflict) {
				lastErr = err
				continue
			}
			return entities.Artefact{}, err
		}
		return uc.record(ctx, logger, artefact.Status, updated, cmd)
	}
	return entities.Artefact{}, lastErr
}

func (uc ReviewArtefactUseCase) applyDecision(
	ctx context.Context,
	artefact entities.Artefact,
	cmd ReviewArtefactCommand,
) (entities.Artefact, error) {
	next, ok := artefact.NextStatus(cmd.Decision)
	if !ok {
		return entities.Artefact{}, fmt.Errorf("%w: %s from %s",
			domainerrors.ErrInvalidTransition, cmd.Decision, artefact.Status)
	}

	now := uc.Clock.Now().UTC()
	artefact.Status = next
	artefact.UpdatedAt = now
	artefact.Version++

	if cmd.Decision == entities.DecisionApprove {
		// Re-anchor the review window from the rule in effect at
		// decision time; rules may have changed since submission.
		rule, err := uc.Rules.RuleFor(ctx, artefact.Category)
		if err != nil {
			if errors.Is(err, ruleerrors.ErrRuleNotFound) {
				return entities.Artefact{}, fmt.Errorf("%w: %s",
					domainerrors.ErrUnknownCategory, artefact.Category)
			}
			return entities.Artefact{}, err
		}
		artefact.ReviewDueOn = artefact.SubmittedOn.AddDate(0, rule.MaxReviewIntervalMonths, 0)
	}
	return artefact, nil
}

func (uc ReviewArtefactUseCase) record(
	ctx context.Context,
	logger *slog.Logger,
	from entities.ArtefactStatus,
	artefact entities.Artefact,
	cmd ReviewArtefactCommand,
) (entities.Artefact, error) {
	now := uc.Clock.Now().UTC()
	recordID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Artefact{}, err
	}
	record := entities.ReviewRecord{
		RecordID:   recordID,
		ArtefactID: artefact.ArtefactID,
		ReviewerID: cmd.Reviewer.UserID,
		Decision:   cmd.Decision,
		Comment:    strings.TrimSpace(cmd.Comment),
		RecordedAt: now,
	}
	if err := uc.History.AppendReview(ctx, record); err != nil {
		return entities.Artefact{}, err
	}
	artefact.ReviewHistory = append(artefact.ReviewHistory, record)

	if err := uc.emitReviewRecorded(ctx, from, artefact, record); err != nil {
		logger.Error("review event emit failed",
			"event", "artefact_review_event_emit_failed",
			"module", "knowledge-governance/artefact-service",
			"layer", "application",
			"artefact_id", artefact.ArtefactID,
			"error", err.Error(),
		)
	}

	logger.Info("artefact review recorded",
		"event", "artefact_review_recorded",
		"module", "knowledge-governance/artefact-service",
		"layer", "application",
		"artefact_id", artefact.ArtefactID,
		"reviewer_id", cmd.Reviewer.UserID,
		"decision", string(cmd.Decision),
		"from_status", string(from),
		"to_status", string(artefact.Status),
	)
	return artefact, nil
}

func (uc ReviewArtefactUseCase) emitReviewRecorded(
	ctx context.Context,
	from entities.ArtefactStatus,
	artefact entities.Artefact,
	record entities.ReviewRecord,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(reviewRecordedPayload{
		ArtefactID: artefact.ArtefactID,
		ReviewerID: record.ReviewerID,
		Decision:   string(record.Decision),
		FromStatus: string(from),
		ToStatus:   string(artefact.Status),
		RecordedAt: record.RecordedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     ReviewRecordedTopic,
		SourceService: "knowledge-governance/artefact-service",
		OccurredAtUTC: record.RecordedAt.UTC(),
		EntityType:    "artefact",
		EntityID:      artefact.ArtefactID,
		SchemaVersion: 1,
		Data:          payload,
	})
}
