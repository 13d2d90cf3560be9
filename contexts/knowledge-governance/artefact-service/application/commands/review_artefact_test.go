package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"knowledgenet/contexts/knowledge-governance/artefact-service/adapters/memory"
	"knowledgenet/contexts/knowledge-governance/artefact-service/application"
	"knowledgenet/contexts/knowledge-governance/artefact-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/artefact-service/domain/errors"
	"knowledgenet/contexts/knowledge-governance/artefact-service/ports"
	rulememory "knowledgenet/contexts/knowledge-governance/rule-catalog-service/adapters/memory"
	ruleapplication "knowledgenet/contexts/knowledge-governance/rule-catalog-service/application"
	"knowledgenet/internal/shared/identity"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

type reviewFixture struct {
	store    *memory.Store
	rules    ruleapplication.Service
	clock    fixedClock
	artefact entities.Artefact
}

func newReviewFixture(t *testing.T) reviewFixture {
	t.Helper()
	now := time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	rules := ruleapplication.Service{Repo: rulememory.NewStore()}
	service := application.Service{
		Artefacts: store,
		Rules:     rules,
		Directory: store,
		Clock:     fixedClock{now: now},
		IDGen:     store,
	}

	artefact, err := service.CreateArtefact(context.Background(), identity.Identity{
		UserID: "user_amara", Role: identity.RoleConsultant, RegionID: "region_emea",
	}, application.CreateArtefactInput{
		Title:           "Cloud Migration Playbook",
		Description:     "Steps and pitfalls from the Atlas migration.",
		ProjectID:       "proj_atlas",
		Category:        "Cloud",
		Confidentiality: "Internal",
		TagIDs:          []string{"tag_cloud"},
		ReviewDueOn:     now.AddDate(0, 6, 0),
	})
	if err != nil {
		t.Fatalf("fixture submission failed: %v", err)
	}
	return reviewFixture{store: store, rules: rules, clock: fixedClock{now: now}, artefact: artefact}
}

func (f reviewFixture) useCase() ReviewArtefactUseCase {
	return ReviewArtefactUseCase{
		Artefacts: f.store,
		History:   f.store,
		Rules:     f.rules,
		Outbox:    f.store,
		Clock:     f.clock,
		IDGen:     f.store,
	}
}

func reviewer() identity.Identity {
	return identity.Identity{UserID: "user_mei", Role: identity.RoleGovCouncil, RegionID: "region_apac"}
}

func TestApproveMovesPendingToTrusted(t *testing.T) {
	fixture := newReviewFixture(t)
	useCase := fixture.useCase()

	updated, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   reviewer(),
		Decision:   entities.DecisionApprove,
		Comment:    "Solid write-up.",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if updated.Status != entities.StatusTrusted {
		t.Fatalf("expected Trusted, got %s", updated.Status)
	}
	if len(updated.ReviewHistory) != 1 {
		t.Fatalf("expected one review record, got %d", len(updated.ReviewHistory))
	}
	record := updated.ReviewHistory[0]
	if record.ReviewerID != "user_mei" || record.Decision != entities.DecisionApprove {
		t.Fatalf("unexpected review record: %+v", record)
	}

	// Approval re-anchors the next review at submission plus the rule
	// interval, not at the due date the author proposed.
	wantDue := fixture.artefact.SubmittedOn.AddDate(0, 12, 0)
	if !updated.ReviewDueOn.Equal(wantDue) {
		t.Fatalf("review due on = %s, want %s", updated.ReviewDueOn, wantDue)
	}

	stored, err := fixture.store.GetArtefact(context.Background(), fixture.artefact.ArtefactID)
	if err != nil {
		t.Fatalf("stored artefact missing: %v", err)
	}
	if stored.Status != entities.StatusTrusted {
		t.Fatalf("stored status %s, want Trusted", stored.Status)
	}
	if stored.Version != fixture.artefact.Version+1 {
		t.Fatalf("version = %d, want %d", stored.Version, fixture.artefact.Version+1)
	}
}

func TestApproveAppendsOutboxEvent(t *testing.T) {
	fixture := newReviewFixture(t)
	useCase := fixture.useCase()

	if _, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   reviewer(),
		Decision:   entities.DecisionApprove,
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	pending, err := fixture.store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("outbox listing failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one outbox message, got %d", len(pending))
	}
	if pending[0].EventType != ReviewRecordedTopic {
		t.Fatalf("event type = %s, want %s", pending[0].EventType, ReviewRecordedTopic)
	}
	if pending[0].PartitionKey != fixture.artefact.ArtefactID {
		t.Fatalf("partition key = %s, want artefact id", pending[0].PartitionKey)
	}
}

func TestReviewRejectedForNonGovernanceRole(t *testing.T) {
	fixture := newReviewFixture(t)
	useCase := fixture.useCase()

	_, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   identity.Identity{UserID: "user_amara", Role: identity.RoleConsultant},
		Decision:   entities.DecisionApprove,
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored, err := fixture.store.GetArtefact(context.Background(), fixture.artefact.ArtefactID)
	if err != nil {
		t.Fatalf("stored artefact missing: %v", err)
	}
	if stored.Status != entities.StatusPendingReview {
		t.Fatalf("forbidden review must not change status, got %s", stored.Status)
	}
	if len(stored.ReviewHistory) != 0 {
		t.Fatalf("forbidden review must not append history, got %d records", len(stored.ReviewHistory))
	}
}

func TestDuplicateDecisionFailsAsInvalidTransition(t *testing.T) {
	fixture := newReviewFixture(t)
	useCase := fixture.useCase()

	if _, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   reviewer(),
		Decision:   entities.DecisionApprove,
	}); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}

	_, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   reviewer(),
		Decision:   entities.DecisionApprove,
	})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second approve, got %v", err)
	}

	stored, err := fixture.store.GetArtefact(context.Background(), fixture.artefact.ArtefactID)
	if err != nil {
		t.Fatalf("stored artefact missing: %v", err)
	}
	if len(stored.ReviewHistory) != 1 {
		t.Fatalf("failed decision must not append history, got %d records", len(stored.ReviewHistory))
	}
}

func TestRetireRequiresTrustedStatus(t *testing.T) {
	fixture := newReviewFixture(t)
	useCase := fixture.useCase()

	_, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   reviewer(),
		Decision:   entities.DecisionRetire,
	})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("retire from PendingReview must fail, got %v", err)
	}

	if _, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   reviewer(),
		Decision:   entities.DecisionApprove,
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	updated, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   reviewer(),
		Decision:   entities.DecisionRetire,
	})
	if err != nil {
		t.Fatalf("retire after approve failed: %v", err)
	}
	if updated.Status != entities.StatusRetired {
		t.Fatalf("expected Retired, got %s", updated.Status)
	}
}

func TestReviewUnknownArtefact(t *testing.T) {
	fixture := newReviewFixture(t)
	useCase := fixture.useCase()

	_, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: "artefact_missing",
		Reviewer:   reviewer(),
		Decision:   entities.DecisionReject,
	})
	if !errors.Is(err, domainerrors.ErrArtefactNotFound) {
		t.Fatalf("expected ErrArtefactNotFound, got %v", err)
	}
}

type conflictOnceRepo struct {
	ports.ArtefactRepository
	conflicts int
}

func (r *conflictOnceRepo) UpdateArtefactVersioned(ctx context.Context, artefact entities.Artefact, expectedVersion int64) error {
	if r.conflicts > 0 {
		r.conflicts--
		return domainerrors.ErrVersionConflict
	}
	return r.ArtefactRepository.UpdateArtefactVersioned(ctx, artefact, expectedVersion)
}

func TestVersionConflictIsRetriedOnce(t *testing.T) {
	fixture := newReviewFixture(t)
	useCase := fixture.useCase()
	useCase.Artefacts = &conflictOnceRepo{ArtefactRepository: fixture.store, conflicts: 1}

	updated, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   reviewer(),
		Decision:   entities.DecisionApprove,
	})
	if err != nil {
		t.Fatalf("retried approve failed: %v", err)
	}
	if updated.Status != entities.StatusTrusted {
		t.Fatalf("expected Trusted after retry, got %s", updated.Status)
	}
}

func TestVersionConflictGivesUpAfterRetry(t *testing.T) {
	fixture := newReviewFixture(t)
	useCase := fixture.useCase()
	useCase.Artefacts = &conflictOnceRepo{ArtefactRepository: fixture.store, conflicts: 2}

	_, err := useCase.Execute(context.Background(), ReviewArtefactCommand{
		ArtefactID: fixture.artefact.ArtefactID,
		Reviewer:   reviewer(),
		Decision:   entities.DecisionApprove,
	})
	if !errors.Is(err, domainerrors.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict after exhausted retries, got %v", err)
	}
}
