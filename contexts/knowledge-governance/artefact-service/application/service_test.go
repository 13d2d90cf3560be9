package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"knowledgenet/contexts/knowledge-governance/artefact-service/adapters/memory"
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

type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("artefact_%03d", g.next), nil
}

func newTestService(t *testing.T, now time.Time) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	rules := ruleapplication.Service{Repo: rulememory.NewStore()}
	service := Service{
		Artefacts: store,
		Rules:     rules,
		Directory: store,
		Clock:     fixedClock{now: now},
		IDGen:     &sequenceIDs{},
	}
	return service, store
}

func consultant() identity.Identity {
	return identity.Identity{UserID: "user_amara", Role: identity.RoleConsultant, RegionID: "region_emea"}
}

func validInput(now time.Time) CreateArtefactInput {
	return CreateArtefactInput{
		Title:           "Cloud Migration Playbook",
		Description:     "Steps and pitfalls from the Atlas migration.",
		ProjectID:       "proj_atlas",
		Category:        "Cloud",
		Confidentiality: "Internal",
		TagIDs:          []string{"tag_cloud"},
		ReviewDueOn:     now.AddDate(0, 11, 0),
	}
}

func TestCreateArtefactSubmitsForReview(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	service, store := newTestService(t, now)

	artefact, err := service.CreateArtefact(context.Background(), consultant(), validInput(now))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if artefact.Status != entities.StatusPendingReview {
		t.Fatalf("expected PendingReview, got %s", artefact.Status)
	}
	if len(artefact.ReviewHistory) != 0 {
		t.Fatalf("submission must not append review records, got %d", len(artefact.ReviewHistory))
	}

	stored, err := store.GetArtefact(context.Background(), artefact.ArtefactID)
	if err != nil {
		t.Fatalf("stored artefact missing: %v", err)
	}
	if stored.Status != entities.StatusPendingReview {
		t.Fatalf("stored status %s, want PendingReview", stored.Status)
	}
}

func TestCreateArtefactUnknownCategory(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	service, _ := newTestService(t, now)

	input := validInput(now)
	input.Category = "Quantum"
	if _, err := service.CreateArtefact(context.Background(), consultant(), input); !errors.Is(err, domainerrors.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestCreateArtefactMissingMandatoryMetadata(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	service, _ := newTestService(t, now)

	// CaseStudy requires a linked project.
	input := validInput(now)
	input.Category = "CaseStudy"
	input.ProjectID = ""
	input.ReviewDueOn = now.AddDate(0, 12, 0)

	_, err := service.CreateArtefact(context.Background(), consultant(), input)
	if !errors.Is(err, domainerrors.ErrMissingMandatoryMetadata) {
		t.Fatalf("expected ErrMissingMandatoryMetadata, got %v", err)
	}
	if !strings.Contains(err.Error(), "project") {
		t.Fatalf("error should name the missing field, got %q", err.Error())
	}
}

func TestCreateArtefactReviewWindowExceeded(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	service, _ := newTestService(t, now)

	// Cloud allows 12 months; 14 months out must be rejected.
	input := validInput(now)
	input.ReviewDueOn = now.AddDate(0, 14, 0)

	if _, err := service.CreateArtefact(context.Background(), consultant(), input); !errors.Is(err, domainerrors.ErrReviewWindowExceeded) {
		t.Fatalf("expected ErrReviewWindowExceeded, got %v", err)
	}
}

func TestCreateArtefactDueDateAtWindowBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	service, _ := newTestService(t, now)

	input := validInput(now)
	input.ReviewDueOn = now.AddDate(0, 12, 0)

	if _, err := service.CreateArtefact(context.Background(), consultant(), input); err != nil {
		t.Fatalf("due date exactly at the interval must pass, got %v", err)
	}
}

func TestListPendingArtefactsRequiresGovernanceRole(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	service, _ := newTestService(t, now)

	if _, err := service.ListPendingArtefacts(context.Background(), consultant()); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for consultant, got %v", err)
	}
}

func TestListPendingArtefactsIncludesSubmission(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	service, _ := newTestService(t, now)

	artefact, err := service.CreateArtefact(context.Background(), consultant(), validInput(now))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	champion := identity.Identity{UserID: "user_jonas", Role: identity.RoleKnowledgeChampion}
	pending, err := service.ListPendingArtefacts(context.Background(), champion)
	if err != nil {
		t.Fatalf("pending listing failed: %v", err)
	}
	seen := 0
	for _, view := range pending {
		if view.Artefact.ArtefactID == artefact.ArtefactID {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("submitted artefact should appear exactly once in pending, got %d", seen)
	}
}

func TestListArtefactsNewestFirst(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	rules := ruleapplication.Service{Repo: rulememory.NewStore()}

	for day := 1; day <= 3; day++ {
		service := Service{
			Artefacts: store,
			Rules:     rules,
			Directory: store,
			Clock:     fixedClock{now: now.AddDate(0, 0, day)},
			IDGen:     &sequenceIDs{next: day * 10},
		}
		input := validInput(now.AddDate(0, 0, day))
		input.Title = fmt.Sprintf("Playbook v%d", day)
		if _, err := service.CreateArtefact(context.Background(), consultant(), input); err != nil {
			t.Fatalf("create %d failed: %v", day, err)
		}
	}

	service := Service{Artefacts: store, Rules: rules, Directory: store, Clock: fixedClock{now: now}, IDGen: &sequenceIDs{}}
	views, err := service.ListArtefacts(context.Background(), ports.ArtefactFilter{})
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 artefacts, got %d", len(views))
	}
	for i := 1; i < len(views); i++ {
		if views[i-1].Artefact.CreatedAt.Before(views[i].Artefact.CreatedAt) {
			t.Fatalf("artefacts not ordered newest first")
		}
	}
}

func TestIsOverdueOnlyForTrustedPastDue(t *testing.T) {
	due := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	artefact := entities.Artefact{Status: entities.StatusTrusted, ReviewDueOn: due}

	if artefact.IsOverdue(due) {
		t.Fatal("due date itself is not overdue")
	}
	if !artefact.IsOverdue(due.Add(24 * time.Hour)) {
		t.Fatal("trusted artefact past due must be overdue")
	}

	artefact.Status = entities.StatusPendingReview
	if artefact.IsOverdue(due.Add(24 * time.Hour)) {
		t.Fatal("only trusted artefacts can be overdue")
	}
}
