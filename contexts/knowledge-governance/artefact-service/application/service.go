package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"knowledgenet/contexts/knowledge-governance/artefact-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/artefact-service/domain/errors"
	"knowledgenet/contexts/knowledge-governance/artefact-service/ports"
	ruleerrors "knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/errors"
	"knowledgenet/internal/shared/identity"
)

type Service struct {
	Artefacts ports.ArtefactRepository
	Rules     ports.RuleFinder
	Directory ports.DirectoryRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

type CreateArtefactInput struct {
	Title           string
	Description     string
	ProjectID       string
	WorkspaceID     string
	Category        string
	Confidentiality string
	TagIDs          []string
	ReviewDueOn     time.Time
}

// CreateArtefact builds a Draft artefact and immediately submits it for
// review. Validation runs against the governance rule for the artefact's
// category; success transitions the artefact to PendingReview without
// appending a review record (submission is not a decision).
func (s Service) CreateArtefact(ctx context.Context, caller identity.Identity, input CreateArtefactInput) (entities.Artefact, error) {
	logger := ResolveLogger(s.Logger)
	if caller.IsAnonymous() {
		return entities.Artefact{}, domainerrors.ErrInvalidArtefactInput
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Category) == "" {
		return entities.Artefact{}, domainerrors.ErrInvalidArtefactInput
	}

	now := s.Clock.Now().UTC()
	artefactID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Artefact{}, err
	}

	artefact := entities.Artefact{
		ArtefactID:      artefactID,
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		OwnerID:         caller.UserID,
		ProjectID:       strings.TrimSpace(input.ProjectID),
		WorkspaceID:     strings.TrimSpace(input.WorkspaceID),
		Category:        strings.TrimSpace(input.Category),
		Confidentiality: entities.Confidentiality(strings.TrimSpace(input.Confidentiality)),
		Status:          entities.StatusDraft,
		TagIDs:          append([]string(nil), input.TagIDs...),
		ReviewDueOn:     input.ReviewDueOn,
		SubmittedOn:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}

	if err := s.validateSubmission(ctx, &artefact, now); err != nil {
		return entities.Artefact{}, err
	}

	artefact.Status = entities.StatusPendingReview
	if err := s.Artefacts.CreateArtefact(ctx, artefact); err != nil {
		return entities.Artefact{}, err
	}

	logger.Info("artefact submitted for review",
		"event", "artefact_submitted",
		"module", "knowledge-governance/artefact-service",
		"layer", "application",
		"artefact_id", artefact.ArtefactID,
		"owner_id", artefact.OwnerID,
		"category", artefact.Category,
	)
	return artefact, nil
}

func (s Service) validateSubmission(ctx context.Context, artefact *entities.Artefact, submittedOn time.Time) error {
	rule, err := s.Rules.RuleFor(ctx, artefact.Category)
	if err != nil {
		if errors.Is(err, ruleerrors.ErrRuleNotFound) {
			return fmt.Errorf("%w: %s", domainerrors.ErrUnknownCategory, artefact.Category)
		}
		return err
	}

	if missing := artefact.MissingMetadataFields(rule.MandatoryMetadata); len(missing) > 0 {
		return fmt.Errorf("%w: %s", domainerrors.ErrMissingMandatoryMetadata, strings.Join(missing, ", "))
	}

	if artefact.ReviewDueOn.IsZero() ||
		!entities.WithinReviewWindow(artefact.ReviewDueOn, submittedOn, rule.MaxReviewIntervalMonths) {
		return fmt.Errorf("%w: category %s allows at most %d months",
			domainerrors.ErrReviewWindowExceeded, rule.Category, rule.MaxReviewIntervalMonths)
	}
	return nil
}

// ArtefactView is an artefact enriched with directory names for listings.
type ArtefactView struct {
	Artefact    entities.Artefact
	OwnerName   string
	ProjectName string
}

func (s Service) ListArtefacts(ctx context.Context, filter ports.ArtefactFilter) ([]ArtefactView, error) {
	if filter.Status != "" && !isKnownStatus(filter.Status) {
		return nil, domainerrors.ErrInvalidArtefactInput
	}
	items, err := s.Artefacts.ListArtefacts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, items), nil
}

func (s Service) ListPendingArtefacts(ctx context.Context, caller identity.Identity) ([]ArtefactView, error) {
	if !identity.CanGovern(caller.Role) {
		return nil, domainerrors.ErrForbidden
	}
	items, err := s.Artefacts.ListArtefacts(ctx, ports.ArtefactFilter{Status: entities.StatusPendingReview})
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, items), nil
}

func (s Service) ListProjects(ctx context.Context, caller identity.Identity, mineOnly bool) ([]ports.Project, error) {
	ownerID := ""
	if mineOnly {
		if caller.IsAnonymous() {
			return nil, domainerrors.ErrInvalidArtefactInput
		}
		ownerID = caller.UserID
	}
	return s.Directory.ListProjects(ctx, ownerID)
}

func (s Service) ListTags(ctx context.Context) ([]ports.Tag, error) {
	return s.Directory.ListTags(ctx)
}

func (s Service) enrich(ctx context.Context, items []entities.Artefact) []ArtefactView {
	views := make([]ArtefactView, 0, len(items))
	projectNames := s.projectNames(ctx)
	for _, item := range items {
		view := ArtefactView{Artefact: item}
		if user, ok, err := s.Directory.GetUser(ctx, item.OwnerID); err == nil && ok {
			view.OwnerName = user.Name
		}
		view.ProjectName = projectNames[item.ProjectID]
		views = append(views, view)
	}
	return views
}

func (s Service) projectNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	projects, err := s.Directory.ListProjects(ctx, "")
	if err != nil {
		return names
	}
	for _, project := range projects {
		names[project.ProjectID] = project.Name
	}
	return names
}

func isKnownStatus(status entities.ArtefactStatus) bool {
	switch status {
	case entities.StatusDraft, entities.StatusPendingReview, entities.StatusTrusted,
		entities.StatusRejected, entities.StatusRetired, entities.StatusOutdated:
		return true
	default:
		return false
	}
}
