package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"knowledgenet/contexts/knowledge-governance/artefact-service/application"
	"knowledgenet/contexts/knowledge-governance/artefact-service/application/commands"
	"knowledgenet/contexts/knowledge-governance/artefact-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/artefact-service/domain/errors"
	"knowledgenet/contexts/knowledge-governance/artefact-service/ports"
	httptransport "knowledgenet/contexts/knowledge-governance/artefact-service/transport/http"
	"knowledgenet/internal/shared/identity"
)

const dueDateLayout = "2006-01-02"

type Handler struct {
	Service application.Service
	Review  commands.ReviewArtefactUseCase
	Logger  *slog.Logger
}

func (h Handler) CreateArtefactHandler(
	ctx context.Context,
	caller identity.Identity,
	req httptransport.CreateArtefactRequest,
) (httptransport.CreateArtefactResponse, error) {
	input := application.CreateArtefactInput{
		Title:           req.Title,
		Description:     req.Description,
		ProjectID:       req.ProjectID,
		WorkspaceID:     req.WorkspaceID,
		Category:        req.Category,
		Confidentiality: req.Confidentiality,
		TagIDs:          req.TagIDs,
	}
	if raw := strings.TrimSpace(req.ReviewDueOn); raw != "" {
		dueOn, err := time.Parse(dueDateLayout, raw)
		if err != nil {
			return httptransport.CreateArtefactResponse{},
				fmt.Errorf("%w: reviewDueOn must be YYYY-MM-DD", domainerrors.ErrInvalidArtefactInput)
		}
		input.ReviewDueOn = dueOn
	}

	artefact, err := h.Service.CreateArtefact(ctx, caller, input)
	if err != nil {
		return httptransport.CreateArtefactResponse{}, err
	}
	return httptransport.CreateArtefactResponse{
		ID:      artefact.ArtefactID,
		Message: "Artefact submitted for review.",
	}, nil
}

func (h Handler) ListArtefactsHandler(
	ctx context.Context,
	req httptransport.ListArtefactsRequest,
) ([]httptransport.ArtefactView, error) {
	filter := ports.ArtefactFilter{
		ProjectID: strings.TrimSpace(req.ProjectID),
		TagID:     strings.TrimSpace(req.TagID),
	}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		filter.Status = entities.ArtefactStatus(raw)
	}
	views, err := h.Service.ListArtefacts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toArtefactViews(views), nil
}

func (h Handler) ListPendingArtefactsHandler(
	ctx context.Context,
	caller identity.Identity,
) ([]httptransport.ArtefactView, error) {
	views, err := h.Service.ListPendingArtefacts(ctx, caller)
	if err != nil {
		return nil, err
	}
	return toArtefactViews(views), nil
}

func (h Handler) ReviewArtefactHandler(
	ctx context.Context,
	caller identity.Identity,
	artefactID string,
	req httptransport.ReviewArtefactRequest,
) (httptransport.ReviewArtefactResponse, error) {
	decision, ok := entities.ParseDecision(req.Decision)
	if !ok {
		return httptransport.ReviewArtefactResponse{},
			fmt.Errorf("%w: decision must be approve, reject, retire or outdated", domainerrors.ErrInvalidArtefactInput)
	}
	artefact, err := h.Review.Execute(ctx, commands.ReviewArtefactCommand{
		ArtefactID: artefactID,
		Reviewer:   caller,
		Decision:   decision,
		Comment:    req.Comments,
	})
	if err != nil {
		return httptransport.ReviewArtefactResponse{}, err
	}
	return httptransport.ReviewArtefactResponse{
		Message: fmt.Sprintf("Decision '%s' recorded; artefact is now %s.", decision, artefact.Status),
	}, nil
}

func (h Handler) ListProjectsHandler(
	ctx context.Context,
	caller identity.Identity,
	mineOnly bool,
) ([]httptransport.ProjectView, error) {
	projects, err := h.Service.ListProjects(ctx, caller, mineOnly)
	if err != nil {
		return nil, err
	}
	views := make([]httptransport.ProjectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, httptransport.ProjectView{
			ID:         project.ProjectID,
			Name:       project.Name,
			ClientName: project.ClientName,
		})
	}
	return views, nil
}

func (h Handler) ListTagsHandler(ctx context.Context) ([]httptransport.TagView, error) {
	tags, err := h.Service.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]httptransport.TagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, httptransport.TagView{ID: tag.TagID, Name: tag.Name})
	}
	return views, nil
}

func toArtefactViews(items []application.ArtefactView) []httptransport.ArtefactView {
	views := make([]httptransport.ArtefactView, 0, len(items))
	for _, item := range items {
		artefact := item.Artefact
		views = append(views, httptransport.ArtefactView{
			ID:              artefact.ArtefactID,
			Title:           artefact.Title,
			Description:     artefact.Description,
			Owner:           artefact.OwnerID,
			OwnerName:       item.OwnerName,
			ProjectName:     item.ProjectName,
			Category:        artefact.Category,
			Confidentiality: string(artefact.Confidentiality),
			Status:          string(artefact.Status),
			Tags:            strings.Join(artefact.TagIDs, ", "),
			ReviewDueOn:     artefact.ReviewDueOn.UTC().Format(dueDateLayout),
			CreatedOn:       artefact.CreatedAt.UTC().Format(dueDateLayout),
		})
	}
	return views
}
