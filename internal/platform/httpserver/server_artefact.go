package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	artefacterrors "knowledgenet/contexts/knowledge-governance/artefact-service/domain/errors"
	artefacthttp "knowledgenet/contexts/knowledge-governance/artefact-service/transport/http"
	ruleerrors "knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/errors"
)

func (s *Server) handleCreateArtefact(w http.ResponseWriter, r *http.Request) {
	caller := resolveIdentity(r)
	if caller.IsAnonymous() {
		writeArtefactError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req artefacthttp.CreateArtefactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeArtefactError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.artefacts.Handler.CreateArtefactHandler(r.Context(), caller, req)
	if err != nil {
		writeArtefactDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListArtefacts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := artefacthttp.ListArtefactsRequest{
		ProjectID: query.Get("projectId"),
		TagID:     query.Get("tagId"),
		Status:    query.Get("status"),
	}
	resp, err := s.artefacts.Handler.ListArtefactsHandler(r.Context(), req)
	if err != nil {
		writeArtefactDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	caller := resolveIdentity(r)
	mineOnly := strings.EqualFold(r.URL.Query().Get("mine"), "true")
	if mineOnly && caller.IsAnonymous() {
		writeArtefactError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.artefacts.Handler.ListProjectsHandler(r.Context(), caller, mineOnly)
	if err != nil {
		writeArtefactDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	resp, err := s.artefacts.Handler.ListTagsHandler(r.Context())
	if err != nil {
		writeArtefactDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeArtefactDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, artefacterrors.ErrArtefactNotFound):
		writeArtefactError(w, http.StatusNotFound, "artefact_not_found", err.Error())
	case errors.Is(err, artefacterrors.ErrForbidden):
		writeArtefactError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, artefacterrors.ErrInvalidTransition):
		writeArtefactError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, artefacterrors.ErrVersionConflict):
		writeArtefactError(w, http.StatusConflict, "concurrent_update", err.Error())
	case errors.Is(err, artefacterrors.ErrUnknownCategory),
		errors.Is(err, artefacterrors.ErrMissingMandatoryMetadata),
		errors.Is(err, artefacterrors.ErrReviewWindowExceeded),
		errors.Is(err, artefacterrors.ErrInvalidArtefactInput),
		errors.Is(err, ruleerrors.ErrInvalidRequest):
		writeArtefactError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeArtefactError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeArtefactError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, artefacthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
