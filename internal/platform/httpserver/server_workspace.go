package httpserver

import (
	"errors"
	"net/http"

	workspaceerrors "knowledgenet/contexts/knowledge-governance/workspace-service/domain/errors"
	workspacehttp "knowledgenet/contexts/knowledge-governance/workspace-service/transport/http"
)

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	resp, err := s.workspaces.Handler.ListWorkspacesHandler(r.Context())
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMyWorkspaces(w http.ResponseWriter, r *http.Request) {
	caller := resolveIdentity(r)
	if caller.IsAnonymous() {
		writeWorkspaceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.workspaces.Handler.ListMyWorkspacesHandler(r.Context(), caller)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleJoinWorkspace(w http.ResponseWriter, r *http.Request) {
	caller := resolveIdentity(r)
	if caller.IsAnonymous() {
		writeWorkspaceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	workspaceID := r.PathValue("workspace_id")
	resp, err := s.workspaces.Handler.JoinWorkspaceHandler(r.Context(), caller, workspaceID)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeWorkspaceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workspaceerrors.ErrWorkspaceNotFound):
		writeWorkspaceError(w, http.StatusNotFound, "workspace_not_found", err.Error())
	case errors.Is(err, workspaceerrors.ErrInvalidRequest):
		writeWorkspaceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeWorkspaceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeWorkspaceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, workspacehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
