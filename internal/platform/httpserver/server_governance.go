package httpserver

import (
	"encoding/json"
	"net/http"

	artefacthttp "knowledgenet/contexts/knowledge-governance/artefact-service/transport/http"
	rulehttp "knowledgenet/contexts/knowledge-governance/rule-catalog-service/transport/http"
	"knowledgenet/internal/shared/identity"
)

func (s *Server) handleListGovernanceRules(w http.ResponseWriter, r *http.Request) {
	caller := resolveIdentity(r)
	if caller.IsAnonymous() {
		writeRuleError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	if !identity.CanGovern(caller.Role) {
		writeRuleError(w, http.StatusForbidden, "forbidden", "governance role required")
		return
	}

	resp, err := s.rules.Handler.ListRulesHandler(r.Context())
	if err != nil {
		writeRuleError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPendingArtefacts(w http.ResponseWriter, r *http.Request) {
	caller := resolveIdentity(r)
	if caller.IsAnonymous() {
		writeArtefactError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.artefacts.Handler.ListPendingArtefactsHandler(r.Context(), caller)
	if err != nil {
		writeArtefactDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReviewArtefact(w http.ResponseWriter, r *http.Request) {
	caller := resolveIdentity(r)
	if caller.IsAnonymous() {
		writeArtefactError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req artefacthttp.ReviewArtefactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeArtefactError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	artefactID := r.PathValue("artefact_id")
	resp, err := s.artefacts.Handler.ReviewArtefactHandler(r.Context(), caller, artefactID, req)
	if err != nil {
		writeArtefactDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRuleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, rulehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
