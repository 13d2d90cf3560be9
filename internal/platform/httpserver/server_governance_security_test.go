package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGovernanceRulesRequireUserHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/governance/rules", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGovernanceRulesForbiddenForConsultant(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/governance/rules", nil)
	req.Header.Set("X-User-Id", "user_amara")
	req.Header.Set("X-User-Role", "Consultant")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGovernanceRulesVisibleToCouncil(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/governance/rules", nil)
	req.Header.Set("X-User-Id", "user_mei")
	req.Header.Set("X-User-Role", "GovCouncil")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Cloud") {
		t.Fatalf("rule listing should include seeded categories: %s", rr.Body.String())
	}
}

func TestPendingArtefactsForbiddenForConsultant(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/governance/pending-artefacts", nil)
	req.Header.Set("X-User-Id", "user_amara")
	req.Header.Set("X-User-Role", "Consultant")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func reviewRequest(artefactID, userID, role, decision string) *http.Request {
	body := []byte(fmt.Sprintf(`{"decision": %q, "comments": "reviewed"}`, decision))
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/governance/artefacts/"+artefactID+"/review",
		bytes.NewReader(body),
	)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", userID)
	req.Header.Set("X-User-Role", role)
	return req
}

func TestReviewForbiddenForConsultant(t *testing.T) {
	server := newTestServer()
	artefactID := submitArtefact(t, server)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, reviewRequest(artefactID, "user_amara", "Consultant", "approve"))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReviewUnknownArtefactNotFound(t *testing.T) {
	server := newTestServer()

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, reviewRequest("artefact_missing", "user_mei", "GovCouncil", "approve"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReviewApproveThenDuplicateConflicts(t *testing.T) {
	server := newTestServer()
	artefactID := submitArtefact(t, server)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, reviewRequest(artefactID, "user_mei", "GovCouncil", "approve"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Trusted") {
		t.Fatalf("approval message should report the new status: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, reviewRequest(artefactID, "user_mei", "GovCouncil", "approve"))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate approval, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReviewRejectsUnknownDecision(t *testing.T) {
	server := newTestServer()
	artefactID := submitArtefact(t, server)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, reviewRequest(artefactID, "user_mei", "GovCouncil", "promote"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestPendingListingRoundTrip(t *testing.T) {
	server := newTestServer()
	artefactID := submitArtefact(t, server)

	pending := func() string {
		req := httptest.NewRequest(http.MethodGet, "/api/governance/pending-artefacts", nil)
		req.Header.Set("X-User-Id", "user_jonas")
		req.Header.Set("X-User-Role", "KnowledgeChampion")
		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
		}
		return rr.Body.String()
	}

	if !strings.Contains(pending(), artefactID) {
		t.Fatalf("pending listing should include the new artefact")
	}

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, reviewRequest(artefactID, "user_mei", "GovCouncil", "reject"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	if strings.Contains(pending(), artefactID) {
		t.Fatalf("rejected artefact should leave the pending listing")
	}
}
