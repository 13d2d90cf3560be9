package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	analyticsservice "knowledgenet/contexts/knowledge-governance/analytics-service"
	"knowledgenet/contexts/knowledge-governance/analytics-service/adapters/sources"
	artefactservice "knowledgenet/contexts/knowledge-governance/artefact-service"
	rulecatalogservice "knowledgenet/contexts/knowledge-governance/rule-catalog-service"
	workspaceservice "knowledgenet/contexts/knowledge-governance/workspace-service"
)

func newTestServer() *Server {
	rules := rulecatalogservice.NewInMemoryModule(nil)
	artefacts := artefactservice.NewInMemoryModule(rules.Service, nil)
	workspaces := workspaceservice.NewInMemoryModule(nil)
	analytics := analyticsservice.NewInMemoryModule(
		sources.ArtefactSource{Service: artefacts.Service},
		sources.WorkspaceSource{Service: workspaces.Service, Memberships: workspaces.Store},
		sources.RuleSource{Service: rules.Service},
		sources.UserDirectory{Directory: artefacts.Store},
		nil,
	)
	return New(rules, artefacts, workspaces, analytics, nil, "")
}

func validArtefactBody() []byte {
	dueOn := time.Now().UTC().AddDate(0, 6, 0).Format("2006-01-02")
	return []byte(fmt.Sprintf(`{
		"title": "Cloud Migration Playbook",
		"description": "Steps and pitfalls from the Atlas migration.",
		"projectId": "proj_atlas",
		"category": "Cloud",
		"confidentiality": "Internal",
		"tagIds": ["tag_cloud"],
		"reviewDueOn": %q
	}`, dueOn))
}

func submitArtefact(t *testing.T, server *Server) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/artefacts", bytes.NewReader(validArtefactBody()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user_amara")
	req.Header.Set("X-User-Role", "Consultant")
	req.Header.Set("X-Region-Id", "region_emea")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response decode failed: %v", err)
	}
	if resp.ID == "" {
		t.Fatalf("create response has no id: %s", rr.Body.String())
	}
	return resp.ID
}
