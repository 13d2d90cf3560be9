package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDashboardAlwaysAnswers(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var summary map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("summary decode failed: %v", err)
	}
	for _, key := range []string{
		"communityCount", "artefactCount", "expertCount", "governanceRuleCount",
		"pendingCount", "trustedPercentage", "crossRegionPercentage",
		"pendingRuleUpdates", "communitiesDelta", "recentArtefacts",
	} {
		if _, ok := summary[key]; !ok {
			t.Fatalf("summary missing %q: %s", key, rr.Body.String())
		}
	}
	if summary["crossRegionPercentage"] != "–" {
		t.Fatalf("crossRegionPercentage = %v, want placeholder", summary["crossRegionPercentage"])
	}
}

func TestDashboardCountsSubmittedArtefacts(t *testing.T) {
	server := newTestServer()
	submitArtefact(t, server)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	var summary struct {
		ArtefactCount   int   `json:"artefactCount"`
		PendingCount    int   `json:"pendingCount"`
		RecentArtefacts []any `json:"recentArtefacts"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("summary decode failed: %v", err)
	}
	if summary.ArtefactCount != 1 || summary.PendingCount != 1 {
		t.Fatalf("counts = %d/%d, want 1/1", summary.ArtefactCount, summary.PendingCount)
	}
	if len(summary.RecentArtefacts) != 1 {
		t.Fatalf("recent artefacts = %d, want 1", len(summary.RecentArtefacts))
	}
}

func TestLeaderboardListsDirectoryUsers(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/leaderboard", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var rows []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("rows decode failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 seeded users, got %d", len(rows))
	}
}

func TestLeaderboardRejectsBadLimit(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/leaderboard?limit=lots", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLeaderboardRegionFilter(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/leaderboard?regionId=region_apac", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("rows decode failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "user_mei" {
		t.Fatalf("expected only user_mei for region_apac, got %+v", rows)
	}
}
