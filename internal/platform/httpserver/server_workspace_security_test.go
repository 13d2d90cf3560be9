package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func joinWorkspace(t *testing.T, server *Server, workspaceID, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/workspaces/"+workspaceID+"/join", nil)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
		req.Header.Set("X-User-Role", "Consultant")
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestJoinWorkspaceRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	rr := joinWorkspace(t, server, "ws_atlas", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestJoinWorkspaceUnknownWorkspace(t *testing.T) {
	server := newTestServer()
	rr := joinWorkspace(t, server, "ws_missing", "user_mei")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestJoinWorkspaceReturnsMemberCount(t *testing.T) {
	server := newTestServer()

	decode := func(rr *httptest.ResponseRecorder) int {
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
		}
		var resp struct {
			MemberCount int `json:"memberCount"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response decode failed: %v", err)
		}
		return resp.MemberCount
	}

	// ws_atlas is seeded with one member; joining twice must not
	// double-count.
	first := decode(joinWorkspace(t, server, "ws_atlas", "user_mei"))
	if first != 2 {
		t.Fatalf("member count = %d, want 2", first)
	}
	second := decode(joinWorkspace(t, server, "ws_atlas", "user_mei"))
	if second != 2 {
		t.Fatalf("repeat join member count = %d, want 2", second)
	}
}

func TestMyWorkspacesRequireUserHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/workspaces/mine", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListWorkspacesIsPublic(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/workspaces", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}
