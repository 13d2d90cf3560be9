package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	analyticsservice "knowledgenet/contexts/knowledge-governance/analytics-service"
	artefactservice "knowledgenet/contexts/knowledge-governance/artefact-service"
	rulecatalog "knowledgenet/contexts/knowledge-governance/rule-catalog-service"
	workspaceservice "knowledgenet/contexts/knowledge-governance/workspace-service"
	"knowledgenet/internal/shared/identity"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "knowledgenet/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	rules      rulecatalog.Module
	artefacts  artefactservice.Module
	workspaces workspaceservice.Module
	analytics  analyticsservice.Module
}

func New(
	rules rulecatalog.Module,
	artefacts artefactservice.Module,
	workspaces workspaceservice.Module,
	analytics analyticsservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		rules:      rules,
		artefacts:  artefacts,
		workspaces: workspaces,
		analytics:  analytics,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/artefacts", s.handleCreateArtefact)
	s.mux.HandleFunc("GET /api/artefacts", s.handleListArtefacts)
	s.mux.HandleFunc("GET /api/projects", s.handleListProjects)
	s.mux.HandleFunc("GET /api/tags", s.handleListTags)

	s.mux.HandleFunc("GET /api/governance/rules", s.handleListGovernanceRules)
	s.mux.HandleFunc("GET /api/governance/pending-artefacts", s.handleListPendingArtefacts)
	s.mux.HandleFunc("POST /api/governance/artefacts/{artefact_id}/review", s.handleReviewArtefact)

	s.mux.HandleFunc("GET /api/workspaces", s.handleListWorkspaces)
	s.mux.HandleFunc("GET /api/workspaces/mine", s.handleListMyWorkspaces)
	s.mux.HandleFunc("POST /api/workspaces/{workspace_id}/join", s.handleJoinWorkspace)

	s.mux.HandleFunc("GET /api/analytics/leaderboard", s.handleLeaderboard)
	s.mux.HandleFunc("GET /api/analytics/dashboard", s.handleDashboardSummary)
}

// resolveIdentity trusts the gateway-injected identity headers; there
// is no session state in this process.
func resolveIdentity(r *http.Request) identity.Identity {
	return identity.Identity{
		UserID:   strings.TrimSpace(r.Header.Get("X-User-Id")),
		Role:     strings.TrimSpace(r.Header.Get("X-User-Role")),
		RegionID: strings.TrimSpace(r.Header.Get("X-Region-Id")),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
