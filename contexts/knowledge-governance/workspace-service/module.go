package workspaceservice

import (
	"log/slog"

	httpadapter "knowledgenet/contexts/knowledge-governance/workspace-service/adapters/http"
	"knowledgenet/contexts/knowledge-governance/workspace-service/adapters/memory"
	"knowledgenet/contexts/knowledge-governance/workspace-service/application"
	"knowledgenet/contexts/knowledge-governance/workspace-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Workspaces  ports.WorkspaceRepository
	Memberships ports.MembershipRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Workspaces:  deps.Workspaces,
		Memberships: deps.Memberships,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Workspaces:  store,
		Memberships: store,
		Clock:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
