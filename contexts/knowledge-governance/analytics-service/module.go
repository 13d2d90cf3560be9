package analyticsservice

import (
	"log/slog"

	httpadapter "knowledgenet/contexts/knowledge-governance/analytics-service/adapters/http"
	"knowledgenet/contexts/knowledge-governance/analytics-service/adapters/memory"
	"knowledgenet/contexts/knowledge-governance/analytics-service/application"
	"knowledgenet/contexts/knowledge-governance/analytics-service/application/workers"
	"knowledgenet/contexts/knowledge-governance/analytics-service/domain/services"
	"knowledgenet/contexts/knowledge-governance/analytics-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Service  application.Service
	Consumer workers.ReviewRecordedConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Artefacts  ports.ArtefactSource
	Workspaces ports.WorkspaceSource
	Rules      ports.RuleSource
	Users      ports.UserDirectory
	Activity   ports.ActivityProjection
	Weights    services.Weights
	Limit      int
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Artefacts:  deps.Artefacts,
		Workspaces: deps.Workspaces,
		Rules:      deps.Rules,
		Users:      deps.Users,
		Activity:   deps.Activity,
		Weights:    deps.Weights,
		Limit:      deps.Limit,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
		Consumer: workers.ReviewRecordedConsumer{
			Activity: deps.Activity,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule wires the projection store in memory; the read
// sources still come from the other modules.
func NewInMemoryModule(
	artefacts ports.ArtefactSource,
	workspaces ports.WorkspaceSource,
	rules ports.RuleSource,
	users ports.UserDirectory,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Artefacts:  artefacts,
		Workspaces: workspaces,
		Rules:      rules,
		Users:      users,
		Activity:   store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
