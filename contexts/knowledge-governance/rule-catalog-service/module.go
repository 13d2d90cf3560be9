package rulecatalogservice

import (
	"log/slog"

	httpadapter "knowledgenet/contexts/knowledge-governance/rule-catalog-service/adapters/http"
	"knowledgenet/contexts/knowledge-governance/rule-catalog-service/adapters/memory"
	"knowledgenet/contexts/knowledge-governance/rule-catalog-service/application"
	"knowledgenet/contexts/knowledge-governance/rule-catalog-service/ports"
)

type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.RuleRepository
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Logger: deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
