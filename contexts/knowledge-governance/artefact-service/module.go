package artefactservice

import (
	"log/slog"

	httpadapter "knowledgenet/contexts/knowledge-governance/artefact-service/adapters/http"
	"knowledgenet/contexts/knowledge-governance/artefact-service/adapters/memory"
	"knowledgenet/contexts/knowledge-governance/artefact-service/application"
	"knowledgenet/contexts/knowledge-governance/artefact-service/application/commands"
	"knowledgenet/contexts/knowledge-governance/artefact-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Review  commands.ReviewArtefactUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Artefacts   ports.ArtefactRepository
	History     ports.HistoryRepository
	Rules       ports.RuleFinder
	Directory   ports.DirectoryRepository
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Artefacts: deps.Artefacts,
		Rules:     deps.Rules,
		Directory: deps.Directory,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	review := commands.ReviewArtefactUseCase{
		Artefacts: deps.Artefacts,
		History:   deps.History,
		Rules:     deps.Rules,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Review:  review,
			Logger:  deps.Logger,
		},
		Service: service,
		Review:  review,
	}
}

func NewInMemoryModule(rules ports.RuleFinder, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Artefacts:   store,
		History:     store,
		Rules:       rules,
		Directory:   store,
		Outbox:      store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
