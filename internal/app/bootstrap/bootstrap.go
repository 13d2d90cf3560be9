package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	analyticsservice "knowledgenet/contexts/knowledge-governance/analytics-service"
	analyticspostgres "knowledgenet/contexts/knowledge-governance/analytics-service/adapters/postgres"
	"knowledgenet/contexts/knowledge-governance/analytics-service/adapters/sources"
	analyticsworkers "knowledgenet/contexts/knowledge-governance/analytics-service/application/workers"
	artefactservice "knowledgenet/contexts/knowledge-governance/artefact-service"
	artefactpostgres "knowledgenet/contexts/knowledge-governance/artefact-service/adapters/postgres"
	"knowledgenet/contexts/knowledge-governance/artefact-service/application/commands"
	artefactworkers "knowledgenet/contexts/knowledge-governance/artefact-service/application/workers"
	artefactports "knowledgenet/contexts/knowledge-governance/artefact-service/ports"
	rulecatalogservice "knowledgenet/contexts/knowledge-governance/rule-catalog-service"
	rulepostgres "knowledgenet/contexts/knowledge-governance/rule-catalog-service/adapters/postgres"
	workspaceservice "knowledgenet/contexts/knowledge-governance/workspace-service"
	workspacepostgres "knowledgenet/contexts/knowledge-governance/workspace-service/adapters/postgres"
	"knowledgenet/internal/platform/config"
	"knowledgenet/internal/platform/db"
	"knowledgenet/internal/platform/httpserver"
	"knowledgenet/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres         *db.Postgres
	bus              *messaging.Bus
	outboxRelay      artefactworkers.OutboxRelay
	reviewConsumer   analyticsworkers.ReviewRecordedConsumer
	enableProjection bool
	pollInterval     time.Duration
	logger           *slog.Logger
}

type modules struct {
	rules      rulecatalogservice.Module
	artefacts  artefactservice.Module
	workspaces workspaceservice.Module
	analytics  analyticsservice.Module
	outbox     artefactports.OutboxRepository
	postgres   *db.Postgres
}

// buildModules wires the four governance modules. With a Postgres DSN
// the repositories are database-backed and migrated; without one the
// seeded in-memory stores serve local runs.
func buildModules(cfg config.Config, logger *slog.Logger) (modules, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Warn("no POSTGRES_DSN configured, using in-memory stores",
			"event", "bootstrap_memory_mode",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		rules := rulecatalogservice.NewInMemoryModule(logger)
		artefacts := artefactservice.NewInMemoryModule(rules.Service, logger)
		workspaces := workspaceservice.NewInMemoryModule(logger)
		analytics := analyticsservice.NewInMemoryModule(
			sources.ArtefactSource{Service: artefacts.Service},
			sources.WorkspaceSource{Service: workspaces.Service, Memberships: workspaces.Store},
			sources.RuleSource{Service: rules.Service},
			sources.UserDirectory{Directory: artefacts.Store},
			logger,
		)
		return modules{
			rules:      rules,
			artefacts:  artefacts,
			workspaces: workspaces,
			analytics:  analytics,
			outbox:     artefacts.Store,
		}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return modules{}, err
	}

	var migrations []any
	migrations = append(migrations, rulepostgres.Model())
	migrations = append(migrations, artefactpostgres.Models()...)
	migrations = append(migrations, workspacepostgres.Models()...)
	migrations = append(migrations, analyticspostgres.Models()...)
	if err := pg.Migrate(migrations...); err != nil {
		_ = pg.Close()
		return modules{}, err
	}

	ruleRepo := rulepostgres.NewRepository(pg.DB, logger)
	artefactRepo := artefactpostgres.NewRepository(pg.DB, logger)
	workspaceRepo := workspacepostgres.NewRepository(pg.DB, logger)
	analyticsRepo := analyticspostgres.NewRepository(pg.DB, logger)

	rules := rulecatalogservice.NewModule(rulecatalogservice.Dependencies{
		Repository: ruleRepo,
		Logger:     logger,
	})
	artefacts := artefactservice.NewModule(artefactservice.Dependencies{
		Artefacts:   artefactRepo,
		History:     artefactRepo,
		Rules:       rules.Service,
		Directory:   artefactRepo,
		Outbox:      artefactRepo,
		Clock:       artefactpostgres.SystemClock{},
		IDGenerator: artefactpostgres.UUIDGenerator{},
		Logger:      logger,
	})
	workspaces := workspaceservice.NewModule(workspaceservice.Dependencies{
		Workspaces:  workspaceRepo,
		Memberships: workspaceRepo,
		Clock:       artefactpostgres.SystemClock{},
		Logger:      logger,
	})
	analytics := analyticsservice.NewModule(analyticsservice.Dependencies{
		Artefacts:  sources.ArtefactSource{Service: artefacts.Service},
		Workspaces: sources.WorkspaceSource{Service: workspaces.Service, Memberships: workspaceRepo},
		Rules:      sources.RuleSource{Service: rules.Service},
		Users:      sources.UserDirectory{Directory: artefactRepo},
		Activity:   analyticsRepo,
		Limit:      cfg.LeaderboardDefaultLimit,
		Logger:     logger,
	})

	return modules{
		rules:      rules,
		artefacts:  artefacts,
		workspaces: workspaces,
		analytics:  analytics,
		outbox:     artefactRepo,
		postgres:   pg,
	}, nil
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	mods, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(
		mods.rules,
		mods.artefacts,
		mods.workspaces,
		mods.analytics,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: mods.postgres,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	mods, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	bus, err := messaging.NewBus(cfg.KafkaBrokers, logger)
	if err != nil {
		if mods.postgres != nil {
			_ = mods.postgres.Close()
		}
		return nil, err
	}

	return &WorkerApp{
		postgres: mods.postgres,
		bus:      bus,
		outboxRelay: artefactworkers.OutboxRelay{
			Outbox:    mods.outbox,
			Publisher: bus,
			Clock:     artefactpostgres.SystemClock{},
			Topic:     commands.ReviewRecordedTopic,
			BatchSize: 100,
			Logger:    logger,
		},
		reviewConsumer:   mods.analytics.Consumer,
		enableProjection: cfg.EnableReviewProjection,
		pollInterval:     cfg.WorkerPollInterval,
		logger:           logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.enableProjection {
		if err := w.bus.Subscribe(
			ctx,
			commands.ReviewRecordedTopic,
			"analytics-review-projection-cg",
			w.reviewConsumer.Handle,
		); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
