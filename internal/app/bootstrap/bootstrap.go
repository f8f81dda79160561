package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	mintingservice "launchpad/contexts/asset-issuance/minting-service"
	chatrelayservice "launchpad/contexts/community-experience/chat-relay-service"
	chatmemory "launchpad/contexts/community-experience/chat-relay-service/adapters/memory"
	openaiadapter "launchpad/contexts/community-experience/chat-relay-service/adapters/openai"
	progressionservice "launchpad/contexts/community-growth/progression-service"
	progressionmemory "launchpad/contexts/community-growth/progression-service/adapters/memory"
	"launchpad/contexts/community-growth/progression-service/adapters/notify"
	progressionpostgres "launchpad/contexts/community-growth/progression-service/adapters/postgres"
	progressionworkers "launchpad/contexts/community-growth/progression-service/application/workers"
	"launchpad/contexts/community-growth/progression-service/domain/gates"
	progressionports "launchpad/contexts/community-growth/progression-service/ports"
	projectservice "launchpad/contexts/identity-access/project-service"
	"launchpad/internal/platform/config"
	"launchpad/internal/platform/db"
	"launchpad/internal/platform/httpserver"
	"launchpad/internal/platform/messaging"

	"github.com/robfig/cron/v3"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres   *db.Postgres
	bus        *messaging.Bus
	consumer   progressionworkers.ActivityConsumer
	reconciler progressionworkers.Reconciler
	cronSpec   string
	logger     *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	pg, modules, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(
		modules.projects,
		modules.progression,
		modules.chat,
		modules.minting,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	pg, modules, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	return &WorkerApp{
		postgres: pg,
		bus:      bus,
		consumer: progressionworkers.ActivityConsumer{
			Subscriber:  bus,
			Coordinator: modules.progression.Service,
			Logger:      logger,
		},
		reconciler: progressionworkers.Reconciler{
			Coordinator: modules.progression.Service,
			Repo:        modules.metricsRepo,
			Directory:   modules.directory,
			Logger:      logger,
		},
		cronSpec: cfg.ReconcileCron,
		logger:   logger,
	}, nil
}

type builtModules struct {
	projects    projectservice.Module
	progression progressionservice.Module
	chat        chatrelayservice.Module
	minting     mintingservice.Module
	metricsRepo progressionports.MetricsRepository
	directory   progressionports.CommunityDirectory
}

// buildModules wires the four bounded contexts against either postgres or the
// in-memory adapters, depending on whether POSTGRES_DSN is set.
func buildModules(cfg config.Config, logger *slog.Logger) (*db.Postgres, builtModules, error) {
	var pg *db.Postgres
	var modules builtModules

	minting := mintingservice.NewInMemoryModule(logger)
	modules.minting = minting

	projects := projectservice.NewInMemoryModule(logger)
	modules.projects = projects

	// The community platform client is an in-process stand-in until the
	// external directory integration lands.
	directory := progressionmemory.NewDirectory()
	modules.directory = directory

	notifier := notify.Fanout{
		Chat:   notify.LogChatSender{Logger: logger},
		Email:  notify.LogEmailSender{Logger: logger},
		Logger: logger,
	}
	flags := assetFlagsBridge{minting: minting.Service}
	thresholds := resolveThresholds(cfg)

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		connected, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, builtModules{}, err
		}
		pg = connected

		repo := progressionpostgres.NewRepository(pg.DB, logger)
		if err := repo.Migrate(); err != nil {
			return nil, builtModules{}, err
		}
		modules.metricsRepo = repo
		modules.progression = progressionservice.NewModule(progressionservice.Dependencies{
			Repository: repo,
			Flags:      flags,
			Directory:  directory,
			Notifier:   notifier,
			Clock:      progressionpostgres.SystemClock{},
			Thresholds: thresholds,
			Logger:     logger,
		})
	} else {
		store := progressionmemory.NewStore()
		modules.metricsRepo = store
		modules.progression = progressionservice.NewModule(progressionservice.Dependencies{
			Repository: store,
			Flags:      flags,
			Directory:  directory,
			Notifier:   notifier,
			Clock:      store,
			Thresholds: thresholds,
			Logger:     logger,
		})
	}

	facts := projectFactsBridge{
		projects:    projects.Service,
		progression: modules.progression.Service,
	}
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		sessions := chatmemory.NewStore()
		modules.chat = chatrelayservice.NewModule(chatrelayservice.Dependencies{
			Completer: openaiadapter.NewCompleter(cfg.OpenAIAPIKey, cfg.ChatModel),
			Sessions:  sessions,
			Facts:     facts,
			Clock:     sessions,
			Logger:    logger,
		})
	} else {
		logger.Warn("chat completer running scripted, OPENAI_API_KEY not set",
			"event", "bootstrap_chat_scripted",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		modules.chat = chatrelayservice.NewInMemoryModule(facts, logger)
	}

	return pg, modules, nil
}

func resolveThresholds(cfg config.Config) gates.Thresholds {
	thresholds := gates.DefaultThresholds()
	if cfg.Level3MinMembers > 0 {
		thresholds.Level3MinMembers = cfg.Level3MinMembers
	}
	if cfg.Level4MinMembers > 0 {
		thresholds.Level4MinMembers = cfg.Level4MinMembers
	}
	if cfg.Level4MinPapers > 0 {
		thresholds.Level4MinPapers = cfg.Level4MinPapers
	}
	if cfg.Level4MinMessages > 0 {
		thresholds.Level4MinMessages = cfg.Level4MinMessages
	}
	return thresholds
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
	if err := w.consumer.Start(ctx); err != nil {
		return err
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(w.cronSpec, func() {
		if err := w.reconciler.RunOnce(context.Background()); err != nil {
			w.logger.Error("reconcile run failed",
				"event", "bootstrap_reconcile_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}); err != nil {
		return err
	}
	scheduler.Start()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"reconcile_cron", w.cronSpec,
	)

	<-ctx.Done()
	<-scheduler.Stop().Done()
	return nil
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
