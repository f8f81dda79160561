package progressionservice

import (
	"log/slog"

	httpadapter "launchpad/contexts/community-growth/progression-service/adapters/http"
	"launchpad/contexts/community-growth/progression-service/adapters/memory"
	"launchpad/contexts/community-growth/progression-service/application"
	"launchpad/contexts/community-growth/progression-service/domain/gates"
	"launchpad/contexts/community-growth/progression-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service

	// Set only by NewInMemoryModule, for tests and local runs.
	Store     *memory.Store
	Notifier  *memory.Notifier
	Directory *memory.Directory
	Flags     *memory.FlagsSource
}

type Dependencies struct {
	Repository ports.MetricsRepository
	Flags      ports.AssetFlagsSource
	Directory  ports.CommunityDirectory
	Notifier   ports.Notifier
	Clock      ports.Clock
	Thresholds gates.Thresholds
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	thresholds := deps.Thresholds
	if thresholds == (gates.Thresholds{}) {
		thresholds = gates.DefaultThresholds()
	}
	service := application.Service{
		Repo:       deps.Repository,
		Flags:      deps.Flags,
		Directory:  deps.Directory,
		Notifier:   deps.Notifier,
		Clock:      deps.Clock,
		Thresholds: thresholds,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	notifier := memory.NewNotifier()
	directory := memory.NewDirectory()
	flags := memory.NewFlagsSource()

	module := NewModule(Dependencies{
		Repository: store,
		Flags:      flags,
		Directory:  directory,
		Notifier:   notifier,
		Clock:      store,
		Thresholds: gates.DefaultThresholds(),
		Logger:     logger,
	})
	module.Store = store
	module.Notifier = notifier
	module.Directory = directory
	module.Flags = flags
	return module
}
