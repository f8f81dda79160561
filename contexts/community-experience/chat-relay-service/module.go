package chatrelayservice

import (
	"log/slog"

	httpadapter "launchpad/contexts/community-experience/chat-relay-service/adapters/http"
	"launchpad/contexts/community-experience/chat-relay-service/adapters/memory"
	"launchpad/contexts/community-experience/chat-relay-service/application"
	"launchpad/contexts/community-experience/chat-relay-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service

	Store     *memory.Store
	Completer *memory.ScriptedCompleter
}

type Dependencies struct {
	Completer    ports.ChatCompleter
	Sessions     ports.SessionStore
	Facts        ports.ProjectFactsSource
	Clock        ports.Clock
	HistoryLimit int
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Completer:    deps.Completer,
		Sessions:     deps.Sessions,
		Facts:        deps.Facts,
		Clock:        deps.Clock,
		HistoryLimit: deps.HistoryLimit,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(facts ports.ProjectFactsSource, logger *slog.Logger) Module {
	store := memory.NewStore()
	completer := &memory.ScriptedCompleter{}
	module := NewModule(Dependencies{
		Completer: completer,
		Sessions:  store,
		Facts:     facts,
		Clock:     store,
		Logger:    logger,
	})
	module.Store = store
	module.Completer = completer
	return module
}
