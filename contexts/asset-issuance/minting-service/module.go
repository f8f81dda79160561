package mintingservice

import (
	"log/slog"

	httpadapter "launchpad/contexts/asset-issuance/minting-service/adapters/http"
	"launchpad/contexts/asset-issuance/minting-service/adapters/memory"
	"launchpad/contexts/asset-issuance/minting-service/application"
	"launchpad/contexts/asset-issuance/minting-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service

	Store  *memory.Store
	Minter *memory.FakeMinter
}

type Dependencies struct {
	Repository  ports.Repository
	Minter      ports.MintingClient
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Minter: deps.Minter,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
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
	minter := &memory.FakeMinter{}
	module := NewModule(Dependencies{
		Repository:  store,
		Minter:      minter,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	module.Minter = minter
	return module
}
