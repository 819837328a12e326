package pricingpackageservice

import (
	"log/slog"

	httpadapter "venuenouveau/contexts/pricing-catalog/pricing-package-service/adapters/http"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/adapters/memory"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/commands"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/queries"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/workers"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

type Dependencies struct {
	Years       ports.YearRepository
	Packages    ports.PackageRepository
	Outbox      ports.OutboxRepository
	Files       ports.FileStore
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Metrics     ports.WorkflowMetrics
	TopicPrefix string
	BatchSize   int
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	getPackage := queries.GetPackageUseCase{
		Packages: deps.Packages,
		Years:    deps.Years,
		Files:    deps.Files,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			CreateYear: commands.CreateYearUseCase{
				Years:       deps.Years,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			DeleteYear: commands.DeleteYearUseCase{
				Years:  deps.Years,
				Logger: deps.Logger,
			},
			CreatePackage: commands.CreatePackageUseCase{
				Packages:    deps.Packages,
				Years:       deps.Years,
				Files:       deps.Files,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Metrics:     deps.Metrics,
				Logger:      deps.Logger,
			},
			UpdatePackage: commands.UpdatePackageUseCase{
				Packages:    deps.Packages,
				Years:       deps.Years,
				Files:       deps.Files,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Metrics:     deps.Metrics,
				Logger:      deps.Logger,
			},
			Approval: commands.ApprovalUseCase{
				Packages:    deps.Packages,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Metrics:     deps.Metrics,
				Logger:      deps.Logger,
			},
			DeletePackage: commands.DeletePackageUseCase{
				Packages: deps.Packages,
				Logger:   deps.Logger,
			},
			ListYears: queries.ListYearsUseCase{Years: deps.Years},
			ListPackages: queries.ListPackagesUseCase{
				Packages: deps.Packages,
				Years:    deps.Years,
				Files:    deps.Files,
				Logger:   deps.Logger,
			},
			GetPackage: getPackage,
			Files:      deps.Files,
			Logger:     deps.Logger,
		},
		Relay: workers.OutboxRelay{
			Outbox:      deps.Outbox,
			Publisher:   deps.Publisher,
			Clock:       deps.Clock,
			TopicPrefix: deps.TopicPrefix,
			BatchSize:   deps.BatchSize,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule wires every port to one in-memory store. The store also
// keeps uploaded documents, so Files may be overridden by the caller.
func NewInMemoryModule(seedYears []entities.Year, logger *slog.Logger) Module {
	store := memory.NewStore(seedYears, logger)
	module := NewModule(Dependencies{
		Years:       store,
		Packages:    store,
		Outbox:      store,
		Files:       store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
