package pageservice

import (
	"log/slog"

	httpadapter "venuenouveau/contexts/content-publishing/page-service/adapters/http"
	"venuenouveau/contexts/content-publishing/page-service/adapters/memory"
	"venuenouveau/contexts/content-publishing/page-service/application/commands"
	"venuenouveau/contexts/content-publishing/page-service/application/queries"
	"venuenouveau/contexts/content-publishing/page-service/domain/entities"
	"venuenouveau/contexts/content-publishing/page-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Pages       ports.PageRepository
	Gallery     ports.GalleryRepository
	Media       ports.MediaStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreatePage: commands.CreatePageUseCase{
				Pages:       deps.Pages,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			UpdatePage: commands.UpdatePageUseCase{
				Pages:  deps.Pages,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			DeletePage: commands.DeletePageUseCase{
				Pages:  deps.Pages,
				Logger: deps.Logger,
			},
			AddGalleryItem: commands.AddGalleryItemUseCase{
				Pages:       deps.Pages,
				Gallery:     deps.Gallery,
				Media:       deps.Media,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			RemoveGalleryItem: commands.RemoveGalleryItemUseCase{
				Gallery: deps.Gallery,
				Logger:  deps.Logger,
			},
			GetPage:   queries.GetPageUseCase{Pages: deps.Pages},
			ListPages: queries.ListPagesUseCase{Pages: deps.Pages},
			ListGallery: queries.ListGalleryUseCase{
				Pages:   deps.Pages,
				Gallery: deps.Gallery,
				Media:   deps.Media,
			},
			PageDetail: queries.PageDetailUseCase{
				Pages:   deps.Pages,
				Gallery: deps.Gallery,
				Media:   deps.Media,
				Logger:  deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Page, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Pages:       store,
		Gallery:     store,
		Media:       store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
