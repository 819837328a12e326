package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "venuenouveau/contexts/content-publishing/page-service/application"
	"venuenouveau/contexts/content-publishing/page-service/domain/entities"
	domainerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	"venuenouveau/contexts/content-publishing/page-service/ports"
)

const moduleName = "content-publishing/page-service"

type GalleryView struct {
	Item    entities.GalleryItem
	URL     string
	Display string
}

// PageDetail is everything the public page template needs.
type PageDetail struct {
	Page       entities.Page
	Gallery    []GalleryView
	Navigation []entities.Page
}

type GetPageUseCase struct {
	Pages ports.PageRepository
}

func (u GetPageUseCase) Execute(ctx context.Context, pageID string) (entities.Page, error) {
	return u.Pages.GetPage(ctx, strings.TrimSpace(pageID))
}

type ListPagesQuery struct {
	// PublicOnly returns the navigation listing.
	PublicOnly bool
}

type ListPagesUseCase struct {
	Pages ports.PageRepository
}

func (u ListPagesUseCase) Execute(ctx context.Context, query ListPagesQuery) ([]entities.Page, error) {
	return u.Pages.ListPages(ctx, ports.PageFilter{PublicOnly: query.PublicOnly})
}

type ListGalleryUseCase struct {
	Pages   ports.PageRepository
	Gallery ports.GalleryRepository
	Media   ports.MediaStore
}

func (u ListGalleryUseCase) Execute(ctx context.Context, pageID string) ([]GalleryView, error) {
	page, err := u.Pages.GetPage(ctx, strings.TrimSpace(pageID))
	if err != nil {
		return nil, err
	}
	return galleryViews(ctx, u.Gallery, u.Media, page)
}

// PageDetailUseCase resolves a public page by slug. Pages hidden from the
// navigation are still served when addressed directly.
type PageDetailUseCase struct {
	Pages   ports.PageRepository
	Gallery ports.GalleryRepository
	Media   ports.MediaStore
	Logger  *slog.Logger
}

func (u PageDetailUseCase) Execute(ctx context.Context, slug string) (PageDetail, error) {
	logger := application.ResolveLogger(u.Logger)
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return PageDetail{}, domainerrors.ErrPageNotFound
	}
	page, err := u.Pages.GetPageBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrPageNotFound) {
			logger.Error("page lookup failed",
				"event", "cms_page_lookup_failed",
				"module", moduleName,
				"layer", "application",
				"slug", slug,
				"error", err.Error(),
			)
		}
		return PageDetail{}, err
	}
	gallery, err := galleryViews(ctx, u.Gallery, u.Media, page)
	if err != nil {
		return PageDetail{}, err
	}
	navigation, err := u.Pages.ListPages(ctx, ports.PageFilter{PublicOnly: true})
	if err != nil {
		return PageDetail{}, err
	}
	return PageDetail{Page: page, Gallery: gallery, Navigation: navigation}, nil
}

// Home serves the page whose slug is "home".
func (u PageDetailUseCase) Home(ctx context.Context) (PageDetail, error) {
	return u.Execute(ctx, entities.HomeSlug)
}

func galleryViews(
	ctx context.Context,
	gallery ports.GalleryRepository,
	media ports.MediaStore,
	page entities.Page,
) ([]GalleryView, error) {
	items, err := gallery.ListGalleryItems(ctx, page.PageID)
	if err != nil {
		return nil, err
	}
	views := make([]GalleryView, 0, len(items))
	for _, item := range items {
		url := item.MediaFile
		if media != nil {
			url = media.URL(item.MediaFile)
		}
		views = append(views, GalleryView{
			Item:    item,
			URL:     url,
			Display: item.Display(page.Title),
		})
	}
	return views, nil
}
