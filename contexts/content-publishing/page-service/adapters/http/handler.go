package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"venuenouveau/contexts/content-publishing/page-service/application/commands"
	"venuenouveau/contexts/content-publishing/page-service/application/queries"
	"venuenouveau/contexts/content-publishing/page-service/domain/entities"
	"venuenouveau/contexts/content-publishing/page-service/ports"
	httptransport "venuenouveau/contexts/content-publishing/page-service/transport/http"
)

// PublicPrefix is where public pages are mounted.
const PublicPrefix = "/cms/"

type Handler struct {
	CreatePage        commands.CreatePageUseCase
	UpdatePage        commands.UpdatePageUseCase
	DeletePage        commands.DeletePageUseCase
	AddGalleryItem    commands.AddGalleryItemUseCase
	RemoveGalleryItem commands.RemoveGalleryItemUseCase
	GetPage           queries.GetPageUseCase
	ListPages         queries.ListPagesUseCase
	ListGallery       queries.ListGalleryUseCase
	PageDetail        queries.PageDetailUseCase
	Logger            *slog.Logger
}

// CreatePageHandler godoc
// @Summary Create a page
// @Description A blank slug is generated from the title.
// @Tags page-service
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Staff user id"
// @Param request body httptransport.CreatePageRequest true "Page"
// @Success 201 {object} httptransport.PageDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /admin/v1/pages [post]
func (h Handler) CreatePageHandler(ctx context.Context, req httptransport.CreatePageRequest) (httptransport.PageDTO, error) {
	page, err := h.CreatePage.Execute(ctx, commands.CreatePageCommand{
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return httptransport.PageDTO{}, err
	}
	return mapPage(page), nil
}

func (h Handler) UpdatePageHandler(ctx context.Context, pageID string, req httptransport.UpdatePageRequest) (httptransport.PageDTO, error) {
	page, err := h.UpdatePage.Execute(ctx, commands.UpdatePageCommand{
		PageID:   pageID,
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return httptransport.PageDTO{}, err
	}
	return mapPage(page), nil
}

func (h Handler) DeletePageHandler(ctx context.Context, pageID string) error {
	return h.DeletePage.Execute(ctx, pageID)
}

func (h Handler) GetPageHandler(ctx context.Context, pageID string) (httptransport.PageDTO, error) {
	page, err := h.GetPage.Execute(ctx, pageID)
	if err != nil {
		return httptransport.PageDTO{}, err
	}
	return mapPage(page), nil
}

func (h Handler) ListPagesHandler(ctx context.Context) (httptransport.ListPagesResponse, error) {
	pages, err := h.ListPages.Execute(ctx, queries.ListPagesQuery{})
	if err != nil {
		return httptransport.ListPagesResponse{}, err
	}
	items := make([]httptransport.PageDTO, 0, len(pages))
	for _, page := range pages {
		items = append(items, mapPage(page))
	}
	return httptransport.ListPagesResponse{Items: items}, nil
}

// NavigationHandler godoc
// @Summary Public navigation links
// @Tags page-service
// @Produce json
// @Success 200 {object} httptransport.NavigationResponse
// @Router /v1/pages/navigation [get]
func (h Handler) NavigationHandler(ctx context.Context) (httptransport.NavigationResponse, error) {
	pages, err := h.ListPages.Execute(ctx, queries.ListPagesQuery{PublicOnly: true})
	if err != nil {
		return httptransport.NavigationResponse{}, err
	}
	return httptransport.NavigationResponse{Items: mapNavigation(pages)}, nil
}

// PageBySlugHandler godoc
// @Summary Page detail by slug
// @Tags page-service
// @Produce json
// @Param slug path string true "Page slug"
// @Success 200 {object} httptransport.PageDetailResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/pages/slug/{slug} [get]
func (h Handler) PageBySlugHandler(ctx context.Context, slug string) (httptransport.PageDetailResponse, error) {
	detail, err := h.PageDetail.Execute(ctx, slug)
	if err != nil {
		return httptransport.PageDetailResponse{}, err
	}
	return mapDetail(detail), nil
}

func (h Handler) HomeHandler(ctx context.Context) (httptransport.PageDetailResponse, error) {
	detail, err := h.PageDetail.Home(ctx)
	if err != nil {
		return httptransport.PageDetailResponse{}, err
	}
	return mapDetail(detail), nil
}

func (h Handler) AddGalleryItemHandler(
	ctx context.Context,
	pageID string,
	caption string,
	media *ports.MediaUpload,
) (httptransport.GalleryItemDTO, error) {
	item, err := h.AddGalleryItem.Execute(ctx, commands.AddGalleryItemCommand{
		PageID:  pageID,
		Caption: caption,
		Media:   media,
	})
	if err != nil {
		return httptransport.GalleryItemDTO{}, err
	}
	page, err := h.GetPage.Execute(ctx, item.PageID)
	if err != nil {
		return httptransport.GalleryItemDTO{}, err
	}
	url := item.MediaFile
	if h.AddGalleryItem.Media != nil {
		url = h.AddGalleryItem.Media.URL(item.MediaFile)
	}
	return mapGalleryItem(queries.GalleryView{Item: item, URL: url, Display: item.Display(page.Title)}), nil
}

func (h Handler) RemoveGalleryItemHandler(ctx context.Context, itemID string) error {
	return h.RemoveGalleryItem.Execute(ctx, itemID)
}

func (h Handler) ListGalleryHandler(ctx context.Context, pageID string) (httptransport.ListGalleryResponse, error) {
	views, err := h.ListGallery.Execute(ctx, pageID)
	if err != nil {
		return httptransport.ListGalleryResponse{}, err
	}
	items := make([]httptransport.GalleryItemDTO, 0, len(views))
	for _, view := range views {
		items = append(items, mapGalleryItem(view))
	}
	return httptransport.ListGalleryResponse{Items: items}, nil
}

// PageURL is the public address of a page; the home page lives at the root.
func PageURL(slug string) string {
	if slug == entities.HomeSlug {
		return PublicPrefix
	}
	return PublicPrefix + "page/" + slug + "/"
}

func mapPage(page entities.Page) httptransport.PageDTO {
	return httptransport.PageDTO{
		PageID:      page.PageID,
		Title:       page.Title,
		Slug:        page.Slug,
		Content:     page.Content,
		IsPublic:    page.IsPublic,
		LastUpdated: page.LastUpdated.UTC().Format(time.RFC3339),
		URL:         PageURL(page.Slug),
	}
}

func mapNavigation(pages []entities.Page) []httptransport.NavigationLinkDTO {
	links := make([]httptransport.NavigationLinkDTO, 0, len(pages))
	for _, page := range pages {
		links = append(links, httptransport.NavigationLinkDTO{
			Title: page.Title,
			Slug:  page.Slug,
			URL:   PageURL(page.Slug),
		})
	}
	return links
}

func mapGalleryItem(view queries.GalleryView) httptransport.GalleryItemDTO {
	return httptransport.GalleryItemDTO{
		ItemID:     view.Item.ItemID,
		PageID:     view.Item.PageID,
		MediaURL:   view.URL,
		Caption:    view.Item.Caption,
		UploadedAt: view.Item.UploadedAt.UTC().Format(time.RFC3339),
		Display:    view.Display,
	}
}

func mapDetail(detail queries.PageDetail) httptransport.PageDetailResponse {
	gallery := make([]httptransport.GalleryItemDTO, 0, len(detail.Gallery))
	for _, view := range detail.Gallery {
		gallery = append(gallery, mapGalleryItem(view))
	}
	return httptransport.PageDetailResponse{
		Page:       mapPage(detail.Page),
		Gallery:    gallery,
		Navigation: mapNavigation(detail.Navigation),
	}
}
