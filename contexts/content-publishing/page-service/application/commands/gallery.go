package commands

import (
	"context"
	"log/slog"
	"strings"

	application "venuenouveau/contexts/content-publishing/page-service/application"
	"venuenouveau/contexts/content-publishing/page-service/domain/entities"
	domainerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	"venuenouveau/contexts/content-publishing/page-service/ports"
)

// GalleryMediaDir is where gallery uploads are stored.
const GalleryMediaDir = "gallery_media"

type AddGalleryItemCommand struct {
	PageID  string
	Caption string
	Media   *ports.MediaUpload
}

type AddGalleryItemUseCase struct {
	Pages       ports.PageRepository
	Gallery     ports.GalleryRepository
	Media       ports.MediaStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc AddGalleryItemUseCase) Execute(ctx context.Context, cmd AddGalleryItemCommand) (entities.GalleryItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Media == nil || cmd.Media.Body == nil {
		return entities.GalleryItem{}, domainerrors.ErrMediaRequired
	}
	page, err := uc.Pages.GetPage(ctx, strings.TrimSpace(cmd.PageID))
	if err != nil {
		return entities.GalleryItem{}, err
	}
	itemID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.GalleryItem{}, err
	}
	now := nowFrom(uc.Clock)
	// Validate the caption before writing the upload.
	if _, err := entities.NewGalleryItem(itemID, page.PageID, "pending", cmd.Caption, now); err != nil {
		return entities.GalleryItem{}, err
	}

	stored, err := uc.Media.Save(ctx, GalleryMediaDir, *cmd.Media)
	if err != nil {
		logger.Error("gallery media store failed",
			"event", "cms_gallery_media_store_failed",
			"module", moduleName,
			"layer", "application",
			"page_id", page.PageID,
			"error", err.Error(),
		)
		return entities.GalleryItem{}, err
	}
	item, err := entities.NewGalleryItem(itemID, page.PageID, stored, cmd.Caption, now)
	if err != nil {
		return entities.GalleryItem{}, err
	}
	if err := uc.Gallery.AddGalleryItem(ctx, item); err != nil {
		return entities.GalleryItem{}, err
	}

	logger.Info("gallery item added",
		"event", "cms_gallery_item_added",
		"module", moduleName,
		"layer", "application",
		"page_id", page.PageID,
		"item_id", item.ItemID,
	)
	return item, nil
}

type RemoveGalleryItemUseCase struct {
	Gallery ports.GalleryRepository
	Logger  *slog.Logger
}

func (uc RemoveGalleryItemUseCase) Execute(ctx context.Context, itemID string) error {
	logger := application.ResolveLogger(uc.Logger)
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return domainerrors.ErrGalleryItemNotFound
	}
	if err := uc.Gallery.DeleteGalleryItem(ctx, itemID); err != nil {
		return err
	}
	logger.Info("gallery item removed",
		"event", "cms_gallery_item_removed",
		"module", moduleName,
		"layer", "application",
		"item_id", itemID,
	)
	return nil
}
