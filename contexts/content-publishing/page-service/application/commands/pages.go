package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "venuenouveau/contexts/content-publishing/page-service/application"
	"venuenouveau/contexts/content-publishing/page-service/domain/entities"
	domainerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	"venuenouveau/contexts/content-publishing/page-service/ports"
)

const moduleName = "content-publishing/page-service"

type CreatePageCommand struct {
	Title   string
	Slug    string
	Content string
	// IsPublic defaults to true when nil.
	IsPublic *bool
}

type CreatePageUseCase struct {
	Pages       ports.PageRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreatePageUseCase) Execute(ctx context.Context, cmd CreatePageCommand) (entities.Page, error) {
	logger := application.ResolveLogger(uc.Logger)
	pageID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Page{}, err
	}
	isPublic := true
	if cmd.IsPublic != nil {
		isPublic = *cmd.IsPublic
	}
	page, err := entities.NewPage(pageID, cmd.Title, cmd.Slug, cmd.Content, isPublic, nowFrom(uc.Clock))
	if err != nil {
		return entities.Page{}, err
	}
	if err := uc.Pages.CreatePage(ctx, page); err != nil {
		logger.Warn("create page failed",
			"event", "cms_page_create_failed",
			"module", moduleName,
			"layer", "application",
			"slug", page.Slug,
			"error", err.Error(),
		)
		return entities.Page{}, err
	}

	logger.Info("page created",
		"event", "cms_page_created",
		"module", moduleName,
		"layer", "application",
		"page_id", page.PageID,
		"slug", page.Slug,
		"is_public", page.IsPublic,
	)
	return page, nil
}

// UpdatePageCommand applies partial edits; nil fields are kept. Setting Slug
// to an empty string regenerates it from the title.
type UpdatePageCommand struct {
	PageID   string
	Title    *string
	Slug     *string
	Content  *string
	IsPublic *bool
}

type UpdatePageUseCase struct {
	Pages  ports.PageRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc UpdatePageUseCase) Execute(ctx context.Context, cmd UpdatePageCommand) (entities.Page, error) {
	logger := application.ResolveLogger(uc.Logger)
	current, err := uc.Pages.GetPage(ctx, strings.TrimSpace(cmd.PageID))
	if err != nil {
		return entities.Page{}, err
	}

	next := current
	if cmd.Title != nil {
		next.Title = *cmd.Title
	}
	if cmd.Slug != nil {
		next.Slug = *cmd.Slug
	}
	if cmd.Content != nil {
		next.Content = *cmd.Content
	}
	if cmd.IsPublic != nil {
		next.IsPublic = *cmd.IsPublic
	}
	next, err = next.Normalize(nowFrom(uc.Clock))
	if err != nil {
		return entities.Page{}, err
	}
	if err := uc.Pages.UpdatePage(ctx, next); err != nil {
		logger.Warn("update page failed",
			"event", "cms_page_update_failed",
			"module", moduleName,
			"layer", "application",
			"page_id", next.PageID,
			"error", err.Error(),
		)
		return entities.Page{}, err
	}

	logger.Info("page updated",
		"event", "cms_page_updated",
		"module", moduleName,
		"layer", "application",
		"page_id", next.PageID,
		"slug", next.Slug,
		"slug_changed", next.Slug != current.Slug,
	)
	return next, nil
}

type DeletePageUseCase struct {
	Pages  ports.PageRepository
	Logger *slog.Logger
}

// Execute removes the page and its gallery.
func (uc DeletePageUseCase) Execute(ctx context.Context, pageID string) error {
	logger := application.ResolveLogger(uc.Logger)
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return domainerrors.ErrPageNotFound
	}
	if err := uc.Pages.DeletePage(ctx, pageID); err != nil {
		return err
	}
	logger.Info("page deleted",
		"event", "cms_page_deleted",
		"module", moduleName,
		"layer", "application",
		"page_id", pageID,
	)
	return nil
}

func nowFrom(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}
