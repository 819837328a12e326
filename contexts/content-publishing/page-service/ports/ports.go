package ports

import (
	"context"
	"io"
	"time"

	"venuenouveau/contexts/content-publishing/page-service/domain/entities"
)

type PageFilter struct {
	// PublicOnly keeps pages flagged for navigation.
	PublicOnly bool
}

// PageRepository persists pages. Slug uniqueness is enforced by the store and
// reported as ErrSlugTaken.
type PageRepository interface {
	CreatePage(ctx context.Context, page entities.Page) error
	UpdatePage(ctx context.Context, page entities.Page) error
	// DeletePage removes the page and its gallery items.
	DeletePage(ctx context.Context, pageID string) error
	GetPage(ctx context.Context, pageID string) (entities.Page, error)
	GetPageBySlug(ctx context.Context, slug string) (entities.Page, error)
	// ListPages returns pages ordered by title.
	ListPages(ctx context.Context, filter PageFilter) ([]entities.Page, error)
}

type GalleryRepository interface {
	AddGalleryItem(ctx context.Context, item entities.GalleryItem) error
	GetGalleryItem(ctx context.Context, itemID string) (entities.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, itemID string) error
	// ListGalleryItems returns a page's items, oldest upload first.
	ListGalleryItems(ctx context.Context, pageID string) ([]entities.GalleryItem, error)
}

type MediaUpload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// MediaStore persists uploaded media and resolves public URLs.
type MediaStore interface {
	Save(ctx context.Context, dir string, upload MediaUpload) (string, error)
	URL(path string) string
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
