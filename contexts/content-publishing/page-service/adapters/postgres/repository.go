package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"venuenouveau/contexts/content-publishing/page-service/domain/entities"
	domainerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	"venuenouveau/contexts/content-publishing/page-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const constraintSlugUnique = "cms_pages_slug_key"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Models lists the tables owned by the page service.
func Models() []any {
	return []any{&pageModel{}, &galleryItemModel{}}
}

type pageModel struct {
	PageID      string    `gorm:"column:page_id;primaryKey"`
	Title       string    `gorm:"column:title;size:255;not null;index"`
	Slug        string    `gorm:"column:slug;size:50;not null;uniqueIndex:cms_pages_slug_key"`
	Content     string    `gorm:"column:content;type:text;not null"`
	IsPublic    bool      `gorm:"column:is_public;not null;default:true"`
	LastUpdated time.Time `gorm:"column:last_updated;autoUpdateTime:false"`
}

func (pageModel) TableName() string {
	return "cms_pages"
}

func (m pageModel) toEntity() entities.Page {
	return entities.Page{
		PageID:      m.PageID,
		Title:       m.Title,
		Slug:        m.Slug,
		Content:     m.Content,
		IsPublic:    m.IsPublic,
		LastUpdated: m.LastUpdated.UTC(),
	}
}

func pageModelFromEntity(page entities.Page) pageModel {
	return pageModel{
		PageID:      page.PageID,
		Title:       page.Title,
		Slug:        page.Slug,
		Content:     page.Content,
		IsPublic:    page.IsPublic,
		LastUpdated: page.LastUpdated.UTC(),
	}
}

type galleryItemModel struct {
	ItemID     string    `gorm:"column:item_id;primaryKey"`
	PageID     string    `gorm:"column:page_id;not null;index"`
	MediaFile  string    `gorm:"column:media_file;not null"`
	Caption    string    `gorm:"column:caption;size:255;not null;default:''"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime:false"`
}

func (galleryItemModel) TableName() string {
	return "cms_gallery_items"
}

func (m galleryItemModel) toEntity() entities.GalleryItem {
	return entities.GalleryItem{
		ItemID:     m.ItemID,
		PageID:     m.PageID,
		MediaFile:  m.MediaFile,
		Caption:    m.Caption,
		UploadedAt: m.UploadedAt.UTC(),
	}
}

func (r *Repository) CreatePage(ctx context.Context, page entities.Page) error {
	row := pageModelFromEntity(page)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *Repository) UpdatePage(ctx context.Context, page entities.Page) error {
	row := pageModelFromEntity(page)
	result := r.db.WithContext(ctx).
		Model(&pageModel{}).
		Where("page_id = ?", page.PageID).
		Select("title", "slug", "content", "is_public", "last_updated").
		Updates(&row)
	if result.Error != nil {
		return mapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPageNotFound
	}
	return nil
}

func (r *Repository) DeletePage(ctx context.Context, pageID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", pageID).Delete(&galleryItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("page_id = ?", pageID).Delete(&pageModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPageNotFound
		}
		return nil
	})
}

func (r *Repository) GetPage(ctx context.Context, pageID string) (entities.Page, error) {
	return r.firstPage(ctx, "page_id = ?", pageID)
}

func (r *Repository) GetPageBySlug(ctx context.Context, slug string) (entities.Page, error) {
	return r.firstPage(ctx, "slug = ?", slug)
}

func (r *Repository) ListPages(ctx context.Context, filter ports.PageFilter) ([]entities.Page, error) {
	query := r.db.WithContext(ctx).Model(&pageModel{})
	if filter.PublicOnly {
		query = query.Where("is_public = ?", true)
	}
	var rows []pageModel
	if err := query.Order("title ASC").Order("page_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Page, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AddGalleryItem(ctx context.Context, item entities.GalleryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&pageModel{}).Where("page_id = ?", item.PageID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrPageNotFound
		}
		row := galleryItemModel{
			ItemID:     item.ItemID,
			PageID:     item.PageID,
			MediaFile:  item.MediaFile,
			Caption:    item.Caption,
			UploadedAt: item.UploadedAt.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return mapWriteError(err)
		}
		return nil
	})
}

func (r *Repository) GetGalleryItem(ctx context.Context, itemID string) (entities.GalleryItem, error) {
	var row galleryItemModel
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.GalleryItem{}, domainerrors.ErrGalleryItemNotFound
		}
		return entities.GalleryItem{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteGalleryItem(ctx context.Context, itemID string) error {
	result := r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&galleryItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrGalleryItemNotFound
	}
	return nil
}

func (r *Repository) ListGalleryItems(ctx context.Context, pageID string) ([]entities.GalleryItem, error) {
	var rows []galleryItemModel
	if err := r.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("uploaded_at ASC").
		Order("item_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.GalleryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) firstPage(ctx context.Context, where string, arg string) (entities.Page, error) {
	var row pageModel
	err := r.db.WithContext(ctx).Where(where, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Page{}, domainerrors.ErrPageNotFound
		}
		return entities.Page{}, err
	}
	return row.toEntity(), nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	if pgErr.ConstraintName == constraintSlugUnique {
		return domainerrors.ErrSlugTaken
	}
	return domainerrors.ErrRepositoryInvariantBroke
}

// SystemClock stamps LastUpdated and UploadedAt in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
