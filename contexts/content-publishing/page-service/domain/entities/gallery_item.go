package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
)

const MaxCaptionLength = 255

// GalleryItem is a media file attached to a page.
type GalleryItem struct {
	ItemID     string
	PageID     string
	MediaFile  string
	Caption    string
	UploadedAt time.Time
}

func NewGalleryItem(itemID string, pageID string, mediaFile string, caption string, now time.Time) (GalleryItem, error) {
	item := GalleryItem{
		ItemID:     strings.TrimSpace(itemID),
		PageID:     strings.TrimSpace(pageID),
		MediaFile:  strings.TrimSpace(mediaFile),
		Caption:    strings.TrimSpace(caption),
		UploadedAt: now.UTC(),
	}
	if item.ItemID == "" || item.PageID == "" {
		return GalleryItem{}, domainerrors.ErrInvalidGalleryItem
	}
	if item.MediaFile == "" {
		return GalleryItem{}, domainerrors.ErrMediaRequired
	}
	if utf8.RuneCountInString(item.Caption) > MaxCaptionLength {
		return GalleryItem{}, domainerrors.ErrInvalidGalleryItem
	}
	return item, nil
}

// Display renders "<page title> - <caption>".
func (g GalleryItem) Display(pageTitle string) string {
	return pageTitle + " - " + g.Caption
}
