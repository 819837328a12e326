package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	"venuenouveau/contexts/content-publishing/page-service/domain/services"
)

const (
	// HomeSlug identifies the page served at the site root.
	HomeSlug = "home"

	MaxTitleLength = 255
	MaxSlugLength  = 50
)

type Page struct {
	PageID      string
	Title       string
	Slug        string
	Content     string
	IsPublic    bool
	LastUpdated time.Time
}

// NewPage builds a page; a blank slug is derived from the title.
func NewPage(pageID string, title string, slug string, content string, isPublic bool, now time.Time) (Page, error) {
	page := Page{
		PageID:   strings.TrimSpace(pageID),
		Title:    strings.TrimSpace(title),
		Slug:     strings.TrimSpace(slug),
		Content:  content,
		IsPublic: isPublic,
	}
	if page.PageID == "" {
		return Page{}, domainerrors.ErrInvalidPage
	}
	return page.Normalize(now)
}

// Normalize fills a blank slug from the title, validates the page and bumps
// LastUpdated. It runs on every save.
func (p Page) Normalize(now time.Time) (Page, error) {
	next := p
	next.Title = strings.TrimSpace(next.Title)
	next.Slug = strings.TrimSpace(next.Slug)
	if next.Slug == "" {
		next.Slug = generatedSlug(next.Title)
	}
	if err := next.Validate(); err != nil {
		return Page{}, err
	}
	next.LastUpdated = now.UTC()
	return next, nil
}

func (p Page) Validate() error {
	if p.Title == "" || utf8.RuneCountInString(p.Title) > MaxTitleLength {
		return domainerrors.ErrInvalidPage
	}
	if strings.TrimSpace(p.Content) == "" {
		return domainerrors.ErrInvalidPage
	}
	if len(p.Slug) > MaxSlugLength || !services.ValidSlug(p.Slug) {
		return domainerrors.ErrInvalidPage
	}
	return nil
}

func (p Page) IsHome() bool {
	return p.Slug == HomeSlug
}

func (p Page) String() string {
	return p.Title
}

func generatedSlug(title string) string {
	slug := services.Slugify(title)
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-_")
	}
	return slug
}
