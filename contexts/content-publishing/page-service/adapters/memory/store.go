package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"venuenouveau/contexts/content-publishing/page-service/domain/entities"
	domainerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	"venuenouveau/contexts/content-publishing/page-service/ports"
)

// Store keeps pages, gallery items and uploaded media in process memory.
type Store struct {
	mu       sync.RWMutex
	pages    map[string]entities.Page
	gallery  map[string]entities.GalleryItem
	media    map[string][]byte
	now      func() time.Time
	sequence uint64
}

func NewStore(seed []entities.Page) *Store {
	pages := make(map[string]entities.Page, len(seed))
	for _, page := range seed {
		pages[page.PageID] = page
	}
	return &Store{
		pages:   pages,
		gallery: make(map[string]entities.GalleryItem),
		media:   make(map[string][]byte),
	}
}

// SetClock pins Now for deterministic tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) CreatePage(_ context.Context, page entities.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pages[page.PageID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	if s.slugTakenLocked(page.Slug, page.PageID) {
		return domainerrors.ErrSlugTaken
	}
	s.pages[page.PageID] = page
	return nil
}

func (s *Store) UpdatePage(_ context.Context, page entities.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pages[page.PageID]; !ok {
		return domainerrors.ErrPageNotFound
	}
	if s.slugTakenLocked(page.Slug, page.PageID) {
		return domainerrors.ErrSlugTaken
	}
	s.pages[page.PageID] = page
	return nil
}

func (s *Store) DeletePage(_ context.Context, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pages[pageID]; !ok {
		return domainerrors.ErrPageNotFound
	}
	delete(s.pages, pageID)
	for id, item := range s.gallery {
		if item.PageID == pageID {
			delete(s.gallery, id)
		}
	}
	return nil
}

func (s *Store) GetPage(_ context.Context, pageID string) (entities.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.pages[pageID]
	if !ok {
		return entities.Page{}, domainerrors.ErrPageNotFound
	}
	return page, nil
}

func (s *Store) GetPageBySlug(_ context.Context, slug string) (entities.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, page := range s.pages {
		if page.Slug == slug {
			return page, nil
		}
	}
	return entities.Page{}, domainerrors.ErrPageNotFound
}

func (s *Store) ListPages(_ context.Context, filter ports.PageFilter) ([]entities.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Page, 0, len(s.pages))
	for _, page := range s.pages {
		if filter.PublicOnly && !page.IsPublic {
			continue
		}
		items = append(items, page)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Title != items[j].Title {
			return items[i].Title < items[j].Title
		}
		return items[i].PageID < items[j].PageID
	})
	return items, nil
}

func (s *Store) AddGalleryItem(_ context.Context, item entities.GalleryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pages[item.PageID]; !ok {
		return domainerrors.ErrPageNotFound
	}
	if _, ok := s.gallery[item.ItemID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.gallery[item.ItemID] = item
	return nil
}

func (s *Store) GetGalleryItem(_ context.Context, itemID string) (entities.GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.gallery[itemID]
	if !ok {
		return entities.GalleryItem{}, domainerrors.ErrGalleryItemNotFound
	}
	return item, nil
}

func (s *Store) DeleteGalleryItem(_ context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.gallery[itemID]; !ok {
		return domainerrors.ErrGalleryItemNotFound
	}
	delete(s.gallery, itemID)
	return nil
}

func (s *Store) ListGalleryItems(_ context.Context, pageID string) ([]entities.GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.GalleryItem, 0)
	for _, item := range s.gallery {
		if item.PageID == pageID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].UploadedAt.Equal(items[j].UploadedAt) {
			return items[i].UploadedAt.Before(items[j].UploadedAt)
		}
		return items[i].ItemID < items[j].ItemID
	})
	return items, nil
}

func (s *Store) Save(ctx context.Context, dir string, upload ports.MediaUpload) (string, error) {
	if upload.Body == nil {
		return "", domainerrors.ErrMediaRequired
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, upload.Body); err != nil {
		return "", err
	}
	id, err := s.NewID(ctx)
	if err != nil {
		return "", err
	}
	stored := path.Join(dir, id+"-"+path.Base(upload.Name))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[stored] = buf.Bytes()
	return stored, nil
}

func (s *Store) URL(stored string) string {
	return "/media/" + strings.TrimPrefix(stored, "/")
}

// Media returns stored bytes for assertions.
func (s *Store) Media(stored string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.media[stored]
	return content, ok
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	now := s.now
	s.mu.RUnlock()
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("page-%d", value), nil
}

func (s *Store) slugTakenLocked(slug string, exceptID string) bool {
	for id, page := range s.pages {
		if id != exceptID && page.Slug == slug {
			return true
		}
	}
	return false
}
