package pageservice_test

import (
	"context"
	"strings"
	"testing"
	"time"

	pageservice "venuenouveau/contexts/content-publishing/page-service"
	domainerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	"venuenouveau/contexts/content-publishing/page-service/ports"
	httptransport "venuenouveau/contexts/content-publishing/page-service/transport/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModule(t *testing.T) pageservice.Module {
	t.Helper()
	module := pageservice.NewInMemoryModule(nil, nil)
	now := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	module.Store.SetClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
	return module
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func TestCreatePageGeneratesUniqueSlugs(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	page, err := module.Handler.CreatePageHandler(ctx, httptransport.CreatePageRequest{
		Title:   "Our Story",
		Content: "<p>Since 1920</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "our-story", page.Slug)
	assert.True(t, page.IsPublic, "pages are public unless stated otherwise")
	assert.Equal(t, "/cms/page/our-story/", page.URL)

	_, err = module.Handler.CreatePageHandler(ctx, httptransport.CreatePageRequest{
		Title:   "Our story",
		Content: "duplicate",
	})
	require.ErrorIs(t, err, domainerrors.ErrSlugTaken)

	_, err = module.Handler.CreatePageHandler(ctx, httptransport.CreatePageRequest{
		Title:   "!!!",
		Content: "no slug possible",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidPage)
}

func TestUpdatePage(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	first, err := module.Handler.CreatePageHandler(ctx, httptransport.CreatePageRequest{Title: "Menu", Content: "food"})
	require.NoError(t, err)
	second, err := module.Handler.CreatePageHandler(ctx, httptransport.CreatePageRequest{Title: "Drinks", Content: "wine"})
	require.NoError(t, err)

	updated, err := module.Handler.UpdatePageHandler(ctx, first.PageID, httptransport.UpdatePageRequest{
		Title: strPtr("Seasonal Menu"),
		Slug:  strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "seasonal-menu", updated.Slug)
	assert.Equal(t, "food", updated.Content)
	assert.NotEqual(t, first.LastUpdated, updated.LastUpdated)

	_, err = module.Handler.UpdatePageHandler(ctx, second.PageID, httptransport.UpdatePageRequest{Slug: strPtr("seasonal-menu")})
	require.ErrorIs(t, err, domainerrors.ErrSlugTaken)

	same, err := module.Handler.UpdatePageHandler(ctx, second.PageID, httptransport.UpdatePageRequest{Slug: strPtr("drinks")})
	require.NoError(t, err, "a page may keep its own slug")
	assert.Equal(t, "drinks", same.Slug)

	_, err = module.Handler.UpdatePageHandler(ctx, "missing", httptransport.UpdatePageRequest{})
	require.ErrorIs(t, err, domainerrors.ErrPageNotFound)
}

func TestNavigationListsPublicPagesByTitle(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	for _, req := range []httptransport.CreatePageRequest{
		{Title: "Weddings", Content: "c"},
		{Title: "About", Content: "c"},
		{Title: "Staff Notes", Content: "c", IsPublic: boolPtr(false)},
		{Title: "Home", Content: "c"},
	} {
		_, err := module.Handler.CreatePageHandler(ctx, req)
		require.NoError(t, err)
	}

	navigation, err := module.Handler.NavigationHandler(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(navigation.Items))
	for _, link := range navigation.Items {
		titles = append(titles, link.Title)
	}
	assert.Equal(t, []string{"About", "Home", "Weddings"}, titles)
	assert.Equal(t, "/cms/", navigation.Items[1].URL)

	all, err := module.Handler.ListPagesHandler(ctx)
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)
}

func TestPageDetailServesHiddenPagesAndGallery(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	hidden, err := module.Handler.CreatePageHandler(ctx, httptransport.CreatePageRequest{
		Title:    "Private Tour",
		Content:  "<p>By appointment</p>",
		IsPublic: boolPtr(false),
	})
	require.NoError(t, err)

	first, err := module.Handler.AddGalleryItemHandler(ctx, hidden.PageID, "Ballroom", &ports.MediaUpload{
		Name: "ballroom.jpg", Body: strings.NewReader("jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Private Tour - Ballroom", first.Display)
	assert.True(t, strings.HasPrefix(first.MediaURL, "/media/gallery_media/"))

	_, err = module.Handler.AddGalleryItemHandler(ctx, hidden.PageID, "Garden", &ports.MediaUpload{
		Name: "garden.jpg", Body: strings.NewReader("jpg"),
	})
	require.NoError(t, err)

	detail, err := module.Handler.PageBySlugHandler(ctx, "private-tour")
	require.NoError(t, err)
	assert.Equal(t, "Private Tour", detail.Page.Title)
	require.Len(t, detail.Gallery, 2)
	assert.Equal(t, "Ballroom", detail.Gallery[0].Caption, "gallery is ordered by upload time")
	assert.Empty(t, detail.Navigation)

	_, err = module.Handler.PageBySlugHandler(ctx, "nope")
	require.ErrorIs(t, err, domainerrors.ErrPageNotFound)
	_, err = module.Handler.HomeHandler(ctx)
	require.ErrorIs(t, err, domainerrors.ErrPageNotFound)

	require.NoError(t, module.Handler.RemoveGalleryItemHandler(ctx, first.ItemID))
	gallery, err := module.Handler.ListGalleryHandler(ctx, hidden.PageID)
	require.NoError(t, err)
	require.Len(t, gallery.Items, 1)
	assert.Equal(t, "Garden", gallery.Items[0].Caption)
	require.ErrorIs(t, module.Handler.RemoveGalleryItemHandler(ctx, first.ItemID), domainerrors.ErrGalleryItemNotFound)
}

func TestHomeAndDeleteCascade(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	home, err := module.Handler.CreatePageHandler(ctx, httptransport.CreatePageRequest{Title: "Welcome", Slug: "home", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "/cms/", home.URL)

	item, err := module.Handler.AddGalleryItemHandler(ctx, home.PageID, "", &ports.MediaUpload{
		Name: "hero.png", Body: strings.NewReader("png"),
	})
	require.NoError(t, err)

	detail, err := module.Handler.HomeHandler(ctx)
	require.NoError(t, err)
	assert.Equal(t, home.PageID, detail.Page.PageID)

	require.NoError(t, module.Handler.DeletePageHandler(ctx, home.PageID))
	_, err = module.Handler.HomeHandler(ctx)
	require.ErrorIs(t, err, domainerrors.ErrPageNotFound)
	require.ErrorIs(t, module.Handler.RemoveGalleryItemHandler(ctx, item.ItemID), domainerrors.ErrGalleryItemNotFound)
}

func TestAddGalleryItemErrors(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	_, err := module.Handler.AddGalleryItemHandler(ctx, "missing", "x", &ports.MediaUpload{Name: "a.jpg", Body: strings.NewReader("a")})
	require.ErrorIs(t, err, domainerrors.ErrPageNotFound)

	page, err := module.Handler.CreatePageHandler(ctx, httptransport.CreatePageRequest{Title: "Venue", Content: "c"})
	require.NoError(t, err)
	_, err = module.Handler.AddGalleryItemHandler(ctx, page.PageID, "x", nil)
	require.ErrorIs(t, err, domainerrors.ErrMediaRequired)
	_, err = module.Handler.AddGalleryItemHandler(ctx, page.PageID, strings.Repeat("c", 256), &ports.MediaUpload{Name: "a.jpg", Body: strings.NewReader("a")})
	require.ErrorIs(t, err, domainerrors.ErrInvalidGalleryItem)
}
