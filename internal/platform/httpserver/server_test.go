package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pageservice "venuenouveau/contexts/content-publishing/page-service"
	pageentities "venuenouveau/contexts/content-publishing/page-service/domain/entities"
	pagehttp "venuenouveau/contexts/content-publishing/page-service/transport/http"
	pricingpackageservice "venuenouveau/contexts/pricing-catalog/pricing-package-service"
	pricinghttp "venuenouveau/contexts/pricing-catalog/pricing-package-service/transport/http"
	"venuenouveau/internal/platform/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	home := pageentities.Page{
		PageID:      "page-home",
		Title:       "Welcome",
		Slug:        pageentities.HomeSlug,
		Content:     "<p>Lakeside weddings</p>",
		IsPublic:    true,
		LastUpdated: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	pages := pageservice.NewInMemoryModule([]pageentities.Page{home}, nil)
	pricing := pricingpackageservice.NewInMemoryModule(nil, nil)
	return New(pages, pricing, opts, nil, ":0")
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func jsonRequest(t *testing.T, method string, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "editor-1")
	return req
}

func multipartRequest(t *testing.T, method string, target string, fields map[string]string, fileField string, fileName string, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-Id", "editor-1")
	return req
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestAdminRoutesRequireUser(t *testing.T) {
	server := newTestServer(t, Options{})
	for _, target := range []string{"/admin/v1/pages", "/admin/v1/pricing/years", "/admin/v1/pricing/packages"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := serve(server, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, target)
		assert.Equal(t, "missing_user", decode[errorResponse](t, rr).Code)
	}
}

func TestPublicPagesRenderHTML(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := serve(server, jsonRequest(t, http.MethodPost, "/admin/v1/pages", pagehttp.CreatePageRequest{
		Title:   "Our Venue",
		Content: "<p>Garden ceremony</p>",
	}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	page := decode[pagehttp.PageDTO](t, rr)
	assert.Equal(t, "our-venue", page.Slug)
	assert.Equal(t, "/cms/page/our-venue/", page.URL)

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/cms/page/our-venue/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "<h1>Our Venue</h1>")
	assert.Contains(t, rr.Body.String(), "<p>Garden ceremony</p>")

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/cms/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Lakeside weddings")
	assert.Contains(t, rr.Body.String(), `href="/cms/page/our-venue/"`)

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/cms/page/our-venue", nil))
	assert.Equal(t, http.StatusMovedPermanently, rr.Code)
	assert.Equal(t, "/cms/page/our-venue/", rr.Header().Get("Location"))

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/cms/page/missing/", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page not found")
}

func TestPageSlugConflictMapsTo409(t *testing.T) {
	server := newTestServer(t, Options{})
	rr := serve(server, jsonRequest(t, http.MethodPost, "/admin/v1/pages", pagehttp.CreatePageRequest{
		Title:   "Another home",
		Slug:    "home",
		Content: "x",
	}))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "slug_taken", decode[pagehttp.ErrorResponse](t, rr).Code)
}

func TestNavigationOmitsPrivatePages(t *testing.T) {
	server := newTestServer(t, Options{})
	hidden := false
	rr := serve(server, jsonRequest(t, http.MethodPost, "/admin/v1/pages", pagehttp.CreatePageRequest{
		Title:    "Draft",
		Content:  "wip",
		IsPublic: &hidden,
	}))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/pages/navigation", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	nav := decode[pagehttp.NavigationResponse](t, rr)
	require.Len(t, nav.Items, 1)
	assert.Equal(t, "/cms/", nav.Items[0].URL)
}

func TestGalleryUploadOverHTTP(t *testing.T) {
	server := newTestServer(t, Options{})
	rr := serve(server, multipartRequest(t, http.MethodPost, "/admin/v1/pages/page-home/gallery",
		map[string]string{"caption": "Sunset"}, "media", "sunset.jpg", "jpeg-bytes"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	item := decode[pagehttp.GalleryItemDTO](t, rr)
	assert.Equal(t, "Welcome - Sunset", item.Display)

	rr = serve(server, multipartRequest(t, http.MethodPost, "/admin/v1/pages/page-home/gallery",
		map[string]string{"caption": "No file"}, "", "", ""))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "media_required", decode[pagehttp.ErrorResponse](t, rr).Code)
}

func TestPricingApprovalWorkflowOverHTTP(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := serve(server, jsonRequest(t, http.MethodPost, "/admin/v1/pricing/years", pricinghttp.CreateYearRequest{Year: 2026}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	year := decode[pricinghttp.YearDTO](t, rr)

	rr = serve(server, multipartRequest(t, http.MethodPost, "/admin/v1/pricing/packages", map[string]string{
		"segment":      "all_inclusive",
		"year_id":      year.YearID,
		"package_name": "Classic",
	}, "file", "classic.pdf", "v1"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[pricinghttp.CreatePackageResponse](t, rr)
	assert.Equal(t, 1, created.Package.CurrentVersion)
	assert.False(t, created.Package.Approved)
	assert.Equal(t, "editor-1", created.Version.Uploader)
	packageURL := "/admin/v1/pricing/packages/" + created.Package.PackageID

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/pricing/packages", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[pricinghttp.ListPackagesResponse](t, rr).Items)

	approve := httptest.NewRequest(http.MethodPost, packageURL+"/approve", nil)
	approve.Header.Set("X-User-Id", "manager-1")
	rr = serve(server, approve)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	approved := decode[pricinghttp.ApprovePackageResponse](t, rr)
	assert.True(t, approved.Package.Approved)
	require.NotNil(t, approved.Package.ApprovedBy)
	assert.Equal(t, "manager-1", *approved.Package.ApprovedBy)

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/pricing/packages?segment=all_inclusive&year=2026", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[pricinghttp.ListPackagesResponse](t, rr).Items, 1)

	rr = serve(server, multipartRequest(t, http.MethodPatch, packageURL, nil, "file", "classic-v2.pdf", "v2"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[pricinghttp.UpdatePackageResponse](t, rr)
	assert.Equal(t, 2, updated.Package.CurrentVersion)
	assert.False(t, updated.Package.Approved)
	require.NotNil(t, updated.NewVersion)
	assert.Equal(t, 2, updated.NewVersion.Version)

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/pricing/packages", nil))
	assert.Empty(t, decode[pricinghttp.ListPackagesResponse](t, rr).Items)

	rr = serve(server, jsonRequest(t, http.MethodPatch, packageURL, pricinghttp.UpdatePackageRequest{PackageName: strPtr("Classic Plus")}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	renamed := decode[pricinghttp.UpdatePackageResponse](t, rr)
	assert.Equal(t, 2, renamed.Package.CurrentVersion)
	assert.Nil(t, renamed.NewVersion)

	detailReq := httptest.NewRequest(http.MethodGet, packageURL, nil)
	detailReq.Header.Set("X-User-Id", "editor-1")
	rr = serve(server, detailReq)
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decode[pricinghttp.GetPackageResponse](t, rr)
	require.Len(t, detail.Versions, 2)
	assert.Equal(t, 2, detail.Versions[0].Version)
	first := detail.Versions[1]
	assert.True(t, first.Approved)

	approveVersion := httptest.NewRequest(http.MethodPost, packageURL+"/versions/"+detail.Versions[0].VersionID+"/approve", nil)
	approveVersion.Header.Set("X-User-Id", "manager-2")
	rr = serve(server, approveVersion)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	version := decode[pricinghttp.ApproveVersionResponse](t, rr)
	assert.True(t, version.Version.Approved)

	unknown := httptest.NewRequest(http.MethodPost, packageURL+"/versions/nope/approve", nil)
	unknown.Header.Set("X-User-Id", "manager-2")
	rr = serve(server, unknown)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "version_not_found", decode[pricinghttp.ErrorResponse](t, rr).Code)
}

func TestPricingRejectsBadInput(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := serve(server, httptest.NewRequest(http.MethodGet, "/v1/pricing/packages?year=soon", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/pricing/packages?segment=luxury", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(server, multipartRequest(t, http.MethodPost, "/admin/v1/pricing/packages", map[string]string{
		"segment":      "weekday",
		"year_id":      "missing",
		"package_name": "Midweek",
	}, "file", "midweek.pdf", "v1"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "year_not_found", decode[pricinghttp.ErrorResponse](t, rr).Code)

	rr = serve(server, jsonRequest(t, http.MethodPost, "/admin/v1/pricing/packages", map[string]string{"segment": "weekday"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_form", decode[errorResponse](t, rr).Code)
}

func TestUploadLimitReturns413(t *testing.T) {
	server := newTestServer(t, Options{MaxUploadBytes: 1024})
	oversized := strings.Repeat("x", 20*1024)

	cases := []struct {
		name   string
		target string
		fields map[string]string
		field  string
	}{
		{name: "gallery media", target: "/admin/v1/pages/page-home/gallery", fields: map[string]string{"caption": "big"}, field: "media"},
		{name: "package create", target: "/admin/v1/pricing/packages", fields: map[string]string{"segment": "weekday", "package_name": "Big"}, field: "file"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(server, multipartRequest(t, http.MethodPost, tc.target, tc.fields, tc.field, "big.pdf", oversized))
			require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code, rr.Body.String())
			assert.Equal(t, "upload_too_large", decode[errorResponse](t, rr).Code)
		})
	}

	rr := serve(server, multipartRequest(t, http.MethodPost, "/admin/v1/pages/page-home/gallery",
		map[string]string{"caption": "small"}, "media", "small.jpg", "jpeg-bytes"))
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestMetricsRecordMatchedRoute(t *testing.T) {
	registry := metrics.NewRegistry()
	server := newTestServer(t, Options{Metrics: registry})

	rr := serve(server, httptest.NewRequest(http.MethodGet, "/v1/pages/navigation", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `route="GET /v1/pages/navigation"`)
}

func TestMediaIsServedWithoutListings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gallery_media"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gallery_media", "a.txt"), []byte("hello"), 0o644))
	server := newTestServer(t, Options{MediaURL: "/media/", MediaDir: dir})

	rr := serve(server, httptest.NewRequest(http.MethodGet, "/media/gallery_media/a.txt", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hello", rr.Body.String())

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/media/gallery_media/", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSwaggerDocIsServed(t *testing.T) {
	server := newTestServer(t, Options{})
	rr := serve(server, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/admin/v1/pricing/packages/{package_id}/approve")
}

func strPtr(v string) *string { return &v }
