package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	pageservice "venuenouveau/contexts/content-publishing/page-service"
	pricingpackageservice "venuenouveau/contexts/pricing-catalog/pricing-package-service"
	"venuenouveau/internal/platform/metrics"
	"venuenouveau/internal/platform/otel"

	"github.com/a-h/templ"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "venuenouveau/internal/platform/httpserver/docs"
)

const (
	defaultMaxUploadBytes = 25 << 20
	multipartMemory       = 8 << 20
)

// Options carries the optional collaborators of the HTTP surface.
type Options struct {
	Metrics        *metrics.Registry
	MediaURL       string
	MediaDir       string
	MaxUploadBytes int64
}

type Server struct {
	mux            *http.ServeMux
	handler        http.Handler
	httpServer     *http.Server
	logger         *slog.Logger
	addr           string
	pages          pageservice.Module
	pricing        pricingpackageservice.Module
	metrics        *metrics.Registry
	mediaURL       string
	mediaDir       string
	maxUploadBytes int64
}

func New(
	pages pageservice.Module,
	pricing pricingpackageservice.Module,
	opts Options,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           addr,
		pages:          pages,
		pricing:        pricing,
		metrics:        opts.Metrics,
		mediaURL:       opts.MediaURL,
		mediaDir:       opts.MediaDir,
		maxUploadBytes: opts.MaxUploadBytes,
	}
	s.registerRoutes()

	var handler http.Handler = s.mux
	if s.metrics != nil {
		handler = s.metrics.Middleware(handler)
	}
	s.handler = otel.Middleware(handler)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler is the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
	if s.mediaURL != "" && s.mediaDir != "" {
		prefix := "/" + strings.Trim(s.mediaURL, "/") + "/"
		s.mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(mediaFS{http.Dir(s.mediaDir)})))
	}

	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/cms/", http.StatusFound)
	})
	s.mux.HandleFunc("GET /cms/{$}", s.handleHomeHTML)
	s.mux.HandleFunc("GET /cms/page/{slug}/{$}", s.handlePageHTML)
	s.mux.HandleFunc("GET /cms/page/{slug}", s.handlePageAppendSlash)

	s.mux.HandleFunc("GET /v1/pages/navigation", s.handleNavigation)
	s.mux.HandleFunc("GET /v1/pages/home", s.handleHomePage)
	s.mux.HandleFunc("GET /v1/pages/slug/{slug}", s.handlePageBySlug)

	s.mux.HandleFunc("GET /admin/v1/pages", s.handleListPages)
	s.mux.HandleFunc("POST /admin/v1/pages", s.handleCreatePage)
	s.mux.HandleFunc("GET /admin/v1/pages/{page_id}", s.handleGetPage)
	s.mux.HandleFunc("PATCH /admin/v1/pages/{page_id}", s.handleUpdatePage)
	s.mux.HandleFunc("DELETE /admin/v1/pages/{page_id}", s.handleDeletePage)
	s.mux.HandleFunc("GET /admin/v1/pages/{page_id}/gallery", s.handleListGallery)
	s.mux.HandleFunc("POST /admin/v1/pages/{page_id}/gallery", s.handleAddGalleryItem)
	s.mux.HandleFunc("DELETE /admin/v1/gallery/{item_id}", s.handleRemoveGalleryItem)

	s.mux.HandleFunc("GET /v1/pricing/segments", s.handleListSegments)
	s.mux.HandleFunc("GET /v1/pricing/packages", s.handleListPublicPackages)

	s.mux.HandleFunc("GET /admin/v1/pricing/years", s.handleListYears)
	s.mux.HandleFunc("POST /admin/v1/pricing/years", s.handleCreateYear)
	s.mux.HandleFunc("DELETE /admin/v1/pricing/years/{year_id}", s.handleDeleteYear)
	s.mux.HandleFunc("GET /admin/v1/pricing/packages", s.handleListPackages)
	s.mux.HandleFunc("POST /admin/v1/pricing/packages", s.handleCreatePackage)
	s.mux.HandleFunc("GET /admin/v1/pricing/packages/{package_id}", s.handleGetPackage)
	s.mux.HandleFunc("PATCH /admin/v1/pricing/packages/{package_id}", s.handleUpdatePackage)
	s.mux.HandleFunc("DELETE /admin/v1/pricing/packages/{package_id}", s.handleDeletePackage)
	s.mux.HandleFunc("POST /admin/v1/pricing/packages/{package_id}/approve", s.handleApprovePackage)
	s.mux.HandleFunc("POST /admin/v1/pricing/packages/{package_id}/versions/{version_id}/approve", s.handleApproveVersion)
}

// requireUser returns the staff identity from X-User-Id. Every admin route
// needs it; uploads and approvals record it.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

// parseMultipart bounds the body and parses the form. It writes the error
// response itself and reports false when parsing failed.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "upload_too_large", "upload exceeds the size limit")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_form", "request body must be multipart/form-data")
		return false
	}
	return true
}

// formFile returns the uploaded part for field, or nil when none was sent.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return file, header, nil
}

// formValue returns nil when the field is absent so partial updates can tell
// "not sent" from "sent empty".
func formValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = component.Render(r.Context(), w)
}

// mediaFS hides directory listings under the media prefix.
type mediaFS struct {
	fs http.FileSystem
}

func (m mediaFS) Open(name string) (http.File, error) {
	file, err := m.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
