package httpserver

import (
	"errors"
	"net/http"

	pageerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	pageports "venuenouveau/contexts/content-publishing/page-service/ports"
	pagehttp "venuenouveau/contexts/content-publishing/page-service/transport/http"
)

func (s *Server) handleHomeHTML(w http.ResponseWriter, r *http.Request) {
	detail, err := s.pages.Handler.HomeHandler(r.Context())
	if err != nil {
		s.writePageHTMLError(w, r, err)
		return
	}
	writeHTML(w, r, http.StatusOK, pagehttp.PageView(detail))
}

func (s *Server) handlePageHTML(w http.ResponseWriter, r *http.Request) {
	detail, err := s.pages.Handler.PageBySlugHandler(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.writePageHTMLError(w, r, err)
		return
	}
	writeHTML(w, r, http.StatusOK, pagehttp.PageView(detail))
}

func (s *Server) handlePageAppendSlash(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

func (s *Server) writePageHTMLError(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, pageerrors.ErrPageNotFound) {
		s.logger.Error("page render failed",
			"event", "http_page_render_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"path", r.URL.Path,
			"error", err.Error(),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	nav, navErr := s.pages.Handler.NavigationHandler(r.Context())
	if navErr != nil {
		nav = pagehttp.NavigationResponse{}
	}
	writeHTML(w, r, http.StatusNotFound, pagehttp.NotFoundView(nav.Items))
}

func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pages.Handler.NavigationHandler(r.Context())
	if err != nil {
		writePageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pages.Handler.HomeHandler(r.Context())
	if err != nil {
		writePageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePageBySlug(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pages.Handler.PageBySlugHandler(r.Context(), r.PathValue("slug"))
	if err != nil {
		writePageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	resp, err := s.pages.Handler.ListPagesHandler(r.Context())
	if err != nil {
		writePageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req pagehttp.CreatePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.pages.Handler.CreatePageHandler(r.Context(), req)
	if err != nil {
		writePageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	resp, err := s.pages.Handler.GetPageHandler(r.Context(), r.PathValue("page_id"))
	if err != nil {
		writePageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req pagehttp.UpdatePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.pages.Handler.UpdatePageHandler(r.Context(), r.PathValue("page_id"), req)
	if err != nil {
		writePageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if err := s.pages.Handler.DeletePageHandler(r.Context(), r.PathValue("page_id")); err != nil {
		writePageDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGallery(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	resp, err := s.pages.Handler.ListGalleryHandler(r.Context(), r.PathValue("page_id"))
	if err != nil {
		writePageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddGalleryItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if !s.parseMultipart(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := formFile(r, "media")
	if err != nil {
		writePageError(w, http.StatusBadRequest, "invalid_form", "media part could not be read")
		return
	}
	var media *pageports.MediaUpload
	if file != nil {
		defer file.Close()
		media = &pageports.MediaUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	resp, err := s.pages.Handler.AddGalleryItemHandler(r.Context(), r.PathValue("page_id"), r.FormValue("caption"), media)
	if err != nil {
		writePageDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRemoveGalleryItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if err := s.pages.Handler.RemoveGalleryItemHandler(r.Context(), r.PathValue("item_id")); err != nil {
		writePageDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writePageDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pageerrors.ErrPageNotFound):
		writePageError(w, http.StatusNotFound, "page_not_found", err.Error())
	case errors.Is(err, pageerrors.ErrGalleryItemNotFound):
		writePageError(w, http.StatusNotFound, "gallery_item_not_found", err.Error())
	case errors.Is(err, pageerrors.ErrSlugTaken):
		writePageError(w, http.StatusConflict, "slug_taken", err.Error())
	case errors.Is(err, pageerrors.ErrInvalidPage):
		writePageError(w, http.StatusBadRequest, "invalid_page", err.Error())
	case errors.Is(err, pageerrors.ErrInvalidGalleryItem):
		writePageError(w, http.StatusBadRequest, "invalid_gallery_item", err.Error())
	case errors.Is(err, pageerrors.ErrMediaRequired):
		writePageError(w, http.StatusBadRequest, "media_required", err.Error())
	default:
		writePageError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePageError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pagehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
