package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	pricingerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	pricingports "venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
	pricinghttp "venuenouveau/contexts/pricing-catalog/pricing-package-service/transport/http"
)

func (s *Server) handleListSegments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.pricing.Handler.ListSegmentsHandler())
}

func (s *Server) handleListPublicPackages(w http.ResponseWriter, r *http.Request) {
	s.listPackages(w, r, true)
}

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	s.listPackages(w, r, false)
}

func (s *Server) listPackages(w http.ResponseWriter, r *http.Request, publicOnly bool) {
	query := r.URL.Query()
	year := 0
	if raw := strings.TrimSpace(query.Get("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writePricingError(w, http.StatusBadRequest, "invalid_year", "year must be an integer")
			return
		}
		year = parsed
	}
	resp, err := s.pricing.Handler.ListPackagesHandler(r.Context(), query.Get("segment"), year, publicOnly)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListYears(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	resp, err := s.pricing.Handler.ListYearsHandler(r.Context())
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateYear(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req pricinghttp.CreateYearRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.pricing.Handler.CreateYearHandler(r.Context(), req)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteYear(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if err := s.pricing.Handler.DeleteYearHandler(r.Context(), r.PathValue("year_id")); err != nil {
		writePricingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if !s.parseMultipart(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	upload, closeFile, ok := packageUpload(w, r)
	if !ok {
		return
	}
	defer closeFile()

	req := pricinghttp.CreatePackageRequest{
		Segment:     r.FormValue("segment"),
		YearID:      r.FormValue("year_id"),
		PackageName: r.FormValue("package_name"),
	}
	resp, err := s.pricing.Handler.CreatePackageHandler(r.Context(), userID, req, upload)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleUpdatePackage accepts multipart when a replacement file is sent and
// plain JSON for field-only edits.
func (s *Server) handleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var (
		req    pricinghttp.UpdatePackageRequest
		upload *pricingports.FileUpload
	)
	if isMultipart(r) {
		if !s.parseMultipart(w, r) {
			return
		}
		defer r.MultipartForm.RemoveAll()

		var closeFile func()
		upload, closeFile, ok = packageUpload(w, r)
		if !ok {
			return
		}
		defer closeFile()

		req = pricinghttp.UpdatePackageRequest{
			Segment:     formValue(r, "segment"),
			YearID:      formValue(r, "year_id"),
			PackageName: formValue(r, "package_name"),
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.pricing.Handler.UpdatePackageHandler(r.Context(), userID, r.PathValue("package_id"), req, upload)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPackage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	resp, err := s.pricing.Handler.GetPackageHandler(r.Context(), r.PathValue("package_id"))
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePackage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if err := s.pricing.Handler.DeletePackageHandler(r.Context(), r.PathValue("package_id")); err != nil {
		writePricingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApprovePackage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.pricing.Handler.ApprovePackageHandler(r.Context(), userID, r.PathValue("package_id"))
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveVersion(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.pricing.Handler.ApproveVersionHandler(
		r.Context(),
		userID,
		r.PathValue("package_id"),
		r.PathValue("version_id"),
	)
	if err != nil {
		writePricingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// packageUpload reads the optional "file" part. The returned close func is
// always safe to call.
func packageUpload(w http.ResponseWriter, r *http.Request) (*pricingports.FileUpload, func(), bool) {
	file, header, err := formFile(r, "file")
	if err != nil {
		writePricingError(w, http.StatusBadRequest, "invalid_form", "file part could not be read")
		return nil, func() {}, false
	}
	if file == nil {
		return nil, func() {}, true
	}
	return &pricingports.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}, func() { _ = file.Close() }, true
}

func writePricingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pricingerrors.ErrYearNotFound):
		writePricingError(w, http.StatusNotFound, "year_not_found", err.Error())
	case errors.Is(err, pricingerrors.ErrPackageNotFound):
		writePricingError(w, http.StatusNotFound, "package_not_found", err.Error())
	case errors.Is(err, pricingerrors.ErrVersionNotFound):
		writePricingError(w, http.StatusNotFound, "version_not_found", err.Error())
	case errors.Is(err, pricingerrors.ErrYearTaken):
		writePricingError(w, http.StatusConflict, "year_taken", err.Error())
	case errors.Is(err, pricingerrors.ErrDuplicateVersion):
		writePricingError(w, http.StatusConflict, "duplicate_version", err.Error())
	case errors.Is(err, pricingerrors.ErrInvalidYear),
		errors.Is(err, pricingerrors.ErrInvalidPackage),
		errors.Is(err, pricingerrors.ErrInvalidSegment):
		writePricingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, pricingerrors.ErrFileRequired):
		writePricingError(w, http.StatusBadRequest, "file_required", err.Error())
	case errors.Is(err, pricingerrors.ErrApproverRequired),
		errors.Is(err, pricingerrors.ErrUploaderRequired):
		writePricingError(w, http.StatusUnauthorized, "missing_user", err.Error())
	default:
		writePricingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePricingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pricinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
