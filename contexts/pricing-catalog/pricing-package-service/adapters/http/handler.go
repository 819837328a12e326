package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/commands"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/queries"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
	httptransport "venuenouveau/contexts/pricing-catalog/pricing-package-service/transport/http"
)

type Handler struct {
	CreateYear    commands.CreateYearUseCase
	DeleteYear    commands.DeleteYearUseCase
	CreatePackage commands.CreatePackageUseCase
	UpdatePackage commands.UpdatePackageUseCase
	Approval      commands.ApprovalUseCase
	DeletePackage commands.DeletePackageUseCase
	ListYears     queries.ListYearsUseCase
	ListPackages  queries.ListPackagesUseCase
	GetPackage    queries.GetPackageUseCase
	Files         ports.FileStore
	Logger        *slog.Logger
}

func (h Handler) CreateYearHandler(ctx context.Context, req httptransport.CreateYearRequest) (httptransport.YearDTO, error) {
	year, err := h.CreateYear.Execute(ctx, commands.CreateYearCommand{Year: req.Year})
	if err != nil {
		return httptransport.YearDTO{}, err
	}
	return mapYear(year), nil
}

func (h Handler) ListYearsHandler(ctx context.Context) (httptransport.ListYearsResponse, error) {
	years, err := h.ListYears.Execute(ctx)
	if err != nil {
		return httptransport.ListYearsResponse{}, err
	}
	items := make([]httptransport.YearDTO, 0, len(years))
	for _, year := range years {
		items = append(items, mapYear(year))
	}
	return httptransport.ListYearsResponse{Items: items}, nil
}

func (h Handler) DeleteYearHandler(ctx context.Context, yearID string) error {
	return h.DeleteYear.Execute(ctx, yearID)
}

func (h Handler) ListSegmentsHandler() httptransport.ListSegmentsResponse {
	segments := entities.Segments()
	items := make([]httptransport.SegmentDTO, 0, len(segments))
	for _, segment := range segments {
		items = append(items, httptransport.SegmentDTO{Segment: string(segment), Label: segment.Label()})
	}
	return httptransport.ListSegmentsResponse{Items: items}
}

// CreatePackageHandler godoc
// @Summary Upload a pricing package
// @Description Creates the package at version 1, unapproved, with its first version record.
// @Tags pricing-package-service
// @Accept multipart/form-data
// @Produce json
// @Param X-User-Id header string true "Staff user id"
// @Param segment formData string true "Segment"
// @Param year_id formData string true "Year id"
// @Param package_name formData string true "Package name"
// @Param file formData file true "Package document"
// @Success 201 {object} httptransport.CreatePackageResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /admin/v1/pricing/packages [post]
func (h Handler) CreatePackageHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreatePackageRequest,
	file *ports.FileUpload,
) (httptransport.CreatePackageResponse, error) {
	result, err := h.CreatePackage.Execute(ctx, commands.CreatePackageCommand{
		Segment:     req.Segment,
		YearID:      req.YearID,
		PackageName: req.PackageName,
		File:        file,
		Uploader:    userID,
	})
	if err != nil {
		return httptransport.CreatePackageResponse{}, err
	}
	detail, err := h.GetPackage.Execute(ctx, result.Package.PackageID)
	if err != nil {
		return httptransport.CreatePackageResponse{}, err
	}
	return httptransport.CreatePackageResponse{
		Package: mapPackage(detail.PackageView),
		Version: h.mapVersion(result.Version, ""),
	}, nil
}

// UpdatePackageHandler godoc
// @Summary Edit a package or replace its file
// @Description A replacement file bumps current_version and resets approval.
// @Tags pricing-package-service
// @Accept multipart/form-data
// @Produce json
// @Param X-User-Id header string true "Staff user id"
// @Param package_id path string true "Package id"
// @Param file formData file false "Replacement document"
// @Success 200 {object} httptransport.UpdatePackageResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /admin/v1/pricing/packages/{package_id} [patch]
func (h Handler) UpdatePackageHandler(
	ctx context.Context,
	userID string,
	packageID string,
	req httptransport.UpdatePackageRequest,
	file *ports.FileUpload,
) (httptransport.UpdatePackageResponse, error) {
	result, err := h.UpdatePackage.Execute(ctx, commands.UpdatePackageCommand{
		PackageID:   packageID,
		Segment:     req.Segment,
		YearID:      req.YearID,
		PackageName: req.PackageName,
		File:        file,
		Uploader:    userID,
	})
	if err != nil {
		return httptransport.UpdatePackageResponse{}, err
	}
	detail, err := h.GetPackage.Execute(ctx, result.Package.PackageID)
	if err != nil {
		return httptransport.UpdatePackageResponse{}, err
	}
	response := httptransport.UpdatePackageResponse{Package: mapPackage(detail.PackageView)}
	if result.NewVersion != nil {
		version := h.mapVersion(*result.NewVersion, "")
		response.NewVersion = &version
	}
	return response, nil
}

// GetPackageHandler godoc
// @Summary Package detail with version history
// @Tags pricing-package-service
// @Produce json
// @Param X-User-Id header string true "Staff user id"
// @Param package_id path string true "Package id"
// @Success 200 {object} httptransport.GetPackageResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /admin/v1/pricing/packages/{package_id} [get]
func (h Handler) GetPackageHandler(ctx context.Context, packageID string) (httptransport.GetPackageResponse, error) {
	detail, err := h.GetPackage.Execute(ctx, packageID)
	if err != nil {
		return httptransport.GetPackageResponse{}, err
	}
	versions := make([]httptransport.VersionDTO, 0, len(detail.Versions))
	for _, item := range detail.Versions {
		versions = append(versions, h.mapVersion(item.Version, item.Display))
	}
	return httptransport.GetPackageResponse{
		Package:  mapPackage(detail.PackageView),
		Versions: versions,
	}, nil
}

// ListPackagesHandler serves both the admin listing and the public listing.
// The public listing only ever contains approved packages.
func (h Handler) ListPackagesHandler(
	ctx context.Context,
	segment string,
	year int,
	publicOnly bool,
) (httptransport.ListPackagesResponse, error) {
	result, err := h.ListPackages.Execute(ctx, queries.ListPackagesQuery{
		Segment:    segment,
		Year:       year,
		PublicOnly: publicOnly,
	})
	if err != nil {
		return httptransport.ListPackagesResponse{}, err
	}
	items := make([]httptransport.PackageDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, mapPackage(item))
	}
	return httptransport.ListPackagesResponse{Items: items}, nil
}

// ApprovePackageHandler godoc
// @Summary Approve the current version of a package
// @Tags pricing-package-service
// @Produce json
// @Param X-User-Id header string true "Approver user id"
// @Param package_id path string true "Package id"
// @Success 200 {object} httptransport.ApprovePackageResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /admin/v1/pricing/packages/{package_id}/approve [post]
func (h Handler) ApprovePackageHandler(ctx context.Context, userID string, packageID string) (httptransport.ApprovePackageResponse, error) {
	if _, err := h.Approval.ApprovePackage(ctx, commands.ApprovePackageCommand{
		PackageID: packageID,
		Approver:  userID,
	}); err != nil {
		return httptransport.ApprovePackageResponse{}, err
	}
	detail, err := h.GetPackage.Execute(ctx, packageID)
	if err != nil {
		return httptransport.ApprovePackageResponse{}, err
	}
	return httptransport.ApprovePackageResponse{Package: mapPackage(detail.PackageView)}, nil
}

// ApproveVersionHandler godoc
// @Summary Approve one historical version
// @Tags pricing-package-service
// @Produce json
// @Param X-User-Id header string true "Approver user id"
// @Param package_id path string true "Package id"
// @Param version_id path string true "Version id"
// @Success 200 {object} httptransport.ApproveVersionResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /admin/v1/pricing/packages/{package_id}/versions/{version_id}/approve [post]
func (h Handler) ApproveVersionHandler(
	ctx context.Context,
	userID string,
	packageID string,
	versionID string,
) (httptransport.ApproveVersionResponse, error) {
	version, err := h.Approval.ApproveVersion(ctx, commands.ApproveVersionCommand{
		PackageID: packageID,
		VersionID: versionID,
		Approver:  userID,
	})
	if err != nil {
		return httptransport.ApproveVersionResponse{}, err
	}
	return httptransport.ApproveVersionResponse{Version: h.mapVersion(version, "")}, nil
}

func (h Handler) DeletePackageHandler(ctx context.Context, packageID string) error {
	return h.DeletePackage.Execute(ctx, packageID)
}

func mapYear(year entities.Year) httptransport.YearDTO {
	return httptransport.YearDTO{
		YearID:  year.YearID,
		Year:    year.Year,
		Display: year.String(),
	}
}

func mapPackage(view queries.PackageView) httptransport.PackageDTO {
	pkg := view.Package
	return httptransport.PackageDTO{
		PackageID:      pkg.PackageID,
		Segment:        string(pkg.Segment),
		SegmentLabel:   pkg.Segment.Label(),
		YearID:         pkg.YearID,
		Year:           view.Year.Year,
		PackageName:    pkg.PackageName,
		FileURL:        view.FileURL,
		CurrentVersion: pkg.CurrentVersion,
		Approved:       pkg.Approved,
		ApprovedBy:     pkg.ApprovedBy,
		ApprovedAt:     formatTimePtr(pkg.ApprovedAt),
		UpdatedAt:      pkg.UpdatedAt.UTC().Format(time.RFC3339),
		Display:        view.Display(),
	}
}

func (h Handler) mapVersion(version entities.PricingPackageVersion, display string) httptransport.VersionDTO {
	fileURL := version.File
	if h.Files != nil {
		fileURL = h.Files.URL(version.File)
	}
	return httptransport.VersionDTO{
		VersionID:   version.VersionID,
		PackageID:   version.PackageID,
		Version:     version.Version,
		PackageName: version.PackageName,
		FileURL:     fileURL,
		Uploader:    version.Uploader,
		UploadedAt:  version.UploadedAt.UTC().Format(time.RFC3339),
		Approved:    version.Approved,
		ApprovedBy:  version.ApprovedBy,
		ApprovedAt:  formatTimePtr(version.ApprovedAt),
		Display:     display,
	}
}

func formatTimePtr(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.UTC().Format(time.RFC3339)
	return &formatted
}
