package queries

import (
	"context"
	"log/slog"
	"strings"

	application "venuenouveau/contexts/pricing-catalog/pricing-package-service/application"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
)

type VersionView struct {
	Version entities.PricingPackageVersion
	FileURL string
	Display string
}

type GetPackageResult struct {
	PackageView
	// Versions is the read-only history, newest first.
	Versions []VersionView
}

type GetPackageUseCase struct {
	Packages ports.PackageRepository
	Years    ports.YearRepository
	Files    ports.FileStore
	Logger   *slog.Logger
}

func (u GetPackageUseCase) Execute(ctx context.Context, packageID string) (GetPackageResult, error) {
	logger := application.ResolveLogger(u.Logger)
	pkg, err := u.Packages.GetPackage(ctx, strings.TrimSpace(packageID))
	if err != nil {
		return GetPackageResult{}, err
	}
	year, err := u.Years.GetYear(ctx, pkg.YearID)
	if err != nil {
		logger.Error("pricing package year lookup failed",
			"event", "pricing_package_year_lookup_failed",
			"module", moduleName,
			"layer", "application",
			"package_id", pkg.PackageID,
			"year_id", pkg.YearID,
			"error", err.Error(),
		)
		return GetPackageResult{}, err
	}
	versions, err := u.Packages.ListVersions(ctx, pkg.PackageID)
	if err != nil {
		return GetPackageResult{}, err
	}

	view := PackageView{Package: pkg, Year: year, FileURL: fileURL(u.Files, pkg.File)}
	history := make([]VersionView, 0, len(versions))
	for _, version := range versions {
		history = append(history, VersionView{
			Version: version,
			FileURL: fileURL(u.Files, version.File),
			Display: version.Display(view.Display()),
		})
	}
	return GetPackageResult{PackageView: view, Versions: history}, nil
}
