package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "venuenouveau/contexts/pricing-catalog/pricing-package-service/application"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
)

type ListPackagesQuery struct {
	Segment string
	// Year filters by calendar year value, not identifier.
	Year int
	// PublicOnly restricts the listing to approved packages.
	PublicOnly bool
}

type ListPackagesResult struct {
	Items []PackageView
}

type ListPackagesUseCase struct {
	Packages ports.PackageRepository
	Years    ports.YearRepository
	Files    ports.FileStore
	Logger   *slog.Logger
}

func (u ListPackagesUseCase) Execute(ctx context.Context, query ListPackagesQuery) (ListPackagesResult, error) {
	logger := application.ResolveLogger(u.Logger)
	filter := ports.PackageFilter{ApprovedOnly: query.PublicOnly}
	if segment := strings.TrimSpace(query.Segment); segment != "" {
		filter.Segment = entities.Segment(segment)
		if !filter.Segment.Valid() {
			return ListPackagesResult{}, domainerrors.ErrInvalidSegment
		}
	}
	if query.Year != 0 {
		year, err := u.Years.GetYearByValue(ctx, query.Year)
		if err != nil {
			if errors.Is(err, domainerrors.ErrYearNotFound) {
				return ListPackagesResult{Items: []PackageView{}}, nil
			}
			return ListPackagesResult{}, err
		}
		filter.YearID = year.YearID
	}

	packages, err := u.Packages.ListPackages(ctx, filter)
	if err != nil {
		logger.Error("list pricing packages failed",
			"event", "pricing_package_list_failed",
			"module", moduleName,
			"layer", "application",
			"error", err.Error(),
		)
		return ListPackagesResult{}, err
	}
	years, err := yearIndex(ctx, u.Years)
	if err != nil {
		return ListPackagesResult{}, err
	}

	items := make([]PackageView, 0, len(packages))
	for _, pkg := range packages {
		items = append(items, PackageView{
			Package: pkg,
			Year:    years[pkg.YearID],
			FileURL: fileURL(u.Files, pkg.File),
		})
	}

	logger.Info("list pricing packages completed",
		"event", "pricing_package_list_completed",
		"module", moduleName,
		"layer", "application",
		"public_only", query.PublicOnly,
		"items_count", len(items),
	)
	return ListPackagesResult{Items: items}, nil
}

type ListYearsUseCase struct {
	Years ports.YearRepository
}

func (u ListYearsUseCase) Execute(ctx context.Context) ([]entities.Year, error) {
	return u.Years.ListYears(ctx)
}
