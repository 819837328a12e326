package queries

import (
	"context"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
)

const moduleName = "pricing-catalog/pricing-package-service"

// PackageView is a package joined with its year and public file URL.
type PackageView struct {
	Package entities.PricingPackage
	Year    entities.Year
	FileURL string
}

func (v PackageView) Display() string {
	return v.Package.Display(v.Year)
}

func yearIndex(ctx context.Context, years ports.YearRepository) (map[string]entities.Year, error) {
	items, err := years.ListYears(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]entities.Year, len(items))
	for _, item := range items {
		index[item.YearID] = item
	}
	return index, nil
}

func fileURL(files ports.FileStore, path string) string {
	if files == nil {
		return path
	}
	return files.URL(path)
}
