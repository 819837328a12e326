package services

import (
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
)

// StartHistory records version 1 for a freshly created package.
func StartHistory(
	pkg entities.PricingPackage,
	versionID string,
	uploader string,
	now time.Time,
) (entities.PricingPackageVersion, error) {
	if pkg.CurrentVersion != 1 {
		return entities.PricingPackageVersion{}, domainerrors.ErrRepositoryInvariantBroke
	}
	return entities.SnapshotVersion(versionID, pkg, uploader, now)
}

// ReplacePackageFile bumps the package to its next version, resets approval
// and returns the version row that must be persisted with it.
func ReplacePackageFile(
	pkg entities.PricingPackage,
	file string,
	versionID string,
	uploader string,
	now time.Time,
) (entities.PricingPackage, entities.PricingPackageVersion, error) {
	next, err := pkg.ReplaceFile(file, now)
	if err != nil {
		return entities.PricingPackage{}, entities.PricingPackageVersion{}, err
	}
	version, err := entities.SnapshotVersion(versionID, next, uploader, now)
	if err != nil {
		return entities.PricingPackage{}, entities.PricingPackageVersion{}, err
	}
	return next, version, nil
}

// EnsureVersionBelongs rejects versions that are not part of the package
// history. The package may have been read before a newer upload, so the
// version number is not compared against pkg.CurrentVersion.
func EnsureVersionBelongs(pkg entities.PricingPackage, version entities.PricingPackageVersion) error {
	if version.PackageID != pkg.PackageID {
		return domainerrors.ErrVersionNotFound
	}
	return nil
}
