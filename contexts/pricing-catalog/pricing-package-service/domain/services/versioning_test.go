package services_test

import (
	"testing"
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplacePackageFileProducesMatchingVersion(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	pkg, err := entities.NewPricingPackage("pkg-1", entities.SegmentWeekday, "year-1", "Weekday", "packages/v1.pdf", now)
	require.NoError(t, err)
	first, err := services.StartHistory(pkg, "ver-1", "uploader", now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)

	next, version, err := services.ReplacePackageFile(pkg, "packages/v2.pdf", "ver-2", "uploader", now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, next.CurrentVersion)
	assert.Equal(t, next.CurrentVersion, version.Version)
	assert.Equal(t, next.File, version.File)
	assert.Equal(t, "pkg-1", version.PackageID)
	assert.False(t, version.Approved)

	_, err = services.StartHistory(next, "ver-3", "uploader", now)
	require.ErrorIs(t, err, domainerrors.ErrRepositoryInvariantBroke)

	_, _, err = services.ReplacePackageFile(pkg, "packages/v2.pdf", "ver-2", "", now)
	require.ErrorIs(t, err, domainerrors.ErrUploaderRequired)
}

func TestEnsureVersionBelongs(t *testing.T) {
	pkg := entities.PricingPackage{PackageID: "pkg-1", CurrentVersion: 2}

	require.NoError(t, services.EnsureVersionBelongs(pkg, entities.PricingPackageVersion{PackageID: "pkg-1", Version: 1}))
	require.ErrorIs(t,
		services.EnsureVersionBelongs(pkg, entities.PricingPackageVersion{PackageID: "pkg-2", Version: 1}),
		domainerrors.ErrVersionNotFound,
	)
}

func TestEnsureVersionBelongsAcceptsUploadAfterPackageRead(t *testing.T) {
	stale := entities.PricingPackage{PackageID: "pkg-1", CurrentVersion: 2}

	require.NoError(t, services.EnsureVersionBelongs(stale, entities.PricingPackageVersion{PackageID: "pkg-1", Version: 3}))
}
