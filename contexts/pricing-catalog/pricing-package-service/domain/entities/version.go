package entities

import (
	"strconv"
	"time"

	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
)

// PricingPackageVersion is one immutable entry of a package's file history.
// Only the approval stamp may change after the row is written.
type PricingPackageVersion struct {
	VersionID   string
	PackageID   string
	Version     int
	PackageName string
	File        string
	Uploader    string
	UploadedAt  time.Time
	Approval
}

// SnapshotVersion records the package's current file as a version row.
func SnapshotVersion(versionID string, pkg PricingPackage, uploader string, now time.Time) (PricingPackageVersion, error) {
	uploader, err := normalizeIdentity(uploader, domainerrors.ErrUploaderRequired)
	if err != nil {
		return PricingPackageVersion{}, err
	}
	if versionID == "" || pkg.PackageID == "" || pkg.CurrentVersion < 1 || pkg.File == "" {
		return PricingPackageVersion{}, domainerrors.ErrRepositoryInvariantBroke
	}
	return PricingPackageVersion{
		VersionID:   versionID,
		PackageID:   pkg.PackageID,
		Version:     pkg.CurrentVersion,
		PackageName: pkg.PackageName,
		File:        pkg.File,
		Uploader:    uploader,
		UploadedAt:  now.UTC(),
	}, nil
}

func (v PricingPackageVersion) Approve(approver string, now time.Time) (PricingPackageVersion, error) {
	approver, err := normalizeIdentity(approver, domainerrors.ErrApproverRequired)
	if err != nil {
		return PricingPackageVersion{}, err
	}
	next := v
	next.Approval = approvedBy(approver, now)
	return next, nil
}

// Display mirrors the admin label: "Version N for <package>".
func (v PricingPackageVersion) Display(packageDisplay string) string {
	return "Version " + strconv.Itoa(v.Version) + " for " + packageDisplay
}
