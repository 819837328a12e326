package commands

import (
	"context"
	"log/slog"
	"strings"

	application "venuenouveau/contexts/pricing-catalog/pricing-package-service/application"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/services"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
)

type ApprovePackageCommand struct {
	PackageID string
	Approver  string
}

type ApproveVersionCommand struct {
	PackageID string
	VersionID string
	Approver  string
}

type ApprovalUseCase struct {
	Packages    ports.PackageRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Metrics     ports.WorkflowMetrics
	Logger      *slog.Logger
}

// ApprovePackage approves the package and the version row of its current version.
// Approving an already approved package overwrites the stamp.
func (uc ApprovalUseCase) ApprovePackage(ctx context.Context, cmd ApprovePackageCommand) (entities.PricingPackage, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Approver) == "" {
		return entities.PricingPackage{}, domainerrors.ErrApproverRequired
	}
	pkg, err := uc.Packages.GetPackage(ctx, strings.TrimSpace(cmd.PackageID))
	if err != nil {
		return entities.PricingPackage{}, err
	}

	now := nowFrom(uc.Clock)
	approved, err := pkg.Approve(cmd.Approver, now)
	if err != nil {
		return entities.PricingPackage{}, err
	}
	event, err := newPackageEvent(ctx, uc.IDGenerator, eventApproved, approved, entities.PricingPackageVersion{
		Version: approved.CurrentVersion,
	}, *approved.ApprovedBy, now)
	if err != nil {
		return entities.PricingPackage{}, err
	}
	if err := uc.Packages.ApprovePackage(ctx, approved, event); err != nil {
		logger.Error("pricing package approval failed",
			"event", "pricing_package_approve_failed",
			"module", moduleName,
			"layer", "application",
			"package_id", pkg.PackageID,
			"error", err.Error(),
		)
		return entities.PricingPackage{}, err
	}
	application.ResolveMetrics(uc.Metrics).Approved(ApprovalKindPackage)

	logger.Info("pricing package approved",
		"event", "pricing_package_approved",
		"module", moduleName,
		"layer", "application",
		"package_id", approved.PackageID,
		"version", approved.CurrentVersion,
		"approved_by", *approved.ApprovedBy,
	)
	return approved, nil
}

// ApproveVersion approves one history entry; the package row is untouched.
func (uc ApprovalUseCase) ApproveVersion(ctx context.Context, cmd ApproveVersionCommand) (entities.PricingPackageVersion, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Approver) == "" {
		return entities.PricingPackageVersion{}, domainerrors.ErrApproverRequired
	}
	pkg, err := uc.Packages.GetPackage(ctx, strings.TrimSpace(cmd.PackageID))
	if err != nil {
		return entities.PricingPackageVersion{}, err
	}
	version, err := uc.Packages.GetVersion(ctx, pkg.PackageID, strings.TrimSpace(cmd.VersionID))
	if err != nil {
		return entities.PricingPackageVersion{}, err
	}
	if err := services.EnsureVersionBelongs(pkg, version); err != nil {
		return entities.PricingPackageVersion{}, err
	}

	now := nowFrom(uc.Clock)
	approved, err := version.Approve(cmd.Approver, now)
	if err != nil {
		return entities.PricingPackageVersion{}, err
	}
	event, err := newPackageEvent(ctx, uc.IDGenerator, eventVersionApproved, pkg, approved, *approved.ApprovedBy, now)
	if err != nil {
		return entities.PricingPackageVersion{}, err
	}
	if err := uc.Packages.ApproveVersion(ctx, approved, event); err != nil {
		logger.Error("pricing package version approval failed",
			"event", "pricing_package_version_approve_failed",
			"module", moduleName,
			"layer", "application",
			"package_id", pkg.PackageID,
			"version_id", version.VersionID,
			"error", err.Error(),
		)
		return entities.PricingPackageVersion{}, err
	}
	application.ResolveMetrics(uc.Metrics).Approved(ApprovalKindVersion)

	logger.Info("pricing package version approved",
		"event", "pricing_package_version_approved",
		"module", moduleName,
		"layer", "application",
		"package_id", pkg.PackageID,
		"version_id", approved.VersionID,
		"version", approved.Version,
		"approved_by", *approved.ApprovedBy,
	)
	return approved, nil
}
