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

// PackageFileDir is where package documents are stored.
const PackageFileDir = "packages"

type CreatePackageCommand struct {
	Segment     string
	YearID      string
	PackageName string
	File        *ports.FileUpload
	Uploader    string
}

type CreatePackageResult struct {
	Package entities.PricingPackage
	Version entities.PricingPackageVersion
}

type CreatePackageUseCase struct {
	Packages    ports.PackageRepository
	Years       ports.YearRepository
	Files       ports.FileStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Metrics     ports.WorkflowMetrics
	Logger      *slog.Logger
}

// Execute runs the creation workflow in this order:
// 1) input and year validation
// 2) document storage
// 3) atomic package + version 1 + outbox persistence.
func (uc CreatePackageUseCase) Execute(ctx context.Context, cmd CreatePackageCommand) (CreatePackageResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Uploader) == "" {
		return CreatePackageResult{}, domainerrors.ErrUploaderRequired
	}
	if cmd.File == nil || cmd.File.Body == nil {
		return CreatePackageResult{}, domainerrors.ErrFileRequired
	}
	segment := entities.Segment(strings.TrimSpace(cmd.Segment))
	if !segment.Valid() {
		return CreatePackageResult{}, domainerrors.ErrInvalidSegment
	}
	if _, err := uc.Years.GetYear(ctx, strings.TrimSpace(cmd.YearID)); err != nil {
		return CreatePackageResult{}, err
	}

	now := nowFrom(uc.Clock)
	packageID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreatePackageResult{}, err
	}
	// Validate fields before the upload so rejected requests leave no files behind.
	if _, err := entities.NewPricingPackage(packageID, segment, cmd.YearID, cmd.PackageName, "pending", now); err != nil {
		return CreatePackageResult{}, err
	}

	storedPath, err := uc.Files.Save(ctx, PackageFileDir, *cmd.File)
	if err != nil {
		logger.Error("pricing package file store failed",
			"event", "pricing_package_file_store_failed",
			"module", moduleName,
			"layer", "application",
			"error", err.Error(),
		)
		return CreatePackageResult{}, err
	}

	pkg, err := entities.NewPricingPackage(packageID, segment, cmd.YearID, cmd.PackageName, storedPath, now)
	if err != nil {
		return CreatePackageResult{}, err
	}
	versionID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreatePackageResult{}, err
	}
	version, err := services.StartHistory(pkg, versionID, cmd.Uploader, now)
	if err != nil {
		return CreatePackageResult{}, err
	}
	event, err := newPackageEvent(ctx, uc.IDGenerator, eventCreated, pkg, version, version.Uploader, now)
	if err != nil {
		return CreatePackageResult{}, err
	}

	if err := uc.Packages.CreatePackage(ctx, pkg, version, event); err != nil {
		logger.Error("pricing package create failed on write transaction",
			"event", "pricing_package_create_failed",
			"module", moduleName,
			"layer", "application",
			"package_id", pkg.PackageID,
			"error", err.Error(),
		)
		return CreatePackageResult{}, err
	}
	application.ResolveMetrics(uc.Metrics).VersionRecorded(string(pkg.Segment))

	logger.Info("pricing package created",
		"event", "pricing_package_created",
		"module", moduleName,
		"layer", "application",
		"package_id", pkg.PackageID,
		"segment", pkg.Segment,
		"year_id", pkg.YearID,
		"uploader", version.Uploader,
	)
	return CreatePackageResult{Package: pkg, Version: version}, nil
}
