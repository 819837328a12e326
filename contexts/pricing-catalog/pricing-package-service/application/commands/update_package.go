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

// UpdatePackageCommand carries an admin edit. Nil fields are left unchanged;
// a non-nil File replaces the package document.
type UpdatePackageCommand struct {
	PackageID   string
	Segment     *string
	YearID      *string
	PackageName *string
	File        *ports.FileUpload
	Uploader    string
}

type UpdatePackageResult struct {
	Package entities.PricingPackage
	// NewVersion is set only when the file was replaced.
	NewVersion *entities.PricingPackageVersion
}

type UpdatePackageUseCase struct {
	Packages    ports.PackageRepository
	Years       ports.YearRepository
	Files       ports.FileStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Metrics     ports.WorkflowMetrics
	Logger      *slog.Logger
}

// Execute applies field edits. Without a file only the edited columns are
// written, so a concurrent approval or upload survives. A file replacement
// bumps current_version, clears approval and records the new version row in
// the same write.
func (uc UpdatePackageUseCase) Execute(ctx context.Context, cmd UpdatePackageCommand) (UpdatePackageResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Uploader) == "" {
		return UpdatePackageResult{}, domainerrors.ErrUploaderRequired
	}

	current, err := uc.Packages.GetPackage(ctx, strings.TrimSpace(cmd.PackageID))
	if err != nil {
		return UpdatePackageResult{}, err
	}

	now := nowFrom(uc.Clock)
	next := current
	if cmd.Segment != nil {
		next.Segment = entities.Segment(strings.TrimSpace(*cmd.Segment))
	}
	if cmd.YearID != nil {
		next.YearID = strings.TrimSpace(*cmd.YearID)
		if next.YearID != current.YearID {
			if _, err := uc.Years.GetYear(ctx, next.YearID); err != nil {
				return UpdatePackageResult{}, err
			}
		}
	}
	if cmd.PackageName != nil {
		next.PackageName = strings.TrimSpace(*cmd.PackageName)
	}
	if err := next.Validate(); err != nil {
		return UpdatePackageResult{}, err
	}

	if cmd.File == nil || cmd.File.Body == nil {
		next.UpdatedAt = now
		stored, err := uc.Packages.UpdatePackageFields(ctx, next)
		if err != nil {
			return UpdatePackageResult{}, err
		}
		logger.Info("pricing package updated",
			"event", "pricing_package_updated",
			"module", moduleName,
			"layer", "application",
			"package_id", stored.PackageID,
			"file_replaced", false,
			"approved", stored.Approved,
		)
		return UpdatePackageResult{Package: stored}, nil
	}

	storedPath, err := uc.Files.Save(ctx, PackageFileDir, *cmd.File)
	if err != nil {
		logger.Error("pricing package file store failed",
			"event", "pricing_package_file_store_failed",
			"module", moduleName,
			"layer", "application",
			"package_id", current.PackageID,
			"error", err.Error(),
		)
		return UpdatePackageResult{}, err
	}
	versionID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return UpdatePackageResult{}, err
	}
	replaced, version, err := services.ReplacePackageFile(next, storedPath, versionID, cmd.Uploader, now)
	if err != nil {
		return UpdatePackageResult{}, err
	}
	event, err := newPackageEvent(ctx, uc.IDGenerator, eventVersionUploaded, replaced, version, version.Uploader, now)
	if err != nil {
		return UpdatePackageResult{}, err
	}

	if err := uc.Packages.SavePackage(ctx, replaced, &version, &event); err != nil {
		logger.Error("pricing package version write failed",
			"event", "pricing_package_version_write_failed",
			"module", moduleName,
			"layer", "application",
			"package_id", replaced.PackageID,
			"version", version.Version,
			"error", err.Error(),
		)
		return UpdatePackageResult{}, err
	}
	application.ResolveMetrics(uc.Metrics).VersionRecorded(string(replaced.Segment))

	logger.Info("pricing package file replaced",
		"event", "pricing_package_version_uploaded",
		"module", moduleName,
		"layer", "application",
		"package_id", replaced.PackageID,
		"previous_version", current.CurrentVersion,
		"current_version", replaced.CurrentVersion,
		"approval_reset", current.Approved,
		"uploader", version.Uploader,
	)
	return UpdatePackageResult{Package: replaced, NewVersion: &version}, nil
}
