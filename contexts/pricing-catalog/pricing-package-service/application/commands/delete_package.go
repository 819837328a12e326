package commands

import (
	"context"
	"log/slog"
	"strings"

	application "venuenouveau/contexts/pricing-catalog/pricing-package-service/application"
	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
)

type DeletePackageUseCase struct {
	Packages ports.PackageRepository
	Logger   *slog.Logger
}

// Execute removes the package together with its version history.
func (uc DeletePackageUseCase) Execute(ctx context.Context, packageID string) error {
	logger := application.ResolveLogger(uc.Logger)
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return domainerrors.ErrPackageNotFound
	}
	if err := uc.Packages.DeletePackage(ctx, packageID); err != nil {
		return err
	}
	logger.Info("pricing package deleted",
		"event", "pricing_package_deleted",
		"module", moduleName,
		"layer", "application",
		"package_id", packageID,
	)
	return nil
}
