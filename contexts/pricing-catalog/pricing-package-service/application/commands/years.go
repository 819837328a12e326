package commands

import (
	"context"
	"log/slog"
	"strings"

	application "venuenouveau/contexts/pricing-catalog/pricing-package-service/application"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
)

type CreateYearCommand struct {
	Year int
}

type CreateYearUseCase struct {
	Years       ports.YearRepository
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreateYearUseCase) Execute(ctx context.Context, cmd CreateYearCommand) (entities.Year, error) {
	logger := application.ResolveLogger(uc.Logger)
	yearID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Year{}, err
	}
	year, err := entities.NewYear(yearID, cmd.Year)
	if err != nil {
		return entities.Year{}, err
	}
	if err := uc.Years.CreateYear(ctx, year); err != nil {
		logger.Warn("create year failed",
			"event", "pricing_year_create_failed",
			"module", moduleName,
			"layer", "application",
			"year", cmd.Year,
			"error", err.Error(),
		)
		return entities.Year{}, err
	}

	logger.Info("pricing year created",
		"event", "pricing_year_created",
		"module", moduleName,
		"layer", "application",
		"year_id", year.YearID,
		"year", year.Year,
	)
	return year, nil
}

type DeleteYearUseCase struct {
	Years  ports.YearRepository
	Logger *slog.Logger
}

// Execute removes a year; packages filed under it are removed with it.
func (uc DeleteYearUseCase) Execute(ctx context.Context, yearID string) error {
	logger := application.ResolveLogger(uc.Logger)
	yearID = strings.TrimSpace(yearID)
	if yearID == "" {
		return domainerrors.ErrYearNotFound
	}
	if err := uc.Years.DeleteYear(ctx, yearID); err != nil {
		return err
	}
	logger.Info("pricing year deleted",
		"event", "pricing_year_deleted",
		"module", moduleName,
		"layer", "application",
		"year_id", yearID,
	)
	return nil
}
