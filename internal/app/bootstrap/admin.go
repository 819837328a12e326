package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	pageservice "venuenouveau/contexts/content-publishing/page-service"
	pricingpackageservice "venuenouveau/contexts/pricing-catalog/pricing-package-service"
	"venuenouveau/internal/platform/config"
	"venuenouveau/internal/platform/db"
	"venuenouveau/internal/platform/logging"
	"venuenouveau/internal/platform/storage"
)

// AdminApp backs cmsctl. It talks to Postgres directly; workflow events it
// produces land in the outbox and are relayed by the worker.
type AdminApp struct {
	Pages    pageservice.Module
	Pricing  pricingpackageservice.Module
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAdmin(_ context.Context) (*AdminApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// stdout belongs to command output.
	logger := logging.New(os.Stderr, cfg.LogLevel, "text").
		With("service", cfg.ServiceName, "process", "cmsctl")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	local, err := storage.NewLocal(cfg.MediaRoot, cfg.MediaURL, logger)
	if err != nil {
		return nil, err
	}
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	pages, pricing := postgresModules(cfg, pg, local, nil, nil, logger)
	return &AdminApp{
		Pages:    pages,
		Pricing:  pricing,
		postgres: pg,
		logger:   logger,
	}, nil
}

// Migrate creates or updates every table owned by the service contexts.
func (a *AdminApp) Migrate(ctx context.Context) error {
	return a.postgres.Migrate(ctx, a.logger, Models()...)
}

func (a *AdminApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}
