package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	pageservice "venuenouveau/contexts/content-publishing/page-service"
	pagememory "venuenouveau/contexts/content-publishing/page-service/adapters/memory"
	pagepostgres "venuenouveau/contexts/content-publishing/page-service/adapters/postgres"
	pricingpackageservice "venuenouveau/contexts/pricing-catalog/pricing-package-service"
	pricingmemory "venuenouveau/contexts/pricing-catalog/pricing-package-service/adapters/memory"
	pricingpostgres "venuenouveau/contexts/pricing-catalog/pricing-package-service/adapters/postgres"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/workers"
	contractsv1 "venuenouveau/contracts/gen/events/v1"
	"venuenouveau/internal/platform/config"
	"venuenouveau/internal/platform/db"
	"venuenouveau/internal/platform/httpserver"
	"venuenouveau/internal/platform/logging"
	"venuenouveau/internal/platform/messaging"
	"venuenouveau/internal/platform/metrics"
	"venuenouveau/internal/platform/otel"
	"venuenouveau/internal/platform/storage"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const moduleName = "internal/app/bootstrap"

// eventBus is satisfied by both the in-process bus and the NATS connection.
type eventBus interface {
	Publish(ctx context.Context, topic string, event contractsv1.Envelope) error
	Subscribe(ctx context.Context, topic string, consumer string, handler func(context.Context, contractsv1.Envelope) error) error
	Close() error
}

type APIApp struct {
	server       *httpserver.Server
	postgres     *db.Postgres
	relay        *relayLoop
	bus          eventBus
	topicPrefix  string
	shutdownOtel func(context.Context) error
	logger       *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	relay         relayLoop
	bus           eventBus
	topicPrefix   string
	metricsServer *http.Server
	shutdownOtel  func(context.Context) error
	logger        *slog.Logger
}

// NewLogger builds the process logger and installs it as the slog default.
func NewLogger(cfg config.Config, process string) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat).
		With("service", cfg.ServiceName, "process", process)
	slog.SetDefault(logger)
	return logger
}

// BuildAPI wires the HTTP process. Without POSTGRES_DSN it runs on the
// in-memory adapters and relays its own outbox to the in-process bus.
func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg, "api")

	shutdownOtel, err := otel.Setup(ctx, cfg.ServiceName, cfg.OTELEndpoint)
	if err != nil {
		return nil, err
	}
	registry := metrics.NewRegistry()

	local, err := storage.NewLocal(cfg.MediaRoot, cfg.MediaURL, logger)
	if err != nil {
		_ = shutdownOtel(ctx)
		return nil, err
	}

	app := &APIApp{
		topicPrefix:  cfg.EventSubjectPrefix,
		shutdownOtel: shutdownOtel,
		logger:       logger,
	}

	var (
		pages   pageservice.Module
		pricing pricingpackageservice.Module
	)
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Warn("POSTGRES_DSN not set, using in-memory adapters",
			"event", "bootstrap_in_memory_mode",
			"module", moduleName,
			"layer", "platform",
		)
		bus := messaging.NewBus(logger)
		pages, pricing = inMemoryModules(cfg, local, bus, registry, logger)
		app.bus = bus
		app.relay = &relayLoop{
			relay:       pricing.Relay,
			metrics:     registry,
			interval:    cfg.OutboxPollInterval,
			keepPolling: true,
			logger:      logger,
		}
	} else {
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			_ = shutdownOtel(ctx)
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, logger, Models()...); err != nil {
				_ = pg.Close()
				_ = shutdownOtel(ctx)
				return nil, err
			}
		}
		app.postgres = pg
		pages, pricing = postgresModules(cfg, pg, local, nil, registry, logger)
	}

	app.server = httpserver.New(pages, pricing, httpserver.Options{
		Metrics:        registry,
		MediaURL:       cfg.MediaURL,
		MediaDir:       local.Dir(),
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, logger, cfg.Addr())
	return app, nil
}

// BuildWorker wires the outbox relay. It needs Postgres: the outbox of the
// in-memory adapters lives inside the API process.
func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg, "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	shutdownOtel, err := otel.Setup(ctx, cfg.ServiceName, cfg.OTELEndpoint)
	if err != nil {
		return nil, err
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		_ = shutdownOtel(ctx)
		return nil, err
	}

	bus, err := newEventBus(cfg, logger)
	if err != nil {
		_ = pg.Close()
		_ = shutdownOtel(ctx)
		return nil, err
	}

	registry := metrics.NewRegistry()
	repo := pricingpostgres.NewRepository(pg.DB, logger)
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", registry.Handler())

	return &WorkerApp{
		postgres: pg,
		relay: relayLoop{
			relay: workers.OutboxRelay{
				Outbox:      repo,
				Publisher:   bus,
				Clock:       pricingpostgres.SystemClock{},
				TopicPrefix: cfg.EventSubjectPrefix,
				BatchSize:   cfg.OutboxBatchSize,
				Logger:      logger,
			},
			metrics:  registry,
			interval: cfg.OutboxPollInterval,
			logger:   logger,
		},
		bus:         bus,
		topicPrefix: cfg.EventSubjectPrefix,
		metricsServer: &http.Server{
			Addr:              normalizeAddr(cfg.WorkerMetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownOtel: shutdownOtel,
		logger:       logger,
	}, nil
}

// Models lists every gorm model owned by the service contexts.
func Models() []any {
	return append(pagepostgres.Models(), pricingpostgres.Models()...)
}

func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", moduleName,
		"layer", "platform",
		"in_memory", a.postgres == nil,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	if a.relay != nil {
		if err := subscribeAudit(ctx, a.bus, a.topicPrefix, a.logger); err != nil {
			return err
		}
		go func() { errs <- a.relay.Run(ctx) }()
	}
	go func() { errs <- a.server.Start() }()

	select {
	case <-ctx.Done():
	case err := <-errs:
		if err != nil {
			return err
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	return a.server.Shutdown(shutdownCtx)
}

func (a *APIApp) Close() error {
	var errs []error
	if a.bus != nil {
		errs = append(errs, a.bus.Close())
	}
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	if a.shutdownOtel != nil {
		errs = append(errs, a.shutdownOtel(context.Background()))
	}
	return errors.Join(errs...)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := subscribeAudit(ctx, w.bus, w.topicPrefix, w.logger); err != nil {
		return err
	}

	go func() {
		if err := w.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.logger.Error("worker metrics listener failed",
				"event", "bootstrap_worker_metrics_failed",
				"module", moduleName,
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}()
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = w.metricsServer.Shutdown(shutdownCtx)
	}()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", moduleName,
		"layer", "platform",
		"poll_interval", w.relay.interval.String(),
	)
	return w.relay.Run(ctx)
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.bus != nil {
		errs = append(errs, w.bus.Close())
	}
	if w.postgres != nil {
		errs = append(errs, w.postgres.Close())
	}
	if w.shutdownOtel != nil {
		errs = append(errs, w.shutdownOtel(context.Background()))
	}
	return errors.Join(errs...)
}

func inMemoryModules(
	cfg config.Config,
	local *storage.Local,
	bus eventBus,
	registry *metrics.Registry,
	logger *slog.Logger,
) (pageservice.Module, pricingpackageservice.Module) {
	pageStore := pagememory.NewStore(nil)
	pages := pageservice.NewModule(pageservice.Dependencies{
		Pages:       pageStore,
		Gallery:     pageStore,
		Media:       storage.GalleryMedia{Local: local},
		Clock:       pageStore,
		IDGenerator: pageStore,
		Logger:      logger,
	})
	pages.Store = pageStore

	pricingStore := pricingmemory.NewStore(nil, logger)
	pricing := pricingpackageservice.NewModule(pricingpackageservice.Dependencies{
		Years:       pricingStore,
		Packages:    pricingStore,
		Outbox:      pricingStore,
		Files:       storage.PackageFiles{Local: local},
		Publisher:   bus,
		Clock:       pricingStore,
		IDGenerator: pricingStore,
		Metrics:     registry,
		TopicPrefix: cfg.EventSubjectPrefix,
		BatchSize:   cfg.OutboxBatchSize,
		Logger:      logger,
	})
	pricing.Store = pricingStore
	return pages, pricing
}

// postgresModules wires both contexts to Postgres. publisher may be nil when
// the caller never runs the relay.
func postgresModules(
	cfg config.Config,
	pg *db.Postgres,
	local *storage.Local,
	publisher eventBus,
	registry *metrics.Registry,
	logger *slog.Logger,
) (pageservice.Module, pricingpackageservice.Module) {
	pageRepo := pagepostgres.NewRepository(pg.DB, logger)
	pages := pageservice.NewModule(pageservice.Dependencies{
		Pages:       pageRepo,
		Gallery:     pageRepo,
		Media:       storage.GalleryMedia{Local: local},
		Clock:       pagepostgres.SystemClock{},
		IDGenerator: pagepostgres.UUIDGenerator{},
		Logger:      logger,
	})

	pricingRepo := pricingpostgres.NewRepository(pg.DB, logger)
	deps := pricingpackageservice.Dependencies{
		Years:       pricingRepo,
		Packages:    pricingRepo,
		Outbox:      pricingRepo,
		Files:       storage.PackageFiles{Local: local},
		Clock:       pricingpostgres.SystemClock{},
		IDGenerator: pricingpostgres.UUIDGenerator{},
		TopicPrefix: cfg.EventSubjectPrefix,
		BatchSize:   cfg.OutboxBatchSize,
		Logger:      logger,
	}
	if publisher != nil {
		deps.Publisher = publisher
	}
	if registry != nil {
		deps.Metrics = registry
	}
	return pages, pricingpackageservice.NewModule(deps)
}

func newEventBus(cfg config.Config, logger *slog.Logger) (eventBus, error) {
	if strings.TrimSpace(cfg.NATSURL) == "" {
		logger.Info("NATS_URL not set, relaying to the in-process bus",
			"event", "bootstrap_in_process_bus",
			"module", moduleName,
			"layer", "platform",
		)
		return messaging.NewBus(logger), nil
	}
	conn, err := messaging.ConnectNATS(cfg.NATSURL, cfg.ServiceName+"-worker", logger)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return conn, nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":9091"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
