package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/workers"
	pricingports "venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
	pricinghttp "venuenouveau/contexts/pricing-catalog/pricing-package-service/transport/http"
	contractsv1 "venuenouveau/contracts/gen/events/v1"
	"venuenouveau/internal/platform/config"
	"venuenouveau/internal/platform/messaging"
	"venuenouveau/internal/platform/metrics"
	"venuenouveau/internal/platform/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsCoverBothContexts(t *testing.T) {
	assert.Len(t, Models(), 6)
}

func TestNormalizeAddr(t *testing.T) {
	assert.Equal(t, ":9091", normalizeAddr(""))
	assert.Equal(t, ":9100", normalizeAddr("9100"))
	assert.Equal(t, ":9100", normalizeAddr(":9100"))
}

func TestInMemoryModulesRelayWorkflowEventsToBus(t *testing.T) {
	cfg := config.Config{EventSubjectPrefix: "cms.", OutboxBatchSize: 10}
	local, err := storage.NewLocal(t.TempDir(), "/media/", nil)
	require.NoError(t, err)
	bus := messaging.NewBus(nil)
	registry := metrics.NewRegistry()

	pages, pricing := inMemoryModules(cfg, local, bus, registry, nil)
	require.NotNil(t, pages.Store)
	require.NotNil(t, pricing.Store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan contractsv1.Envelope, 4)
	require.NoError(t, bus.Subscribe(ctx, "cms."+contractsv1.EventPricingPackageCreated, "test", func(_ context.Context, event contractsv1.Envelope) error {
		received <- event
		return nil
	}))
	require.NoError(t, subscribeAudit(ctx, bus, "cms.", slog.Default()))

	year, err := pricing.Handler.CreateYearHandler(ctx, pricinghttp.CreateYearRequest{Year: 2027})
	require.NoError(t, err)
	created, err := pricing.Handler.CreatePackageHandler(ctx, "alice", pricinghttp.CreatePackageRequest{
		Segment:     "weekday",
		YearID:      year.YearID,
		PackageName: "Midweek",
	}, &pricingports.FileUpload{Name: "midweek.pdf", Body: strings.NewReader("pdf")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.Package.FileURL, "/media/"), created.Package.FileURL)

	loop := relayLoop{relay: pricing.Relay, metrics: registry, interval: 10 * time.Millisecond, logger: slog.Default()}
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case event := <-received:
		assert.Equal(t, contractsv1.EventPricingPackageCreated, event.EventType)
		assert.Equal(t, created.Package.PackageID, event.PartitionKey)
	case <-time.After(2 * time.Second):
		t.Fatal("created event was not relayed")
	}

	cancel()
	require.NoError(t, <-done)
}

type flakyOutbox struct {
	calls atomic.Int32
}

func (o *flakyOutbox) ListPendingOutbox(context.Context, int) ([]pricingports.OutboxMessage, error) {
	o.calls.Add(1)
	return nil, errors.New("outbox unavailable")
}

func (o *flakyOutbox) MarkOutboxSent(context.Context, string, time.Time) error {
	return nil
}

func TestRelayLoopKeepPollingSurvivesFailedCycles(t *testing.T) {
	outbox := &flakyOutbox{}
	loop := relayLoop{
		relay:       workers.OutboxRelay{Outbox: outbox, Publisher: messaging.NewBus(nil)},
		interval:    5 * time.Millisecond,
		keepPolling: true,
		logger:      slog.Default(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	require.Eventually(t, func() bool { return outbox.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestRelayLoopStopsOnFailureWithoutKeepPolling(t *testing.T) {
	loop := relayLoop{
		relay:    workers.OutboxRelay{Outbox: &flakyOutbox{}, Publisher: messaging.NewBus(nil)},
		interval: 5 * time.Millisecond,
		logger:   slog.Default(),
	}
	require.EqualError(t, loop.Run(context.Background()), "outbox unavailable")
}
