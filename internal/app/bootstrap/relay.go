package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/workers"
	contractsv1 "venuenouveau/contracts/gen/events/v1"
	"venuenouveau/internal/platform/metrics"
)

const auditConsumer = "cms-audit-log"

// relayLoop drives the outbox relay on a fixed interval until ctx ends.
// With keepPolling set a failed cycle is logged and retried on the next
// tick instead of ending the loop.
type relayLoop struct {
	relay       workers.OutboxRelay
	metrics     *metrics.Registry
	interval    time.Duration
	keepPolling bool
	logger      *slog.Logger
}

func (l relayLoop) Run(ctx context.Context) error {
	interval := l.interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := l.relay.RunOnce(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil
		case err != nil && !l.keepPolling:
			return err
		case err != nil:
			l.logger.Warn("outbox relay cycle failed, retrying on next tick",
				"event", "bootstrap_relay_cycle_failed",
				"module", moduleName,
				"layer", "platform",
				"error", err.Error(),
			)
		case l.metrics != nil:
			l.metrics.RelayCycleCompleted()
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// subscribeAudit logs every pricing workflow event that reaches the bus.
func subscribeAudit(ctx context.Context, bus eventBus, topicPrefix string, logger *slog.Logger) error {
	if bus == nil {
		return nil
	}
	eventTypes := []string{
		contractsv1.EventPricingPackageCreated,
		contractsv1.EventPricingPackageVersionUploaded,
		contractsv1.EventPricingPackageApproved,
		contractsv1.EventPricingPackageVersionApproved,
	}
	for _, eventType := range eventTypes {
		topic := topicPrefix + eventType
		err := bus.Subscribe(ctx, topic, auditConsumer, func(_ context.Context, event contractsv1.Envelope) error {
			logger.Info("pricing workflow event",
				"event", "pricing_workflow_event_received",
				"module", moduleName,
				"layer", "platform",
				"topic", topic,
				"event_id", event.EventID,
				"event_type", event.EventType,
				"package_id", event.PartitionKey,
				"occurred_at", event.OccurredAt.Format(time.RFC3339),
			)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
