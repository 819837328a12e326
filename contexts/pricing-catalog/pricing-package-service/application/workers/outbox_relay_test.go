package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/adapters/memory"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/commands"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/workers"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	topics []string
	events []ports.EventEnvelope
	fail   error
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.fail != nil {
		return p.fail
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func seedPackage(t *testing.T, store *memory.Store) {
	t.Helper()
	_, err := commands.CreatePackageUseCase{
		Packages:    store,
		Years:       store,
		Files:       store,
		Clock:       store,
		IDGenerator: store,
	}.Execute(context.Background(), commands.CreatePackageCommand{
		Segment:     "venue_inclusive",
		YearID:      "year-2025",
		PackageName: "Venue Only",
		File:        &ports.FileUpload{Name: "venue.pdf", Body: strings.NewReader("pdf")},
		Uploader:    "alice",
	})
	require.NoError(t, err)
}

func TestOutboxRelayPublishesAndMarksSent(t *testing.T) {
	store := memory.NewStore([]entities.Year{{YearID: "year-2025", Year: 2025}}, nil)
	store.SetClock(func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) })
	seedPackage(t, store)

	publisher := &capturePublisher{}
	relay := workers.OutboxRelay{
		Outbox:      store,
		Publisher:   publisher,
		Clock:       store,
		TopicPrefix: "cms.",
	}
	require.NoError(t, relay.RunOnce(context.Background()))

	require.Len(t, publisher.events, 1)
	assert.Equal(t, []string{"cms.pricing_package.created"}, publisher.topics)
	envelope := publisher.events[0]
	assert.Equal(t, "pricing-package-service", envelope.SourceService)
	assert.Equal(t, "package_id", envelope.PartitionKeyPath)

	var data map[string]any
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, envelope.PartitionKey, data["package_id"])
	assert.Equal(t, "alice", data["actor"])
	assert.EqualValues(t, 1, data["version"])

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, relay.RunOnce(context.Background()))
	assert.Len(t, publisher.events, 1, "sent rows are not relayed twice")
}

func TestOutboxRelayKeepsRowsPendingOnPublishFailure(t *testing.T) {
	store := memory.NewStore([]entities.Year{{YearID: "year-2025", Year: 2025}}, nil)
	seedPackage(t, store)

	relay := workers.OutboxRelay{
		Outbox:    store,
		Publisher: &capturePublisher{fail: errors.New("bus down")},
	}
	require.Error(t, relay.RunOnce(context.Background()))

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
