package ports

import "encoding/json"

const sourceService = "pricing-package-service"

// Envelope renders the event in the canonical contract shape.
func (e PackageEvent) Envelope() (EventEnvelope, error) {
	data, err := json.Marshal(map[string]any{
		"package_id": e.PackageID,
		"version_id": e.VersionID,
		"version":    e.Version,
		"segment":    e.Segment,
		"actor":      e.Actor,
	})
	if err != nil {
		return EventEnvelope{}, err
	}
	return EventEnvelope{
		EventID:          e.EventID,
		EventType:        e.EventType,
		OccurredAt:       e.OccurredAt.UTC(),
		SourceService:    sourceService,
		SchemaVersion:    1,
		PartitionKeyPath: "package_id",
		PartitionKey:     e.PartitionKey,
		Data:             data,
	}, nil
}
