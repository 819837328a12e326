package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope published by the CMS.
// This package is contract-only and must stay backward compatible.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id,omitempty"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

// Event types emitted by the pricing catalog.
const (
	EventPricingPackageCreated         = "pricing_package.created"
	EventPricingPackageVersionUploaded = "pricing_package.version_uploaded"
	EventPricingPackageApproved        = "pricing_package.approved"
	EventPricingPackageVersionApproved = "pricing_package.version_approved"
)
