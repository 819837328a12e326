package ports

import (
	"context"
	"io"
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	contractsv1 "venuenouveau/contracts/gen/events/v1"
)

// YearRepository owns the catalog year registry.
type YearRepository interface {
	CreateYear(ctx context.Context, year entities.Year) error
	GetYear(ctx context.Context, yearID string) (entities.Year, error)
	GetYearByValue(ctx context.Context, value int) (entities.Year, error)
	ListYears(ctx context.Context) ([]entities.Year, error)
	// DeleteYear removes the year and every package filed under it.
	DeleteYear(ctx context.Context, yearID string) error
}

// PackageFilter narrows package listings.
type PackageFilter struct {
	Segment      entities.Segment
	YearID       string
	ApprovedOnly bool
}

// PackageEvent is the outbound integration payload persisted to the outbox
// together with the state change that produced it.
type PackageEvent struct {
	EventID      string
	EventType    string
	PackageID    string
	VersionID    string
	Version      int
	Segment      string
	Actor        string
	PartitionKey string
	OccurredAt   time.Time
}

// PackageRepository owns package/version persistence and the transaction
// boundaries of the version-and-approval workflow.
type PackageRepository interface {
	GetPackage(ctx context.Context, packageID string) (entities.PricingPackage, error)
	ListPackages(ctx context.Context, filter PackageFilter) ([]entities.PricingPackage, error)
	ListVersions(ctx context.Context, packageID string) ([]entities.PricingPackageVersion, error)
	GetVersion(ctx context.Context, packageID string, versionID string) (entities.PricingPackageVersion, error)
	// CreatePackage must atomically persist the package, its first version and the event.
	CreatePackage(ctx context.Context, pkg entities.PricingPackage, first entities.PricingPackageVersion, event PackageEvent) error
	// UpdatePackageFields writes segment, year, name and updated_at only and
	// returns the stored package. Version and approval columns are untouched.
	UpdatePackageFields(ctx context.Context, pkg entities.PricingPackage) (entities.PricingPackage, error)
	// SavePackage persists a file replacement. When version is non-nil the new
	// version row and event are written in the same transaction.
	SavePackage(ctx context.Context, pkg entities.PricingPackage, version *entities.PricingPackageVersion, event *PackageEvent) error
	// ApprovePackage writes the package approval stamp and copies it onto the
	// version row matching pkg.CurrentVersion.
	ApprovePackage(ctx context.Context, pkg entities.PricingPackage, event PackageEvent) error
	// ApproveVersion writes the approval stamp of one version row.
	ApproveVersion(ctx context.Context, version entities.PricingPackageVersion, event PackageEvent) error
	DeletePackage(ctx context.Context, packageID string) error
}

// FileUpload is an incoming document to store.
type FileUpload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// FileStore persists uploaded documents and returns their stored path.
type FileStore interface {
	Save(ctx context.Context, dir string, upload FileUpload) (string, error)
	URL(path string) string
}

// Clock allows deterministic testing of audit timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// WorkflowMetrics receives counters for workflow transitions.
type WorkflowMetrics interface {
	VersionRecorded(segment string)
	Approved(kind string)
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventEnvelope reuses the canonical envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
