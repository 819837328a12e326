package commands

import (
	"context"
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
	contractsv1 "venuenouveau/contracts/gen/events/v1"
)

const moduleName = "pricing-catalog/pricing-package-service"

const (
	ApprovalKindPackage = "package"
	ApprovalKindVersion = "version"
)

func newPackageEvent(
	ctx context.Context,
	ids ports.IDGenerator,
	eventType string,
	pkg entities.PricingPackage,
	version entities.PricingPackageVersion,
	actor string,
	now time.Time,
) (ports.PackageEvent, error) {
	eventID, err := ids.NewID(ctx)
	if err != nil {
		return ports.PackageEvent{}, err
	}
	return ports.PackageEvent{
		EventID:      eventID,
		EventType:    eventType,
		PackageID:    pkg.PackageID,
		VersionID:    version.VersionID,
		Version:      version.Version,
		Segment:      string(pkg.Segment),
		Actor:        actor,
		PartitionKey: pkg.PackageID,
		OccurredAt:   now.UTC(),
	}, nil
}

var (
	eventCreated         = contractsv1.EventPricingPackageCreated
	eventVersionUploaded = contractsv1.EventPricingPackageVersionUploaded
	eventApproved        = contractsv1.EventPricingPackageApproved
	eventVersionApproved = contractsv1.EventPricingPackageVersionApproved
)

func nowFrom(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}
