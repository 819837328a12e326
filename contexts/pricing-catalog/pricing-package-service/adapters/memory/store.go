package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	application "venuenouveau/contexts/pricing-catalog/pricing-package-service/application"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
)

// Store is an in-memory adapter implementing the pricing catalog ports for
// local runtime and tests. It is not intended as production persistence.
type Store struct {
	mu          sync.RWMutex
	years       map[string]entities.Year
	packages    map[string]entities.PricingPackage
	versions    map[string]entities.PricingPackageVersion
	files       map[string][]byte
	outbox      map[string]ports.OutboxMessage
	outboxOrder []string
	outboxSent  map[string]time.Time
	now         func() time.Time
	sequence    uint64
	logger      *slog.Logger
}

func NewStore(seedYears []entities.Year, logger *slog.Logger) *Store {
	years := make(map[string]entities.Year, len(seedYears))
	for _, year := range seedYears {
		years[year.YearID] = year
	}
	return &Store{
		years:      years,
		packages:   make(map[string]entities.PricingPackage),
		versions:   make(map[string]entities.PricingPackageVersion),
		files:      make(map[string][]byte),
		outbox:     make(map[string]ports.OutboxMessage),
		outboxSent: make(map[string]time.Time),
		logger:     application.ResolveLogger(logger),
	}
}

// SetClock pins Now for deterministic tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) CreateYear(_ context.Context, year entities.Year) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.years {
		if existing.Year == year.Year {
			return domainerrors.ErrYearTaken
		}
	}
	if _, ok := s.years[year.YearID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.years[year.YearID] = year
	return nil
}

func (s *Store) GetYear(_ context.Context, yearID string) (entities.Year, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	year, ok := s.years[yearID]
	if !ok {
		return entities.Year{}, domainerrors.ErrYearNotFound
	}
	return year, nil
}

func (s *Store) GetYearByValue(_ context.Context, value int) (entities.Year, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, year := range s.years {
		if year.Year == value {
			return year, nil
		}
	}
	return entities.Year{}, domainerrors.ErrYearNotFound
}

func (s *Store) ListYears(_ context.Context) ([]entities.Year, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Year, 0, len(s.years))
	for _, year := range s.years {
		items = append(items, year)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Year < items[j].Year })
	return items, nil
}

func (s *Store) DeleteYear(_ context.Context, yearID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.years[yearID]; !ok {
		return domainerrors.ErrYearNotFound
	}
	delete(s.years, yearID)
	for id, pkg := range s.packages {
		if pkg.YearID == yearID {
			s.deletePackageLocked(id)
		}
	}
	return nil
}

func (s *Store) GetPackage(_ context.Context, packageID string) (entities.PricingPackage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pkg, ok := s.packages[packageID]
	if !ok {
		return entities.PricingPackage{}, domainerrors.ErrPackageNotFound
	}
	return pkg, nil
}

func (s *Store) ListPackages(_ context.Context, filter ports.PackageFilter) ([]entities.PricingPackage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.PricingPackage, 0, len(s.packages))
	for _, pkg := range s.packages {
		if filter.Segment != "" && pkg.Segment != filter.Segment {
			continue
		}
		if filter.YearID != "" && pkg.YearID != filter.YearID {
			continue
		}
		if filter.ApprovedOnly && !pkg.Approved {
			continue
		}
		items = append(items, pkg)
	}
	sort.Slice(items, func(i, j int) bool {
		yi, yj := s.years[items[i].YearID].Year, s.years[items[j].YearID].Year
		if yi != yj {
			return yi > yj
		}
		if items[i].Segment != items[j].Segment {
			return items[i].Segment < items[j].Segment
		}
		return items[i].PackageID < items[j].PackageID
	})
	return items, nil
}

func (s *Store) ListVersions(_ context.Context, packageID string) ([]entities.PricingPackageVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.PricingPackageVersion, 0)
	for _, version := range s.versions {
		if version.PackageID == packageID {
			items = append(items, version)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Version > items[j].Version })
	return items, nil
}

func (s *Store) GetVersion(_ context.Context, packageID string, versionID string) (entities.PricingPackageVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.versions[versionID]
	if !ok || version.PackageID != packageID {
		return entities.PricingPackageVersion{}, domainerrors.ErrVersionNotFound
	}
	return version, nil
}

func (s *Store) CreatePackage(
	_ context.Context,
	pkg entities.PricingPackage,
	first entities.PricingPackageVersion,
	event ports.PackageEvent,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A single mutex critical section approximates transactional semantics for
	// tests: package, version and outbox rows succeed or fail together.
	if _, ok := s.packages[pkg.PackageID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	if _, ok := s.years[pkg.YearID]; !ok {
		return domainerrors.ErrYearNotFound
	}
	if err := s.checkVersionLocked(first); err != nil {
		return err
	}
	if err := s.appendOutboxLocked(event); err != nil {
		return err
	}
	s.packages[pkg.PackageID] = pkg
	s.versions[first.VersionID] = first
	return nil
}

func (s *Store) UpdatePackageFields(_ context.Context, pkg entities.PricingPackage) (entities.PricingPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.packages[pkg.PackageID]
	if !ok {
		return entities.PricingPackage{}, domainerrors.ErrPackageNotFound
	}
	existing.Segment = pkg.Segment
	existing.YearID = pkg.YearID
	existing.PackageName = pkg.PackageName
	existing.UpdatedAt = pkg.UpdatedAt
	s.packages[pkg.PackageID] = existing
	return existing, nil
}

func (s *Store) SavePackage(
	_ context.Context,
	pkg entities.PricingPackage,
	version *entities.PricingPackageVersion,
	event *ports.PackageEvent,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.packages[pkg.PackageID]
	if !ok {
		return domainerrors.ErrPackageNotFound
	}
	if pkg.CurrentVersion < existing.CurrentVersion {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	if version != nil {
		if err := s.checkVersionLocked(*version); err != nil {
			return err
		}
	}
	if event != nil {
		if err := s.appendOutboxLocked(*event); err != nil {
			return err
		}
	}
	s.packages[pkg.PackageID] = pkg
	if version != nil {
		s.versions[version.VersionID] = *version
	}
	return nil
}

func (s *Store) ApprovePackage(_ context.Context, pkg entities.PricingPackage, event ports.PackageEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.packages[pkg.PackageID]
	if !ok {
		return domainerrors.ErrPackageNotFound
	}
	if err := s.appendOutboxLocked(event); err != nil {
		return err
	}
	existing.Approval = pkg.Approval
	existing.UpdatedAt = pkg.UpdatedAt
	s.packages[pkg.PackageID] = existing
	for id, version := range s.versions {
		if version.PackageID == existing.PackageID && version.Version == existing.CurrentVersion {
			version.Approval = pkg.Approval
			s.versions[id] = version
		}
	}
	return nil
}

func (s *Store) ApproveVersion(_ context.Context, version entities.PricingPackageVersion, event ports.PackageEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.versions[version.VersionID]
	if !ok || existing.PackageID != version.PackageID {
		return domainerrors.ErrVersionNotFound
	}
	if err := s.appendOutboxLocked(event); err != nil {
		return err
	}
	existing.Approval = version.Approval
	s.versions[version.VersionID] = existing
	return nil
}

func (s *Store) DeletePackage(_ context.Context, packageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.packages[packageID]; !ok {
		return domainerrors.ErrPackageNotFound
	}
	s.deletePackageLocked(packageID)
	return nil
}

func (s *Store) deletePackageLocked(packageID string) {
	delete(s.packages, packageID)
	for id, version := range s.versions {
		if version.PackageID == packageID {
			delete(s.versions, id)
		}
	}
}

func (s *Store) checkVersionLocked(version entities.PricingPackageVersion) error {
	if _, ok := s.versions[version.VersionID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	for _, existing := range s.versions {
		if existing.PackageID == version.PackageID && existing.Version == version.Version {
			return domainerrors.ErrDuplicateVersion
		}
	}
	return nil
}

func (s *Store) appendOutboxLocked(event ports.PackageEvent) error {
	if _, ok := s.outbox[event.EventID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	envelope, err := event.Envelope()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.outbox[event.EventID] = ports.OutboxMessage{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		CreatedAt:    event.OccurredAt.UTC(),
	}
	s.outboxOrder = append(s.outboxOrder, event.EventID)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, limit)
	for _, id := range s.outboxOrder {
		if _, sent := s.outboxSent[id]; sent {
			continue
		}
		items = append(items, s.outbox[id])
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outbox[outboxID]; !ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.outboxSent[outboxID] = sentAt.UTC()
	return nil
}

// OutboxEvents returns every outbox row in write order.
func (s *Store) OutboxEvents() []ports.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]ports.OutboxMessage, 0, len(s.outboxOrder))
	for _, id := range s.outboxOrder {
		events = append(events, s.outbox[id])
	}
	return events
}

func (s *Store) Save(ctx context.Context, dir string, upload ports.FileUpload) (string, error) {
	if upload.Body == nil {
		return "", domainerrors.ErrFileRequired
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, upload.Body); err != nil {
		return "", err
	}
	id, err := s.NewID(ctx)
	if err != nil {
		return "", err
	}
	stored := path.Join(dir, id+"-"+path.Base(upload.Name))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[stored] = buf.Bytes()
	return stored, nil
}

func (s *Store) URL(stored string) string {
	return "/media/" + stored
}

// File returns stored bytes for assertions.
func (s *Store) File(stored string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[stored]
	return content, ok
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	now := s.now
	s.mu.RUnlock()
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("pkg-%d", value), nil
}
