package pricingpackageservice_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	pricingpackageservice "venuenouveau/contexts/pricing-catalog/pricing-package-service"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/adapters/memory"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/application/commands"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
	httptransport "venuenouveau/contexts/pricing-catalog/pricing-package-service/transport/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModule(t *testing.T) pricingpackageservice.Module {
	t.Helper()
	module := pricingpackageservice.NewInMemoryModule([]entities.Year{{YearID: "year-2025", Year: 2025}}, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	module.Store.SetClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})
	return module
}

func upload(name string, body string) *ports.FileUpload {
	return &ports.FileUpload{Name: name, ContentType: "application/pdf", Body: strings.NewReader(body)}
}

func createWeekday(t *testing.T, module pricingpackageservice.Module) httptransport.CreatePackageResponse {
	t.Helper()
	created, err := module.Handler.CreatePackageHandler(context.Background(), "alice", httptransport.CreatePackageRequest{
		Segment:     "weekday",
		YearID:      "year-2025",
		PackageName: "Midweek Classic",
	}, upload("weekday.pdf", "v1"))
	require.NoError(t, err)
	return created
}

func TestPricingPackageVersionAndApprovalWorkflow(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	created := createWeekday(t, module)
	assert.Equal(t, 1, created.Package.CurrentVersion)
	assert.False(t, created.Package.Approved)
	assert.Equal(t, 1, created.Version.Version)
	assert.Equal(t, "alice", created.Version.Uploader)
	assert.True(t, strings.HasPrefix(created.Package.FileURL, "/media/packages/"))
	assert.Equal(t, "Weekday Package - 2025", created.Package.Display)
	packageID := created.Package.PackageID

	public, err := module.Handler.ListPackagesHandler(ctx, "", 0, true)
	require.NoError(t, err)
	assert.Empty(t, public.Items, "unapproved packages are never public")

	approved, err := module.Handler.ApprovePackageHandler(ctx, "bob", packageID)
	require.NoError(t, err)
	assert.True(t, approved.Package.Approved)
	require.NotNil(t, approved.Package.ApprovedBy)
	assert.Equal(t, "bob", *approved.Package.ApprovedBy)
	assert.NotNil(t, approved.Package.ApprovedAt)

	detail, err := module.Handler.GetPackageHandler(ctx, packageID)
	require.NoError(t, err)
	require.Len(t, detail.Versions, 1)
	assert.True(t, detail.Versions[0].Approved, "approving the package approves its current version")
	assert.Equal(t, "bob", *detail.Versions[0].ApprovedBy)

	public, err = module.Handler.ListPackagesHandler(ctx, "weekday", 2025, true)
	require.NoError(t, err)
	require.Len(t, public.Items, 1)

	updated, err := module.Handler.UpdatePackageHandler(ctx, "alice", packageID, httptransport.UpdatePackageRequest{}, upload("weekday-v2.pdf", "v2"))
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Package.CurrentVersion)
	assert.False(t, updated.Package.Approved)
	assert.Nil(t, updated.Package.ApprovedBy)
	assert.Nil(t, updated.Package.ApprovedAt)
	require.NotNil(t, updated.NewVersion)
	assert.Equal(t, 2, updated.NewVersion.Version)
	assert.NotEqual(t, created.Package.FileURL, updated.Package.FileURL)

	public, err = module.Handler.ListPackagesHandler(ctx, "", 0, true)
	require.NoError(t, err)
	assert.Empty(t, public.Items, "a new file withdraws the package until re-approved")

	detail, err = module.Handler.GetPackageHandler(ctx, packageID)
	require.NoError(t, err)
	require.Len(t, detail.Versions, 2)
	assert.Equal(t, 2, detail.Versions[0].Version, "history is newest first")
	assert.False(t, detail.Versions[0].Approved)
	assert.Equal(t, 1, detail.Versions[1].Version)
	assert.True(t, detail.Versions[1].Approved, "history keeps earlier approvals")
	assert.Equal(t, "Version 2 for Weekday Package - 2025", detail.Versions[0].Display)

	versionOne := detail.Versions[1].VersionID
	approvedVersion, err := module.Handler.ApproveVersionHandler(ctx, "carol", packageID, versionOne)
	require.NoError(t, err)
	assert.Equal(t, "carol", *approvedVersion.Version.ApprovedBy)

	detail, err = module.Handler.GetPackageHandler(ctx, packageID)
	require.NoError(t, err)
	assert.False(t, detail.Package.Approved, "approving a historical version leaves the package alone")

	name := "Midweek Deluxe"
	renamed, err := module.Handler.UpdatePackageHandler(ctx, "alice", packageID, httptransport.UpdatePackageRequest{PackageName: &name}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Midweek Deluxe", renamed.Package.PackageName)
	assert.Equal(t, 2, renamed.Package.CurrentVersion)
	assert.Nil(t, renamed.NewVersion)

	types := make([]string, 0)
	for _, event := range module.Store.OutboxEvents() {
		types = append(types, event.EventType)
	}
	assert.Equal(t, []string{
		"pricing_package.created",
		"pricing_package.approved",
		"pricing_package.version_uploaded",
		"pricing_package.version_approved",
	}, types)
}

func TestApprovePackageIsLastWriteWins(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()
	created := createWeekday(t, module)

	_, err := module.Handler.ApprovePackageHandler(ctx, "bob", created.Package.PackageID)
	require.NoError(t, err)
	second, err := module.Handler.ApprovePackageHandler(ctx, "carol", created.Package.PackageID)
	require.NoError(t, err)
	assert.Equal(t, "carol", *second.Package.ApprovedBy)
	assert.Equal(t, 1, second.Package.CurrentVersion)
}

func TestRenameKeepsApproval(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()
	created := createWeekday(t, module)
	packageID := created.Package.PackageID

	_, err := module.Handler.ApprovePackageHandler(ctx, "bob", packageID)
	require.NoError(t, err)

	name := "Midweek Deluxe"
	renamed, err := module.Handler.UpdatePackageHandler(ctx, "alice", packageID, httptransport.UpdatePackageRequest{PackageName: &name}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Midweek Deluxe", renamed.Package.PackageName)
	assert.True(t, renamed.Package.Approved)
	require.NotNil(t, renamed.Package.ApprovedBy)
	assert.Equal(t, "bob", *renamed.Package.ApprovedBy)
	assert.Equal(t, 1, renamed.Package.CurrentVersion)

	public, err := module.Handler.ListPackagesHandler(ctx, "", 0, true)
	require.NoError(t, err)
	require.Len(t, public.Items, 1)
	assert.Equal(t, "Midweek Deluxe", public.Items[0].PackageName)
}

// interleavedStore runs between the read and the write of a field-only edit.
type interleavedStore struct {
	*memory.Store
	between func()
}

func (s interleavedStore) UpdatePackageFields(ctx context.Context, pkg entities.PricingPackage) (entities.PricingPackage, error) {
	s.between()
	return s.Store.UpdatePackageFields(ctx, pkg)
}

func TestRenameDoesNotOverwriteConcurrentWorkflowWrites(t *testing.T) {
	cases := []struct {
		name            string
		between         func(t *testing.T, base pricingpackageservice.Module, packageID string)
		wantApproved    bool
		wantCurrentVers int
	}{
		{
			name: "approval",
			between: func(t *testing.T, base pricingpackageservice.Module, packageID string) {
				_, err := base.Handler.ApprovePackageHandler(context.Background(), "bob", packageID)
				require.NoError(t, err)
			},
			wantApproved:    true,
			wantCurrentVers: 1,
		},
		{
			name: "new file",
			between: func(t *testing.T, base pricingpackageservice.Module, packageID string) {
				_, err := base.Handler.UpdatePackageHandler(context.Background(), "carol", packageID,
					httptransport.UpdatePackageRequest{}, upload("weekday-v2.pdf", "v2"))
				require.NoError(t, err)
			},
			wantApproved:    false,
			wantCurrentVers: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := newTestModule(t)
			created := createWeekday(t, base)
			packageID := created.Package.PackageID

			packages := interleavedStore{Store: base.Store, between: func() {
				tc.between(t, base, packageID)
			}}
			module := pricingpackageservice.NewModule(pricingpackageservice.Dependencies{
				Years:       base.Store,
				Packages:    packages,
				Outbox:      base.Store,
				Files:       base.Store,
				Clock:       base.Store,
				IDGenerator: base.Store,
			})

			name := "Midweek Deluxe"
			renamed, err := module.Handler.UpdatePackageHandler(context.Background(), "alice", packageID,
				httptransport.UpdatePackageRequest{PackageName: &name}, nil)
			require.NoError(t, err)
			assert.Equal(t, "Midweek Deluxe", renamed.Package.PackageName)
			assert.Equal(t, tc.wantApproved, renamed.Package.Approved)
			assert.Equal(t, tc.wantCurrentVers, renamed.Package.CurrentVersion)

			stored, err := base.Handler.GetPackageHandler(context.Background(), packageID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantApproved, stored.Package.Approved)
			assert.Equal(t, tc.wantCurrentVers, stored.Package.CurrentVersion)
			assert.Len(t, stored.Versions, tc.wantCurrentVers)
		})
	}
}

func TestPricingPackageErrors(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	_, err := module.Handler.ApprovePackageHandler(ctx, "bob", "missing")
	require.ErrorIs(t, err, domainerrors.ErrPackageNotFound)

	_, err = module.Handler.CreatePackageHandler(ctx, "alice", httptransport.CreatePackageRequest{
		Segment: "weekday", YearID: "year-2025", PackageName: "No file",
	}, nil)
	require.ErrorIs(t, err, domainerrors.ErrFileRequired)

	_, err = module.Handler.CreatePackageHandler(ctx, "", httptransport.CreatePackageRequest{
		Segment: "weekday", YearID: "year-2025", PackageName: "Anonymous",
	}, upload("a.pdf", "x"))
	require.ErrorIs(t, err, domainerrors.ErrUploaderRequired)

	_, err = module.Handler.CreatePackageHandler(ctx, "alice", httptransport.CreatePackageRequest{
		Segment: "elopement", YearID: "year-2025", PackageName: "Unknown",
	}, upload("a.pdf", "x"))
	require.ErrorIs(t, err, domainerrors.ErrInvalidSegment)

	_, err = module.Handler.CreatePackageHandler(ctx, "alice", httptransport.CreatePackageRequest{
		Segment: "weekday", YearID: "year-1999", PackageName: "Old",
	}, upload("a.pdf", "x"))
	require.ErrorIs(t, err, domainerrors.ErrYearNotFound)

	first := createWeekday(t, module)
	second := createWeekday(t, module)
	_, err = module.Handler.ApproveVersionHandler(ctx, "bob", first.Package.PackageID, second.Version.VersionID)
	require.ErrorIs(t, err, domainerrors.ErrVersionNotFound)

	_, err = module.Handler.ApprovePackageHandler(ctx, " ", first.Package.PackageID)
	require.ErrorIs(t, err, domainerrors.ErrApproverRequired)
}

func TestRejectedCreateWritesNothing(t *testing.T) {
	module := newTestModule(t)

	_, err := module.Handler.CreatePackageHandler(context.Background(), "alice", httptransport.CreatePackageRequest{
		Segment: "weekday", YearID: "year-2025", PackageName: "",
	}, upload("a.pdf", "x"))
	require.ErrorIs(t, err, domainerrors.ErrInvalidPackage)
	assert.Empty(t, module.Store.OutboxEvents())
}

func TestYearRegistryAndCascadingDeletes(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	year, err := module.Handler.CreateYearHandler(ctx, httptransport.CreateYearRequest{Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, "2026", year.Display)

	_, err = module.Handler.CreateYearHandler(ctx, httptransport.CreateYearRequest{Year: 2026})
	require.ErrorIs(t, err, domainerrors.ErrYearTaken)

	years, err := module.Handler.ListYearsHandler(ctx)
	require.NoError(t, err)
	require.Len(t, years.Items, 2)
	assert.Equal(t, 2025, years.Items[0].Year)

	created, err := module.Handler.CreatePackageHandler(ctx, "alice", httptransport.CreatePackageRequest{
		Segment: "all_inclusive", YearID: year.YearID, PackageName: "Gold",
	}, upload("gold.pdf", "gold"))
	require.NoError(t, err)

	require.NoError(t, module.Handler.DeleteYearHandler(ctx, year.YearID))
	_, err = module.Handler.GetPackageHandler(ctx, created.Package.PackageID)
	require.ErrorIs(t, err, domainerrors.ErrPackageNotFound)

	weekday := createWeekday(t, module)
	require.NoError(t, module.Handler.DeletePackageHandler(ctx, weekday.Package.PackageID))
	_, err = module.Handler.GetPackageHandler(ctx, weekday.Package.PackageID)
	require.ErrorIs(t, err, domainerrors.ErrPackageNotFound)
	require.ErrorIs(t, module.Handler.DeletePackageHandler(ctx, weekday.Package.PackageID), domainerrors.ErrPackageNotFound)
}

type recordingMetrics struct {
	mu       sync.Mutex
	versions map[string]int
	approved map[string]int
}

func (m *recordingMetrics) VersionRecorded(segment string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[segment]++
}

func (m *recordingMetrics) Approved(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approved[kind]++
}

func TestWorkflowMetricsAreRecorded(t *testing.T) {
	base := newTestModule(t)
	metrics := &recordingMetrics{versions: map[string]int{}, approved: map[string]int{}}
	module := pricingpackageservice.NewModule(pricingpackageservice.Dependencies{
		Years:       base.Store,
		Packages:    base.Store,
		Outbox:      base.Store,
		Files:       base.Store,
		Clock:       base.Store,
		IDGenerator: base.Store,
		Metrics:     metrics,
	})
	module.Store = base.Store
	ctx := context.Background()

	created := createWeekday(t, module)
	_, err := module.Handler.UpdatePackageHandler(ctx, "alice", created.Package.PackageID, httptransport.UpdatePackageRequest{}, upload("v2.pdf", "v2"))
	require.NoError(t, err)
	_, err = module.Handler.ApprovePackageHandler(ctx, "bob", created.Package.PackageID)
	require.NoError(t, err)
	_, err = module.Handler.ApproveVersionHandler(ctx, "bob", created.Package.PackageID, created.Version.VersionID)
	require.NoError(t, err)

	assert.Equal(t, 2, metrics.versions["weekday"])
	assert.Equal(t, 1, metrics.approved[commands.ApprovalKindPackage])
	assert.Equal(t, 1, metrics.approved[commands.ApprovalKindVersion])
}
