package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pageservice "venuenouveau/contexts/content-publishing/page-service"
	pageerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	pricingpackageservice "venuenouveau/contexts/pricing-catalog/pricing-package-service"
	pricingports "venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
	pricinghttp "venuenouveau/contexts/pricing-catalog/pricing-package-service/transport/http"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type fakeBackend struct {
	backend  *backend
	migrated int
	closed   int
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{}
	f.backend = &backend{
		pages:   pageservice.NewInMemoryModule(nil, nil),
		pricing: pricingpackageservice.NewInMemoryModule(nil, nil),
		migrate: func(context.Context) error {
			f.migrated++
			return nil
		},
		close: func() error {
			f.closed++
			return nil
		},
	}
	return f
}

func (f *fakeBackend) open(context.Context) (*backend, error) {
	return f.backend, nil
}

func run(t *testing.T, f *fakeBackend, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(f.open, &out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateRunsSchemaUpdateAndCloses(t *testing.T) {
	f := newFakeBackend()
	out, err := run(t, f, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")
	assert.Equal(t, 1, f.migrated)
	assert.Equal(t, 1, f.closed)
}

func TestSeedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
years: [2026, 2027]
pages:
  - title: Home
    slug: home
    content: "<p>Welcome</p>"
  - title: Wedding Packages
    content: "<p>Packages for every season</p>"
  - title: Staff notes
    content: "<p>Internal</p>"
    public: false
`), 0o600))

	f := newFakeBackend()
	out, err := run(t, f, "seed", path)
	require.NoError(t, err)
	assert.Contains(t, out, "years: 2 created, 0 skipped")
	assert.Contains(t, out, "pages: 3 created, 0 skipped")

	out, err = run(t, f, "seed", path)
	require.NoError(t, err)
	assert.Contains(t, out, "years: 0 created, 2 skipped")
	assert.Contains(t, out, "pages: 0 created, 3 skipped")

	out, err = run(t, f, "pages", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "wedding-packages")
	assert.Contains(t, out, "/cms/page/wedding-packages/")
	assert.Contains(t, out, "hidden")
}

func TestSeedReportsInvalidPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pages:\n  - title: Empty\n"), 0o600))

	_, err := run(t, newFakeBackend(), "seed", path)
	require.ErrorIs(t, err, pageerrors.ErrInvalidPage)
	assert.Contains(t, err.Error(), `seed page "Empty"`)
}

func TestSeedRejectsUnknownFields(t *testing.T) {
	_, err := parseSeed(strings.NewReader("yeers: [2026]\n"))
	require.Error(t, err)

	seed, err := parseSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, seed.Years)
	assert.Empty(t, seed.Pages)
}

func TestPackagesApprovalFlow(t *testing.T) {
	f := newFakeBackend()
	ctx := context.Background()
	handler := f.backend.pricing.Handler

	year, err := handler.CreateYearHandler(ctx, pricinghttp.CreateYearRequest{Year: 2026})
	require.NoError(t, err)
	created, err := handler.CreatePackageHandler(ctx, "uploader", pricinghttp.CreatePackageRequest{
		Segment:     "all_inclusive",
		YearID:      year.YearID,
		PackageName: "Gold",
	}, &pricingports.FileUpload{Name: "gold.pdf", Body: strings.NewReader("v1")})
	require.NoError(t, err)
	packageID := created.Package.PackageID

	out, err := run(t, f, "packages", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Gold")
	assert.Contains(t, out, "pending")

	out, err = run(t, f, "packages", "list", "--public")
	require.NoError(t, err)
	assert.Contains(t, out, "(no pricing packages)")

	_, err = run(t, f, "packages", "approve", packageID)
	require.Error(t, err, "--as is required")

	out, err = run(t, f, "packages", "approve", packageID, "--as", "manager")
	require.NoError(t, err)
	assert.Contains(t, out, "approved at version 1 by manager")

	out, err = run(t, f, "packages", "list", "--public", "--year", "2026")
	require.NoError(t, err)
	assert.Contains(t, out, "approved (manager)")

	out, err = run(t, f, "packages", "show", packageID)
	require.NoError(t, err)
	assert.Contains(t, out, created.Version.VersionID)
	assert.Contains(t, out, "uploader")

	out, err = run(t, f, "packages", "approve-version", packageID, created.Version.VersionID, "--as", "owner")
	require.NoError(t, err)
	assert.Contains(t, out, "version 1 approved by owner")
}

func TestPackagesShowUnknownPackageFails(t *testing.T) {
	f := newFakeBackend()
	_, err := run(t, f, "packages", "show", "missing")
	require.Error(t, err)
	assert.Equal(t, 1, f.closed)
}
