package main

import (
	"context"
	"io"
	"os"

	pageservice "venuenouveau/contexts/content-publishing/page-service"
	pricingpackageservice "venuenouveau/contexts/pricing-catalog/pricing-package-service"
	"venuenouveau/internal/app/bootstrap"

	"github.com/spf13/cobra"
)

// cmsctl is the operator CLI: schema migration, seeding and the package
// approval queue, without going through the HTTP API.
func main() {
	cmd := newRootCmd(openPostgresBackend, os.Stdout)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// backend is what the commands operate on; tests swap in the in-memory modules.
type backend struct {
	pages   pageservice.Module
	pricing pricingpackageservice.Module
	migrate func(context.Context) error
	close   func() error
}

type openFunc func(ctx context.Context) (*backend, error)

func openPostgresBackend(ctx context.Context) (*backend, error) {
	app, err := bootstrap.BuildAdmin(ctx)
	if err != nil {
		return nil, err
	}
	return &backend{
		pages:   app.Pages,
		pricing: app.Pricing,
		migrate: app.Migrate,
		close:   app.Close,
	}, nil
}

func newRootCmd(open openFunc, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cmsctl",
		Short:        "Operate the venue CMS: migrate, seed and approve pricing packages",
		SilenceUsage: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(
		migrateCmd(open),
		seedCmd(open),
		pagesCmd(open),
		packagesCmd(open),
	)
	return cmd
}

// withBackend opens the backend for one command run and always closes it.
func withBackend(cmd *cobra.Command, open openFunc, run func(*backend) error) error {
	b, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if b.close != nil {
			_ = b.close()
		}
	}()
	return run(b)
}

func migrateCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, open, func(b *backend) error {
				if b.migrate == nil {
					return nil
				}
				if err := b.migrate(cmd.Context()); err != nil {
					return err
				}
				cmd.Println(ok("schema up to date"))
				return nil
			})
		},
	}
}
