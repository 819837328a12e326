package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	pageerrors "venuenouveau/contexts/content-publishing/page-service/domain/errors"
	pagehttp "venuenouveau/contexts/content-publishing/page-service/transport/http"
	pricingerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	pricinghttp "venuenouveau/contexts/pricing-catalog/pricing-package-service/transport/http"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout accepted by "cmsctl seed".
//
//	years: [2025, 2026]
//	pages:
//	  - title: Home
//	    slug: home
//	    content: "<p>Welcome</p>"
type seedFile struct {
	Years []int      `yaml:"years"`
	Pages []seedPage `yaml:"pages"`
}

type seedPage struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Content string `yaml:"content"`
	Public  *bool  `yaml:"public"`
}

type seedReport struct {
	YearsCreated int
	YearsSkipped int
	PagesCreated int
	PagesSkipped int
}

func parseSeed(r io.Reader) (seedFile, error) {
	var seed seedFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return seedFile{}, nil
		}
		return seedFile{}, fmt.Errorf("decode seed file: %w", err)
	}
	return seed, nil
}

// applySeed is idempotent: existing years and slugs are skipped.
func applySeed(ctx context.Context, b *backend, seed seedFile) (seedReport, error) {
	var report seedReport
	for _, year := range seed.Years {
		_, err := b.pricing.Handler.CreateYearHandler(ctx, pricinghttp.CreateYearRequest{Year: year})
		switch {
		case err == nil:
			report.YearsCreated++
		case errors.Is(err, pricingerrors.ErrYearTaken):
			report.YearsSkipped++
		default:
			return report, fmt.Errorf("seed year %d: %w", year, err)
		}
	}
	for _, page := range seed.Pages {
		_, err := b.pages.Handler.CreatePageHandler(ctx, pagehttp.CreatePageRequest{
			Title:    page.Title,
			Slug:     page.Slug,
			Content:  page.Content,
			IsPublic: page.Public,
		})
		switch {
		case err == nil:
			report.PagesCreated++
		case errors.Is(err, pageerrors.ErrSlugTaken):
			report.PagesSkipped++
		default:
			return report, fmt.Errorf("seed page %q: %w", page.Title, err)
		}
	}
	return report, nil
}

func seedCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load years and pages from a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			seed, err := parseSeed(file)
			if err != nil {
				return err
			}
			return withBackend(cmd, open, func(b *backend) error {
				report, err := applySeed(cmd.Context(), b, seed)
				if err != nil {
					return err
				}
				cmd.Println(ok(fmt.Sprintf("years: %d created, %d skipped", report.YearsCreated, report.YearsSkipped)))
				cmd.Println(ok(fmt.Sprintf("pages: %d created, %d skipped", report.PagesCreated, report.PagesSkipped)))
				return nil
			})
		},
	}
}
