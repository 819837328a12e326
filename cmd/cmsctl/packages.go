package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	pricinghttp "venuenouveau/contexts/pricing-catalog/pricing-package-service/transport/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func packagesCmd(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Inspect and approve pricing packages",
	}
	cmd.AddCommand(
		packagesListCmd(open),
		packagesShowCmd(open),
		packagesApproveCmd(open),
		packagesApproveVersionCmd(open),
	)
	return cmd
}

func packagesListCmd(open openFunc) *cobra.Command {
	var (
		segment    string
		year       int
		publicOnly bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pricing packages with their version and approval state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, open, func(b *backend) error {
				resp, err := b.pricing.Handler.ListPackagesHandler(cmd.Context(), segment, year, publicOnly)
				if err != nil {
					return err
				}
				if len(resp.Items) == 0 {
					cmd.Println("(no pricing packages)")
					return nil
				}
				writePackages(cmd.OutOrStdout(), resp.Items)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&segment, "segment", "", "Filter by segment (all_inclusive, venue_inclusive, weekday)")
	cmd.Flags().IntVar(&year, "year", 0, "Filter by calendar year")
	cmd.Flags().BoolVar(&publicOnly, "public", false, "Only packages visible on the public site")
	return cmd
}

func packagesShowCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show <package-id>",
		Short: "Show a package and its version history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(b *backend) error {
				resp, err := b.pricing.Handler.GetPackageHandler(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				writePackages(out, []pricinghttp.PackageDTO{resp.Package})
				_, _ = fmt.Fprintln(out)

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "VERSION\tID\tUPLOADER\tUPLOADED\tSTATE")
				for _, version := range resp.Versions {
					_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
						version.Version,
						version.VersionID,
						version.Uploader,
						version.UploadedAt,
						approvalState(version.Approved, version.ApprovedBy),
					)
				}
				return tw.Flush()
			})
		},
	}
}

func packagesApproveCmd(open openFunc) *cobra.Command {
	var approver string
	cmd := &cobra.Command{
		Use:   "approve <package-id>",
		Short: "Approve the current version of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(b *backend) error {
				resp, err := b.pricing.Handler.ApprovePackageHandler(cmd.Context(), approver, args[0])
				if err != nil {
					return err
				}
				cmd.Println(ok(fmt.Sprintf("%s approved at version %d by %s",
					resp.Package.Display, resp.Package.CurrentVersion, approver)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&approver, "as", "", "Approver identity recorded on the package")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func packagesApproveVersionCmd(open openFunc) *cobra.Command {
	var approver string
	cmd := &cobra.Command{
		Use:   "approve-version <package-id> <version-id>",
		Short: "Approve one historical version; the package itself is unchanged",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(b *backend) error {
				resp, err := b.pricing.Handler.ApproveVersionHandler(cmd.Context(), approver, args[0], args[1])
				if err != nil {
					return err
				}
				cmd.Println(ok(fmt.Sprintf("version %d approved by %s", resp.Version.Version, approver)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&approver, "as", "", "Approver identity recorded on the version")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func writePackages(out io.Writer, items []pricinghttp.PackageDTO) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSEGMENT\tYEAR\tNAME\tVERSION\tSTATE")
	for _, item := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\n",
			item.PackageID,
			item.SegmentLabel,
			item.Year,
			item.PackageName,
			item.CurrentVersion,
			approvalState(item.Approved, item.ApprovedBy),
		)
	}
	_ = tw.Flush()
}

func approvalState(approved bool, by *string) string {
	if !approved {
		return color.YellowString("pending")
	}
	if by != nil && *by != "" {
		return color.GreenString("approved (%s)", *by)
	}
	return color.GreenString("approved")
}

func ok(message string) string {
	return color.GreenString("✓ ") + message
}
