package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func pagesCmd(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Inspect CMS pages",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pages with their public URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, open, func(b *backend) error {
				resp, err := b.pages.Handler.ListPagesHandler(cmd.Context())
				if err != nil {
					return err
				}
				if len(resp.Items) == 0 {
					cmd.Println("(no pages)")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "TITLE\tSLUG\tURL\tVISIBILITY")
				for _, page := range resp.Items {
					visibility := color.GreenString("public")
					if !page.IsPublic {
						visibility = color.YellowString("hidden")
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", page.Title, page.Slug, page.URL, visibility)
				}
				return tw.Flush()
			})
		},
	})
	return cmd
}
