package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	veilmail "github.com/Resonia-Health/veilmail-go"
)

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Inspect email templates",
	}
	cmd.AddCommand(newTemplatesListCmd(a), newTemplatesPreviewCmd(a))
	return cmd
}

func newTemplatesListCmd(a *app) *cobra.Command {
	var (
		category string
		search   string
		page     pageFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetch := func(ctx context.Context, cursor string) (*veilmail.Page[veilmail.Template], error) {
				var p *veilmail.Page[veilmail.Template]
				err := a.do(ctx, "templates.list", func(ctx context.Context) error {
					var err error
					p, err = a.client.Templates.List(ctx, &veilmail.ListTemplatesParams{
						ListParams: page.params(cursor),
						Category:   category,
						Search:     search,
					})
					return err
				})
				return p, err
			}

			templates, err := collect(cmd.Context(), fetch, page.all)
			if err != nil {
				return err
			}

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), templates)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tVERSION\tVARIABLES")
			for _, t := range templates {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", t.ID, t.Name, t.Version, len(t.Variables))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&search, "search", "", "search by name")
	page.register(cmd)
	return cmd
}

func newTemplatesPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <template-id>",
		Short: "Print a template rendered with its default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := a.client.Templates.Preview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), html)
			return err
		},
	}
}
