package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	veilmail "github.com/Resonia-Health/veilmail-go"
)

func newAuditLogsCmd(a *app) *cobra.Command {
	var (
		action       string
		resourceType string
		since        time.Duration
		page         pageFlags
	)

	cmd := &cobra.Command{
		Use:   "audit-logs",
		Short: "Read the account audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := veilmail.ListAuditLogsParams{
				Action:       action,
				ResourceType: resourceType,
			}
			if since > 0 {
				from := time.Now().Add(-since).UTC().Truncate(time.Second)
				params.From = &from
			}

			fetch := func(ctx context.Context, cursor string) (*veilmail.Page[veilmail.AuditLog], error) {
				p := params
				p.ListParams = page.params(cursor)
				return a.client.AuditLogs.List(ctx, &p)
			}

			logs, err := collect(cmd.Context(), fetch, page.all)
			if err != nil {
				return err
			}

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), logs)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tACTION\tRESOURCE\tACTOR")
			for _, l := range logs {
				actor := l.Actor.Email
				if actor == "" {
					actor = l.Actor.Type + ":" + l.Actor.ID
				}
				fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\n",
					l.CreatedAt.Format(time.RFC3339), l.Action, l.ResourceType, l.ResourceID, actor)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "filter by action, e.g. domain.verified")
	cmd.Flags().StringVar(&resourceType, "resource-type", "", "filter by resource type")
	cmd.Flags().DurationVar(&since, "since", 0, "only entries newer than this, e.g. 24h")
	page.register(cmd)
	return cmd
}
