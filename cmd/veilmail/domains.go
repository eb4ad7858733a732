package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	veilmail "github.com/Resonia-Health/veilmail-go"
	"github.com/Resonia-Health/veilmail-go/internal/poll"
)

func newDomainsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "Manage sending domains",
	}
	cmd.AddCommand(newDomainsListCmd(a), newDomainsVerifyCmd(a))
	return cmd
}

func newDomainsListCmd(a *app) *cobra.Command {
	var (
		status string
		page   pageFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sending domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetch := func(ctx context.Context, cursor string) (*veilmail.Page[veilmail.Domain], error) {
				var p *veilmail.Page[veilmail.Domain]
				err := a.do(ctx, "domains.list", func(ctx context.Context) error {
					var err error
					p, err = a.client.Domains.List(ctx, &veilmail.ListDomainsParams{
						ListParams: page.params(cursor),
						Status:     veilmail.DomainStatus(status),
					})
					return err
				})
				return p, err
			}

			domains, err := collect(cmd.Context(), fetch, page.all)
			if err != nil {
				return err
			}

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), domains)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS")
			for _, d := range domains {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Name, d.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status: pending, verified, failed")
	page.register(cmd)
	return cmd
}

func newDomainsVerifyCmd(a *app) *cobra.Command {
	var (
		wait     bool
		interval time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "verify <domain-id>",
		Short: "Re-check a domain's DNS records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if wait {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var d *veilmail.Domain
			err := poll.Until(ctx, poll.NewBackoff(interval, 0), func(ctx context.Context) (bool, error) {
				var err error
				d, err = a.client.Domains.Verify(ctx, args[0])
				if err != nil {
					return false, err
				}
				a.logger.Debug().Str("domain", d.Name).Str("status", string(d.Status)).Msg("Checked domain")
				return !wait || d.Status != veilmail.DomainStatusPending, nil
			})
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) && d != nil {
					return fmt.Errorf("domain %s still %s after %s", d.Name, d.Status, timeout)
				}
				return err
			}

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\t%s\n", d.Name, d.Status)
			if d.Status != veilmail.DomainStatusVerified {
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "TYPE\tNAME\tVALUE\tSTATUS")
				for _, r := range d.Records {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Type, r.Name, r.Value, r.Status)
				}
				return w.Flush()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "keep checking while the domain is pending")
	cmd.Flags().DurationVar(&interval, "interval", poll.InitialInterval, "initial delay between checks with --wait")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "give up waiting after this long")
	return cmd
}
