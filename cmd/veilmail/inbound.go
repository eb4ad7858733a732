package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	veilmail "github.com/Resonia-Health/veilmail-go"
	"github.com/Resonia-Health/veilmail-go/internal/poll"
)

func newInboundCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbound",
		Short: "Work with received mail",
	}
	cmd.AddCommand(newInboundWatchCmd(a))
	return cmd
}

func newInboundWatchCmd(a *app) *cobra.Command {
	var (
		ruleID   string
		interval time.Duration
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print inbound emails as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			since := time.Now().Add(-interval)
			fetch := func(ctx context.Context) ([]veilmail.InboundEmail, error) {
				page, err := a.client.Inbound.Emails.List(ctx, &veilmail.ListInboundEmailsParams{
					RuleID: ruleID,
					From:   &since,
				})
				if err != nil {
					return nil, err
				}
				return page.Data, nil
			}

			w := poll.NewWatcher(fetch, func(e veilmail.InboundEmail) string { return e.ID }, poll.NewBackoff(interval, 0))
			w.OnError = func(err error) {
				a.logger.Warn().Err(err).Msg("Failed to list inbound emails")
			}

			out := cmd.OutOrStdout()
			seen := 0
			err := w.Run(ctx, func(e veilmail.InboundEmail) bool {
				if a.jsonOutput() {
					writeJSON(out, e)
				} else {
					fmt.Fprintf(out, "%s\t%s\t%s\tauth=%t\n", e.ReceivedAt.Format(time.RFC3339), e.From, e.Subject, e.Authenticated())
				}
				seen++
				return limit == 0 || seen < limit
			})
			if ctx.Err() != nil && cmd.Context().Err() == nil {
				// Interrupted by the user.
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&ruleID, "rule", "", "only show mail matched by this inbound rule")
	cmd.Flags().DurationVar(&interval, "interval", poll.InitialInterval, "initial delay between checks")
	cmd.Flags().IntVar(&limit, "max", 0, "exit after this many emails (0 means run until interrupted)")
	return cmd
}
