package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	veilmail "github.com/Resonia-Health/veilmail-go"
)

func newValidateCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate [address...]",
		Short: "Check whether addresses are deliverable",
		Long: `Validate checks addresses given as arguments or read one per line from
--file ("-" for stdin). Lists longer than the API batch limit are split into
batches that run concurrently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			emails := args
			if file != "" {
				more, err := readAddresses(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				emails = append(emails, more...)
			}
			if len(emails) == 0 {
				return fmt.Errorf("no addresses given")
			}

			results, err := a.validateAll(cmd.Context(), emails)
			if err != nil {
				return err
			}

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tRESULT\tDETAIL")
			for _, r := range results {
				switch {
				case r.Error != nil:
					fmt.Fprintf(w, "%s\terror\t%s\n", r.Email, r.Error.Message)
				case r.Result != nil:
					detail := r.Result.Reason
					if r.Result.Suggestion != "" {
						detail = "did you mean " + r.Result.Suggestion
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.Email, r.Result.Result, detail)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read addresses from a file, one per line")
	return cmd
}

// validateAll splits emails into API-sized batches, validates them with
// bounded concurrency and returns the results in input order with indexes
// rebased onto the full list.
func (a *app) validateAll(ctx context.Context, emails []string) ([]veilmail.BatchValidationResult, error) {
	batches := chunk(emails, veilmail.MaxBatchSize)
	out := make([][]veilmail.BatchValidationResult, len(batches))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Concurrency)

	for i, batch := range batches {
		g.Go(func() error {
			var resp *veilmail.BatchValidationResponse
			err := a.do(ctx, "validation.batch", func(ctx context.Context) error {
				var err error
				resp, err = a.client.Validation.ValidateBatch(ctx, batch)
				return err
			})
			if err != nil {
				return fmt.Errorf("batch %d: %w", i+1, err)
			}

			offset := i * veilmail.MaxBatchSize
			for j := range resp.Data {
				resp.Data[j].Index += offset
			}
			out[i] = resp.Data

			a.logger.Debug().Int("batch", i+1).Int("size", len(batch)).Msg("Validated batch")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []veilmail.BatchValidationResult
	for _, r := range out {
		results = append(results, r...)
	}
	return results, nil
}

func chunk[T any](items []T, size int) [][]T {
	var chunks [][]T
	for size < len(items) {
		items, chunks = items[size:], append(chunks, items[:size:size])
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}

func readAddresses(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open address file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var emails []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		emails = append(emails, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read addresses: %w", err)
	}
	return emails, nil
}
