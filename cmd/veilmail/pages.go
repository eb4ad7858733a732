package main

import (
	"context"

	"github.com/spf13/cobra"

	veilmail "github.com/Resonia-Health/veilmail-go"
)

// pageFlags are the pagination flags shared by list commands.
type pageFlags struct {
	limit int
	all   bool
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.limit, "limit", 0, "page size (server default when 0)")
	cmd.Flags().BoolVar(&p.all, "all", false, "follow cursors and list every page")
}

func (p *pageFlags) params(cursor string) veilmail.ListParams {
	return veilmail.ListParams{Limit: p.limit, Cursor: cursor}
}

// collect returns the first page, or every page when all is set.
func collect[T any](ctx context.Context, fetch veilmail.PageFetcher[T], all bool) ([]T, error) {
	if !all {
		page, err := fetch(ctx, "")
		if err != nil {
			return nil, err
		}
		return page.Data, nil
	}

	items := []T{}
	for item, err := range veilmail.Paginate(ctx, fetch) {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
