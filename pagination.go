package veilmail

import (
	"context"
	"iter"
)

// Page is one page of a cursor-paginated list.
type Page[T any] struct {
	Data       []T    `json:"data"`
	HasMore    bool   `json:"hasMore"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// ListParams are the pagination parameters accepted by every list call.
type ListParams struct {
	// Limit caps the page size. Zero uses the server default.
	Limit int `url:"limit,omitempty"`
	// Cursor is a NextCursor from a previous page.
	Cursor string `url:"cursor,omitempty"`
}

// PageFetcher fetches the page starting at cursor ("" for the first page).
type PageFetcher[T any] func(ctx context.Context, cursor string) (*Page[T], error)

// Paginate walks every page returned by fetch, yielding items in order.
// Iteration stops at the first error, which is yielded with a zero item, or
// when the server reports no further pages.
//
//	for d, err := range veilmail.Paginate(ctx, func(ctx context.Context, cursor string) (*veilmail.Page[veilmail.Domain], error) {
//	    return client.Domains.List(ctx, &veilmail.ListDomainsParams{ListParams: veilmail.ListParams{Cursor: cursor}})
//	}) {
//	    ...
//	}
func Paginate[T any](ctx context.Context, fetch PageFetcher[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		cursor := ""
		for {
			page, err := fetch(ctx, cursor)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Data {
				if !yield(item, nil) {
					return
				}
			}
			if !page.HasMore || page.NextCursor == "" || page.NextCursor == cursor {
				return
			}
			cursor = page.NextCursor
		}
	}
}
