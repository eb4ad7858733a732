package veilmail

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cursorServer serves domains with the cursor being the index of the next item.
func cursorServer(t *testing.T, names ...string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := 0
		if c := r.URL.Query().Get("cursor"); c != "" {
			n, err := strconv.Atoi(c)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorBody("invalid_cursor", "bad cursor", nil))
				return
			}
			start = n
		}
		limit := len(names)
		if l := r.URL.Query().Get("limit"); l != "" {
			limit, _ = strconv.Atoi(l)
		}
		end := min(start+limit, len(names))

		data := []map[string]any{}
		for i := start; i < end; i++ {
			data = append(data, map[string]any{"id": "dom_" + strconv.Itoa(i), "name": names[i]})
		}
		resp := map[string]any{"data": data, "hasMore": end < len(names)}
		if end < len(names) {
			resp["nextCursor"] = strconv.Itoa(end)
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func TestList_CursorPagination(t *testing.T) {
	c := newTestClient(t, cursorServer(t, "a.example.com", "b.example.com"))
	ctx := context.Background()

	first, err := c.Domains.List(ctx, &ListDomainsParams{ListParams: ListParams{Limit: 1}})
	require.NoError(t, err)
	require.Len(t, first.Data, 1)
	assert.Equal(t, "a.example.com", first.Data[0].Name)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextCursor)

	second, err := c.Domains.List(ctx, &ListDomainsParams{ListParams: ListParams{Limit: 1, Cursor: first.NextCursor}})
	require.NoError(t, err)
	require.Len(t, second.Data, 1)
	assert.Equal(t, "b.example.com", second.Data[0].Name)
	assert.False(t, second.HasMore)
	assert.Empty(t, second.NextCursor)
}

func TestList_EmptyPageHasNonNilData(t *testing.T) {
	c := newTestClient(t, newRecorder(http.StatusOK, map[string]any{"hasMore": false}))

	page, err := c.Topics.List(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestList_QueryParameters(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{"data": []any{}})
	c := newTestClient(t, rec)

	_, err := c.Emails.List(context.Background(), &ListEmailsParams{
		ListParams: ListParams{Limit: 25, Cursor: "abc"},
		Status:     EmailStatusBounced,
		Tag:        "welcome",
	})
	require.NoError(t, err)

	q := rec.last(t).Query
	assert.Equal(t, "25", q.Get("limit"))
	assert.Equal(t, "abc", q.Get("cursor"))
	assert.Equal(t, "bounced", q.Get("status"))
	assert.Equal(t, "welcome", q.Get("tag"))
	assert.False(t, q.Has("from"))
}

func TestPaginate_WalksAllPages(t *testing.T) {
	c := newTestClient(t, cursorServer(t, "a.com", "b.com", "c.com", "d.com", "e.com"))

	var names []string
	for d, err := range Paginate(context.Background(), func(ctx context.Context, cursor string) (*Page[Domain], error) {
		return c.Domains.List(ctx, &ListDomainsParams{ListParams: ListParams{Limit: 2, Cursor: cursor}})
	}) {
		require.NoError(t, err)
		names = append(names, d.Name)
	}

	assert.Equal(t, []string{"a.com", "b.com", "c.com", "d.com", "e.com"}, names)
}

func TestPaginate_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	fetch := func(ctx context.Context, cursor string) (*Page[int], error) {
		calls++
		if cursor == "" {
			return &Page[int]{Data: []int{1, 2}, HasMore: true, NextCursor: "next"}, nil
		}
		return nil, boom
	}

	var got []int
	var gotErr error
	for n, err := range Paginate(context.Background(), fetch) {
		if err != nil {
			gotErr = err
			continue
		}
		got = append(got, n)
	}

	assert.Equal(t, []int{1, 2}, got)
	assert.ErrorIs(t, gotErr, boom)
	assert.Equal(t, 2, calls)
}

func TestPaginate_EarlyBreak(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, cursor string) (*Page[int], error) {
		calls++
		return &Page[int]{Data: []int{1, 2, 3}, HasMore: true, NextCursor: "c" + strconv.Itoa(calls)}, nil
	}

	for n := range Paginate(context.Background(), fetch) {
		if n == 2 {
			break
		}
	}

	assert.Equal(t, 1, calls)
}

func TestPaginate_RepeatedCursorStops(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, cursor string) (*Page[int], error) {
		calls++
		return &Page[int]{Data: []int{calls}, HasMore: true, NextCursor: "same"}, nil
	}

	var got []int
	for n, err := range Paginate(context.Background(), fetch) {
		require.NoError(t, err)
		got = append(got, n)
	}

	assert.Equal(t, []int{1, 2}, got)
}
