package veilmail

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Resonia-Health/veilmail-go/internal/api"
	"github.com/Resonia-Health/veilmail-go/internal/apierrors"
)

// Metadata is free-form key/value data attached to a resource.
type Metadata map[string]any

// pathf builds an API path, escaping every identifier.
func pathf(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}

// call performs a request whose response is a single resource, enveloped or bare.
func call[T any](ctx context.Context, a *api.Client, method, path string, body any, opts ...api.RequestOption) (*T, error) {
	v := new(T)
	if err := a.DoData(ctx, method, path, body, v, opts...); err != nil {
		return nil, err
	}
	return v, nil
}

// callResource is call with not-found errors annotated with the resource
// that was addressed.
func callResource[T any](ctx context.Context, a *api.Client, method, path, resource, id string, body any) (*T, error) {
	v, err := call[T](ctx, a, method, path, body)
	if err != nil {
		return nil, wrapNotFound(err, resource, id)
	}
	return v, nil
}

// list fetches one page. params may be nil.
func list[T any](ctx context.Context, a *api.Client, path string, params any) (*Page[T], error) {
	page := &Page[T]{}
	var opts []api.RequestOption
	if params != nil {
		opts = append(opts, api.WithQuery(params))
	}
	if err := a.Do(ctx, http.MethodGet, path, nil, page, opts...); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}

// remove issues a DELETE and discards any acknowledgement body.
func remove(ctx context.Context, a *api.Client, path, resource, id string) error {
	return wrapNotFound(a.Do(ctx, http.MethodDelete, path, nil, nil), resource, id)
}

// wrapNotFound names the addressed resource in a not-found error. Other
// errors, and nil, pass through.
func wrapNotFound(err error, resource, id string) error {
	return apierrors.WithResource(err, resource, id)
}
