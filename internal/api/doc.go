// Package api provides the HTTP transport for the VeilMail API. It handles
// authentication, request/response serialization, per-request timeouts and
// classification of failed responses into [apierrors.Error] values.
//
// # Client Creation
//
// [New] takes an API key and functional options. The key must start with
// "veil_live_" or "veil_test_"; it is sent as a bearer token on every request.
// Configuration is validated once, at construction.
//
// # Requests
//
// [Client.Do] performs exactly one HTTP round trip. There are no retries:
// callers that want them use the internal/retry package or their own policy.
//
//	var domain Domain
//	err := c.Do(ctx, http.MethodGet, "/v1/domains/"+url.PathEscape(id), nil, &domain)
//
// Query parameters are passed with [WithQuery], either as url.Values or as a
// struct with `url` tags encoded by go-querystring.
//
// # Timeouts
//
// Every request is bounded by the configured timeout (30s by default). When
// it elapses the in-flight request is cancelled and an error of kind
// [apierrors.KindTimeout] is returned. Cancelling the caller's context aborts
// the request too and surfaces the context error.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. It holds no mutable state.
package api
