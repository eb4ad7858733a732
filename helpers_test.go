package veilmail

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testAPIKey = "veil_test_0123456789"

// newTestClient starts a server for h and returns a client pointed at it.
func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	c, err := New(testAPIKey, append([]Option{WithBaseURL(server.URL)}, opts...)...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// capturedRequest is what a recorder saw.
type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the captured body into a generic map.
func (r capturedRequest) JSON(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &m))
	return m
}

// recorder answers every request with a fixed response and keeps the
// requests it received.
type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest

	status int
	body   any
}

func newRecorder(status int, body any) *recorder {
	return &recorder{status: status, body: body}
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	rec.mu.Lock()
	rec.requests = append(rec.requests, capturedRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   data,
	})
	rec.mu.Unlock()

	if rec.status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if s, ok := rec.body.(string); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rec.status)
		io.WriteString(w, s)
		return
	}
	writeJSON(w, rec.status, rec.body)
}

// last returns the most recent request.
func (rec *recorder) last(t *testing.T) capturedRequest {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NotEmpty(t, rec.requests, "no request was made")
	return rec.requests[len(rec.requests)-1]
}

func errorBody(code, message string, details any) map[string]any {
	e := map[string]any{"code": code, "message": message}
	if details != nil {
		e["details"] = details
	}
	return map[string]any{"error": e}
}
