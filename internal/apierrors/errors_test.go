package apierrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrMissingAPIKey", ErrMissingAPIKey},
		{"ErrInvalidAPIKey", ErrInvalidAPIKey},
		{"ErrUnauthorized", ErrUnauthorized},
		{"ErrForbidden", ErrForbidden},
		{"ErrNotFound", ErrNotFound},
		{"ErrValidation", ErrValidation},
		{"ErrPIIDetected", ErrPIIDetected},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrServer", ErrServer},
		{"ErrTimeout", ErrTimeout},
		{"ErrNetwork", ErrNetwork},
	}

	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			require.NotNil(t, s.err)
			assert.NotEmpty(t, s.err.Error())
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with message",
			err:      &Error{Kind: KindAuthentication, StatusCode: 401, Message: "invalid API key"},
			expected: "API error 401: invalid API key",
		},
		{
			name:     "falls back to sentinel text",
			err:      &Error{Kind: KindServer, StatusCode: 500},
			expected: "API error 500: server error",
		},
		{
			name:     "with request ID",
			err:      &Error{Kind: KindNotFound, StatusCode: 404, Message: "not found", RequestID: "req-123"},
			expected: "API error 404: not found (request_id: req-123)",
		},
		{
			name:     "not found with resource context",
			err:      &Error{Kind: KindNotFound, StatusCode: 404, Message: "Resource not found", Resource: "template", ResourceID: "tpl_1"},
			expected: `API error 404: template "tpl_1" not found`,
		},
		{
			name:     "timeout carries duration",
			err:      &Error{Kind: KindTimeout, Timeout: 50 * time.Millisecond},
			expected: "request timed out after 50ms",
		},
		{
			name:     "network carries cause",
			err:      &Error{Kind: KindNetwork, Err: errors.New("connection refused")},
			expected: "network error: connection refused",
		},
		{
			name:     "generic kind without message",
			err:      &Error{Kind: KindAPI},
			expected: "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		target   error
		expected bool
	}{
		{"authentication matches ErrUnauthorized", KindAuthentication, ErrUnauthorized, true},
		{"forbidden matches ErrForbidden", KindForbidden, ErrForbidden, true},
		{"not found matches ErrNotFound", KindNotFound, ErrNotFound, true},
		{"validation matches ErrValidation", KindValidation, ErrValidation, true},
		{"validation does not match ErrPIIDetected", KindValidation, ErrPIIDetected, false},
		{"pii matches ErrPIIDetected", KindPIIDetected, ErrPIIDetected, true},
		{"pii matches ErrValidation", KindPIIDetected, ErrValidation, true},
		{"rate limited matches ErrRateLimited", KindRateLimited, ErrRateLimited, true},
		{"server matches ErrServer", KindServer, ErrServer, true},
		{"timeout matches ErrTimeout", KindTimeout, ErrTimeout, true},
		{"network matches ErrNetwork", KindNetwork, ErrNetwork, true},
		{"server does not match ErrUnauthorized", KindServer, ErrUnauthorized, false},
		{"generic matches nothing", KindAPI, ErrServer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &Error{Kind: tt.kind}
			assert.Equal(t, tt.expected, errors.Is(err, tt.target))
		})
	}
}

func TestError_Retryable(t *testing.T) {
	retryable := map[Kind]bool{
		KindAuthentication: false,
		KindForbidden:      false,
		KindNotFound:       false,
		KindValidation:     false,
		KindPIIDetected:    false,
		KindAPI:            false,
		KindRateLimited:    true,
		KindServer:         true,
		KindNetwork:        true,
		KindTimeout:        true,
	}
	for kind, want := range retryable {
		assert.Equal(t, want, (&Error{Kind: kind}).Retryable(), "kind %s", kind)
	}
}

func TestError_UnwrapThroughChain(t *testing.T) {
	root := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("send email: %w", NewNetworkError(root))

	assert.ErrorIs(t, err, root)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestNewTimeoutError_WrapsDeadline(t *testing.T) {
	err := NewTimeoutError(2*time.Second, context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "2s")
}

func TestKindOf_NonAPIError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestWithResource(t *testing.T) {
	t.Run("annotates not found", func(t *testing.T) {
		orig := &Error{Kind: KindNotFound, StatusCode: 404, Message: "Resource not found"}
		err := WithResource(orig, "domain", "dom_42")

		apiErr, ok := As(err)
		require.True(t, ok)
		assert.Equal(t, "domain", apiErr.Resource)
		assert.Equal(t, "dom_42", apiErr.ResourceID)
		assert.Empty(t, orig.Resource, "original must not be mutated")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("leaves other kinds alone", func(t *testing.T) {
		orig := &Error{Kind: KindServer, StatusCode: 500}
		assert.Same(t, orig, WithResource(orig, "domain", "dom_42"))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WithResource(nil, "domain", "dom_42"))
	})

	t.Run("non API errors pass through", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, WithResource(plain, "domain", "dom_42"))
	})
}
