// Package apierrors provides the typed error taxonomy shared by the VeilMail
// transport and the public client.
package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Kind tags an Error with the failure class it belongs to.
type Kind string

const (
	// KindAuthentication is an invalid, revoked or expired API key (401).
	KindAuthentication Kind = "authentication"
	// KindForbidden is a key that lacks permission for the operation (403).
	KindForbidden Kind = "forbidden"
	// KindNotFound is a missing resource (404).
	KindNotFound Kind = "not_found"
	// KindValidation is a rejected request payload (422).
	KindValidation Kind = "validation"
	// KindPIIDetected is a 422 raised by the server's PII scanner.
	KindPIIDetected Kind = "pii_detected"
	// KindRateLimited is a throttled request (429).
	KindRateLimited Kind = "rate_limited"
	// KindServer is a server-side failure (5xx).
	KindServer Kind = "server"
	// KindTimeout is a request that exceeded the configured timeout.
	KindTimeout Kind = "timeout"
	// KindNetwork is a transport failure before any response arrived.
	KindNetwork Kind = "network"
	// KindAPI is any other non-2xx response.
	KindAPI Kind = "api"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrInvalidAPIKey is returned when the API key does not carry a recognized prefix.
	ErrInvalidAPIKey = errors.New("invalid API key format")

	// ErrUnauthorized matches authentication failures.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrForbidden matches permission failures.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound matches missing resources.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation matches rejected payloads, including PII rejections.
	ErrValidation = errors.New("validation failed")

	// ErrPIIDetected matches PII rejections.
	ErrPIIDetected = errors.New("PII detected")

	// ErrRateLimited matches throttled requests.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServer matches 5xx responses.
	ErrServer = errors.New("server error")

	// ErrTimeout matches requests that hit the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrNetwork matches transport failures.
	ErrNetwork = errors.New("network error")
)

// Error is a failed VeilMail API call. Kind selects which of the optional
// fields are meaningful: RetryAfter is set only for KindRateLimited, PIITypes
// only for KindPIIDetected, Timeout only for KindTimeout and Err only for
// KindNetwork and KindTimeout.
type Error struct {
	Kind       Kind
	StatusCode int
	Code       string
	Message    string
	Details    json.RawMessage
	RequestID  string

	// Resource and ResourceID describe what a not-found error was looking for.
	Resource   string
	ResourceID string

	RetryAfter time.Duration
	PIITypes   []string
	Timeout    time.Duration
	Err        error
}

func (e *Error) Error() string {
	msg := e.message()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("API error %d: %s", e.StatusCode, msg)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("%s (request_id: %s)", msg, e.RequestID)
	}
	return msg
}

func (e *Error) message() string {
	switch e.Kind {
	case KindNotFound:
		if e.Resource != "" && e.ResourceID != "" {
			return fmt.Sprintf("%s %q not found", e.Resource, e.ResourceID)
		}
		if e.Resource != "" && e.Message == "" {
			return e.Resource + " not found"
		}
	case KindTimeout:
		return fmt.Sprintf("request timed out after %v", e.Timeout)
	case KindNetwork:
		if e.Err != nil {
			return fmt.Sprintf("network error: %v", e.Err)
		}
	}
	if e.Message != "" {
		return e.Message
	}
	if s := sentinelFor(e.Kind); s != nil {
		return s.Error()
	}
	return "request failed"
}

// Unwrap returns the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindPIIDetected:
		return target == ErrPIIDetected || target == ErrValidation
	default:
		s := sentinelFor(e.Kind)
		return s != nil && target == s
	}
}

// Retryable reports whether repeating the same request later may succeed.
// The client never retries on its own; this is advice for callers.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindServer, KindNetwork, KindTimeout:
		return true
	}
	return false
}

func sentinelFor(k Kind) error {
	switch k {
	case KindAuthentication:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindPIIDetected:
		return ErrPIIDetected
	case KindRateLimited:
		return ErrRateLimited
	case KindServer:
		return ErrServer
	case KindTimeout:
		return ErrTimeout
	case KindNetwork:
		return ErrNetwork
	}
	return nil
}

// As returns err as an *Error when one is present in its chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	if apiErr, ok := As(err); ok {
		return apiErr.Kind
	}
	return ""
}

// WithResource returns a copy of a not-found error annotated with the
// resource name and identifier that was requested. Other errors are returned
// unchanged.
func WithResource(err error, resource, id string) error {
	apiErr, ok := As(err)
	if !ok || apiErr.Kind != KindNotFound {
		return err
	}
	annotated := *apiErr
	annotated.Resource = resource
	annotated.ResourceID = id
	return &annotated
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

// NewTimeoutError reports a request cancelled by the configured timeout.
func NewTimeoutError(timeout time.Duration, err error) *Error {
	return &Error{Kind: KindTimeout, Timeout: timeout, Err: err}
}
