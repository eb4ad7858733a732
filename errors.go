package veilmail

import (
	"errors"
	"fmt"

	"github.com/Resonia-Health/veilmail-go/internal/apierrors"
)

// Error is a failed API call. Inspect Kind to decide how to react; the
// kind-specific fields (RetryAfter, PIITypes, Timeout) are only set for
// their kind.
type Error = apierrors.Error

// ErrorKind tags an Error with its failure class.
type ErrorKind = apierrors.Kind

// Error kinds.
const (
	KindAuthentication = apierrors.KindAuthentication
	KindForbidden      = apierrors.KindForbidden
	KindNotFound       = apierrors.KindNotFound
	KindValidation     = apierrors.KindValidation
	KindPIIDetected    = apierrors.KindPIIDetected
	KindRateLimited    = apierrors.KindRateLimited
	KindServer         = apierrors.KindServer
	KindTimeout        = apierrors.KindTimeout
	KindNetwork        = apierrors.KindNetwork
	KindAPI            = apierrors.KindAPI
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrInvalidAPIKey is returned when the API key has neither the live
	// nor the test prefix.
	ErrInvalidAPIKey = apierrors.ErrInvalidAPIKey

	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = apierrors.ErrUnauthorized

	ErrForbidden   = apierrors.ErrForbidden
	ErrNotFound    = apierrors.ErrNotFound
	ErrValidation  = apierrors.ErrValidation
	ErrPIIDetected = apierrors.ErrPIIDetected
	ErrRateLimited = apierrors.ErrRateLimited
	ErrServer      = apierrors.ErrServer
	ErrTimeout     = apierrors.ErrTimeout
	ErrNetwork     = apierrors.ErrNetwork

	// ErrSignatureInvalid is returned when a webhook signature does not verify.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrBatchTooLarge is never returned by the client, which does not
	// chunk batches; it is provided for callers that check sizes up front.
	ErrBatchTooLarge = fmt.Errorf("batch exceeds %d items", MaxBatchSize)
)

// MaxBatchSize is the largest batch the API accepts for batch sends and
// batch validation.
const MaxBatchSize = 100

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	return apierrors.As(err)
}

// KindOf returns the Kind of err, or "" when err is not an API error.
func KindOf(err error) ErrorKind {
	return apierrors.KindOf(err)
}

// IsRetryable reports whether err is a rate-limit, server, network or
// timeout failure. The client never retries by itself.
func IsRetryable(err error) bool {
	apiErr, ok := apierrors.As(err)
	return ok && apiErr.Retryable()
}

// SignatureVerificationError describes why a webhook signature was rejected.
type SignatureVerificationError struct {
	Message string
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("signature verification failed: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *SignatureVerificationError) Is(target error) bool {
	return target == ErrSignatureInvalid
}
