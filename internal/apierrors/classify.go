package apierrors

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CodePIIDetected is the error code the server uses for PII rejections.
const CodePIIDetected = "pii_detected"

// envelope is the failure body: {"error": {"code", "message", "details"}}.
type envelope struct {
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details,omitempty"`
	} `json:"error"`
}

type piiDetails struct {
	PIITypes []string `json:"piiTypes"`
}

// FromResponse classifies a non-2xx response into an *Error. The body may be
// empty, plain text or a JSON error envelope; the kind depends only on the
// status code (and, for 422, on the PII code and details).
func FromResponse(statusCode int, header http.Header, body []byte) *Error {
	e := &Error{
		StatusCode: statusCode,
		RequestID:  header.Get("X-Request-Id"),
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		e.Code = env.Error.Code
		e.Message = env.Error.Message
		if len(env.Error.Details) > 0 && string(env.Error.Details) != "null" {
			e.Details = env.Error.Details
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && !json.Valid(body) {
		e.Message = text
	}
	if e.Message == "" {
		e.Message = http.StatusText(statusCode)
	}

	switch {
	case statusCode == http.StatusUnauthorized:
		e.Kind = KindAuthentication
	case statusCode == http.StatusForbidden:
		e.Kind = KindForbidden
	case statusCode == http.StatusNotFound:
		e.Kind = KindNotFound
		if e.Message == http.StatusText(statusCode) {
			e.Message = "Resource not found"
		}
	case statusCode == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
		if e.Code == CodePIIDetected {
			var d piiDetails
			if err := json.Unmarshal(e.Details, &d); err == nil && d.PIITypes != nil {
				e.Kind = KindPIIDetected
				e.PIITypes = d.PIITypes
			}
		}
	case statusCode == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.RetryAfter = parseRetryAfter(header.Get("Retry-After"))
	case statusCode >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindAPI
	}

	return e
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d.Round(time.Second)
		}
	}
	return 0
}
