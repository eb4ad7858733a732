package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponse_StatusMapping(t *testing.T) {
	bodies := map[string]string{
		"envelope":   `{"error":{"code":"some_code","message":"something went wrong"}}`,
		"empty":      ``,
		"plain text": `upstream exploded`,
		"odd json":   `{"message":"not the envelope"}`,
	}

	tests := []struct {
		status int
		kind   Kind
	}{
		{401, KindAuthentication},
		{403, KindForbidden},
		{404, KindNotFound},
		{422, KindValidation},
		{429, KindRateLimited},
		{500, KindServer},
		{502, KindServer},
		{503, KindServer},
		{400, KindAPI},
		{409, KindAPI},
		{418, KindAPI},
	}

	for _, tt := range tests {
		for name, body := range bodies {
			t.Run(http.StatusText(tt.status)+"/"+name, func(t *testing.T) {
				err := FromResponse(tt.status, http.Header{}, []byte(body))
				assert.Equal(t, tt.kind, err.Kind)
				assert.Equal(t, tt.status, err.StatusCode)
				assert.NotEmpty(t, err.Error())
			})
		}
	}
}

func TestFromResponse_Envelope(t *testing.T) {
	body := `{"error":{"code":"invalid_field","message":"subject is required","details":{"field":"subject"}}}`
	h := http.Header{}
	h.Set("X-Request-Id", "req_9")

	err := FromResponse(422, h, []byte(body))

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "invalid_field", err.Code)
	assert.Equal(t, "subject is required", err.Message)
	assert.Equal(t, "req_9", err.RequestID)
	assert.JSONEq(t, `{"field":"subject"}`, string(err.Details))
}

func TestFromResponse_MessageFallbacks(t *testing.T) {
	t.Run("status text when body empty", func(t *testing.T) {
		err := FromResponse(401, http.Header{}, nil)
		assert.Equal(t, "Unauthorized", err.Message)
	})

	t.Run("plain text body becomes message", func(t *testing.T) {
		err := FromResponse(503, http.Header{}, []byte("maintenance\n"))
		assert.Equal(t, "maintenance", err.Message)
	})

	t.Run("generic not found message", func(t *testing.T) {
		err := FromResponse(404, http.Header{}, nil)
		assert.Equal(t, "Resource not found", err.Message)
	})

	t.Run("server supplied not found message kept", func(t *testing.T) {
		err := FromResponse(404, http.Header{}, []byte(`{"error":{"code":"not_found","message":"Domain not found"}}`))
		assert.Equal(t, "Domain not found", err.Message)
	})
}

func TestFromResponse_PIIDetected(t *testing.T) {
	body := `{"error":{"code":"pii_detected","message":"PII found in body","details":{"piiTypes":["SSN"]}}}`

	err := FromResponse(422, http.Header{}, []byte(body))

	assert.Equal(t, KindPIIDetected, err.Kind)
	assert.Equal(t, []string{"SSN"}, err.PIITypes)
	assert.True(t, errors.Is(err, ErrPIIDetected))
}

func TestFromResponse_PIICodeWithoutTypesIsValidation(t *testing.T) {
	body := `{"error":{"code":"pii_detected","message":"PII found"}}`

	err := FromResponse(422, http.Header{}, []byte(body))

	assert.Equal(t, KindValidation, err.Kind)
	assert.Nil(t, err.PIITypes)
}

func TestFromResponse_PIITypesOnOtherCodeIsValidation(t *testing.T) {
	body := `{"error":{"code":"invalid","message":"bad","details":{"piiTypes":["SSN"]}}}`

	err := FromResponse(422, http.Header{}, []byte(body))

	assert.Equal(t, KindValidation, err.Kind)
}

func TestFromResponse_RetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"seconds", "120", 120 * time.Second},
		{"padded", " 5 ", 5 * time.Second},
		{"missing", "", 0},
		{"garbage", "soon", 0},
		{"negative", "-3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.header != "" {
				h.Set("Retry-After", tt.header)
			}
			err := FromResponse(429, h, nil)
			assert.Equal(t, KindRateLimited, err.Kind)
			assert.Equal(t, tt.want, err.RetryAfter)
		})
	}
}

func TestFromResponse_RetryAfterHTTPDate(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))

	err := FromResponse(429, h, nil)

	require.Equal(t, KindRateLimited, err.Kind)
	assert.InDelta(t, time.Hour.Seconds(), err.RetryAfter.Seconds(), 5)
}

func TestFromResponse_RetryAfterOnlyOnRateLimit(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "30")

	err := FromResponse(503, h, nil)

	assert.Equal(t, KindServer, err.Kind)
	assert.Zero(t, err.RetryAfter)
}

func TestFromResponse_NullDetailsDropped(t *testing.T) {
	err := FromResponse(400, http.Header{}, []byte(`{"error":{"code":"bad","message":"bad","details":null}}`))

	assert.Equal(t, KindAPI, err.Kind)
	assert.Nil(t, err.Details)
	assert.Equal(t, json.RawMessage(nil), err.Details)
}
