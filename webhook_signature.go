package veilmail

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader is the HTTP header carrying a webhook delivery's signature.
const SignatureHeader = "X-VeilMail-Signature"

// DefaultSignatureTolerance is how far a delivery's timestamp may be from
// the local clock before it is rejected as a replay.
const DefaultSignatureTolerance = 5 * time.Minute

type verifyConfig struct {
	tolerance time.Duration
	now       func() time.Time
}

// VerifyOption configures webhook signature verification.
type VerifyOption func(*verifyConfig)

// WithTolerance sets the allowed clock difference. Zero disables the
// timestamp check.
func WithTolerance(d time.Duration) VerifyOption {
	return func(c *verifyConfig) {
		c.tolerance = d
	}
}

// WithNow overrides the clock used for the timestamp check.
func WithNow(now func() time.Time) VerifyOption {
	return func(c *verifyConfig) {
		c.now = now
	}
}

// SignWebhookPayload returns the signature header value for payload signed
// with secret at ts. Useful for testing receivers.
func SignWebhookPayload(secret string, ts time.Time, payload []byte) string {
	unix := strconv.FormatInt(ts.Unix(), 10)
	return "t=" + unix + ",v1=" + hex.EncodeToString(computeSignature(secret, unix, payload))
}

// VerifyWebhookSignature checks that header is a valid signature of payload
// under secret. The header has the form "t=<unix>,v1=<hex>"; several v1
// entries may be present while a secret is being rotated, and any one
// matching is enough. Errors match ErrSignatureInvalid.
func VerifyWebhookSignature(payload []byte, header, secret string, opts ...VerifyOption) error {
	cfg := &verifyConfig{
		tolerance: DefaultSignatureTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if secret == "" {
		return &SignatureVerificationError{Message: "empty secret"}
	}

	ts, sigs, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	if cfg.tolerance > 0 {
		signedAt := time.Unix(ts, 0)
		skew := cfg.now().Sub(signedAt)
		if skew < 0 {
			skew = -skew
		}
		if skew > cfg.tolerance {
			return &SignatureVerificationError{
				Message: fmt.Sprintf("timestamp outside tolerance (%v)", cfg.tolerance),
			}
		}
	}

	expected := computeSignature(secret, strconv.FormatInt(ts, 10), payload)
	for _, sig := range sigs {
		if hmac.Equal(sig, expected) {
			return nil
		}
	}
	return &SignatureVerificationError{Message: "no matching signature"}
}

func computeSignature(secret, unix string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(unix))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

func parseSignatureHeader(header string) (int64, [][]byte, error) {
	if header == "" {
		return 0, nil, &SignatureVerificationError{Message: "missing signature header"}
	}

	var (
		ts    int64
		hasTS bool
		sigs  [][]byte
	)
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, &SignatureVerificationError{Message: "malformed timestamp"}
			}
			ts, hasTS = n, true
		case "v1":
			sig, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			sigs = append(sigs, sig)
		}
	}

	if !hasTS {
		return 0, nil, &SignatureVerificationError{Message: "missing timestamp"}
	}
	if len(sigs) == 0 {
		return 0, nil, &SignatureVerificationError{Message: "missing v1 signature"}
	}
	return ts, sigs, nil
}

// WebhookEvent is a delivered webhook payload.
type WebhookEvent struct {
	ID        string           `json:"id"`
	Type      WebhookEventType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	Data      json.RawMessage  `json:"data"`
}

// DecodeData unmarshals the event's data into v, e.g. an *Email for
// email.* events or an *InboundEmail for inbound.received.
func (e *WebhookEvent) DecodeData(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s event data: %w", e.Type, err)
	}
	return nil
}

// ParseWebhookEvent verifies payload against header and decodes it.
func ParseWebhookEvent(payload []byte, header, secret string, opts ...VerifyOption) (*WebhookEvent, error) {
	if err := VerifyWebhookSignature(payload, header, secret, opts...); err != nil {
		return nil, err
	}
	var ev WebhookEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode webhook event: %w", err)
	}
	return &ev, nil
}
