package veilmail

import (
	"context"
	"net/http"
)

// Deliverability is the verdict of an address check.
type Deliverability string

const (
	DeliverabilityDeliverable   Deliverability = "deliverable"
	DeliverabilityUndeliverable Deliverability = "undeliverable"
	DeliverabilityRisky         Deliverability = "risky"
	DeliverabilityUnknown       Deliverability = "unknown"
)

// ValidationResult describes one checked address.
type ValidationResult struct {
	Email        string         `json:"email"`
	Valid        bool           `json:"valid"`
	Result       Deliverability `json:"result"`
	Reason       string         `json:"reason,omitempty"`
	Disposable   bool           `json:"disposable"`
	RoleAccount  bool           `json:"roleAccount"`
	FreeProvider bool           `json:"freeProvider"`
	MXFound      bool           `json:"mxFound"`
	Suppressed   bool           `json:"suppressed"`
	// Suggestion is a likely intended address for typos such as gmial.com.
	Suggestion string `json:"suggestion,omitempty"`
}

// BatchValidationResult is the outcome of one address in a batch. Index is
// the address's position in the request; exactly one of Result and Error is
// set.
type BatchValidationResult struct {
	Index  int               `json:"index"`
	Email  string            `json:"email"`
	Result *ValidationResult `json:"result,omitempty"`
	Error  *BatchItemError   `json:"error,omitempty"`
}

// BatchValidationResponse holds per-address results in request order.
type BatchValidationResponse struct {
	Data []BatchValidationResult `json:"data"`
}

// ValidationService checks email addresses before sending.
type ValidationService service

// Validate checks a single address.
func (s *ValidationService) Validate(ctx context.Context, email string) (*ValidationResult, error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return call[ValidationResult](ctx, s.api, http.MethodPost, "/v1/validation", body)
}

// ValidateBatch checks up to MaxBatchSize addresses in one request. The list
// is not split locally.
func (s *ValidationService) ValidateBatch(ctx context.Context, emails []string) (*BatchValidationResponse, error) {
	body := struct {
		Emails []string `json:"emails"`
	}{Emails: emails}

	resp := &BatchValidationResponse{}
	if err := s.api.Do(ctx, http.MethodPost, "/v1/validation/batch", body, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
