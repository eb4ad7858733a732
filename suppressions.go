package veilmail

import (
	"context"
	"net/http"
	"time"
)

// SuppressionReason is why an address is blocked from sends.
type SuppressionReason string

const (
	SuppressionReasonBounce      SuppressionReason = "bounce"
	SuppressionReasonComplaint   SuppressionReason = "complaint"
	SuppressionReasonUnsubscribe SuppressionReason = "unsubscribe"
	SuppressionReasonManual      SuppressionReason = "manual"
)

// Suppression is an address on the suppression list.
type Suppression struct {
	Email     string            `json:"email"`
	Reason    SuppressionReason `json:"reason"`
	Source    string            `json:"source,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ListSuppressionsParams filters the suppression list.
type ListSuppressionsParams struct {
	ListParams
	Reason SuppressionReason `url:"reason,omitempty"`
}

// SuppressionsService manages the suppression list.
type SuppressionsService service

// List returns one page of suppressed addresses.
func (s *SuppressionsService) List(ctx context.Context, params *ListSuppressionsParams) (*Page[Suppression], error) {
	return list[Suppression](ctx, s.api, "/v1/suppressions", params)
}

// Add blocks an address from future sends.
func (s *SuppressionsService) Add(ctx context.Context, email string, reason SuppressionReason) (*Suppression, error) {
	body := struct {
		Email  string            `json:"email"`
		Reason SuppressionReason `json:"reason,omitempty"`
	}{Email: email, Reason: reason}
	return call[Suppression](ctx, s.api, http.MethodPost, "/v1/suppressions", body)
}

// Remove unblocks an address.
func (s *SuppressionsService) Remove(ctx context.Context, email string) error {
	return remove(ctx, s.api, pathf("/v1/suppressions/%s", email), "suppression", email)
}
