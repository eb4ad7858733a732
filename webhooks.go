package veilmail

import (
	"context"
	"net/http"
	"time"
)

// WebhookEventType represents the type of event that triggers a webhook.
type WebhookEventType string

const (
	// WebhookEventEmailSent is triggered when an email is handed to the MTA.
	WebhookEventEmailSent WebhookEventType = "email.sent"
	// WebhookEventEmailDelivered is triggered when the recipient server accepts an email.
	WebhookEventEmailDelivered WebhookEventType = "email.delivered"
	// WebhookEventEmailBounced is triggered when an email bounces.
	WebhookEventEmailBounced WebhookEventType = "email.bounced"
	// WebhookEventEmailComplained is triggered when a recipient marks an email as spam.
	WebhookEventEmailComplained WebhookEventType = "email.complained"
	// WebhookEventEmailOpened is triggered when an email is opened.
	WebhookEventEmailOpened WebhookEventType = "email.opened"
	// WebhookEventEmailClicked is triggered when a tracked link is clicked.
	WebhookEventEmailClicked WebhookEventType = "email.clicked"

	WebhookEventSubscriberCreated      WebhookEventType = "subscriber.created"
	WebhookEventSubscriberUnsubscribed WebhookEventType = "subscriber.unsubscribed"
	WebhookEventCampaignSent           WebhookEventType = "campaign.sent"
	WebhookEventInboundReceived        WebhookEventType = "inbound.received"
)

// Webhook represents a webhook endpoint registration.
type Webhook struct {
	ID          string             `json:"id"`
	URL         string             `json:"url"`
	Events      []WebhookEventType `json:"events"`
	Description string             `json:"description,omitempty"`
	Enabled     bool               `json:"enabled"`
	// Secret is only returned on creation and rotation.
	Secret    string        `json:"secret,omitempty"`
	Stats     *WebhookStats `json:"stats,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// WebhookStats represents webhook delivery statistics.
type WebhookStats struct {
	TotalDeliveries      int        `json:"totalDeliveries"`
	SuccessfulDeliveries int        `json:"successfulDeliveries"`
	FailedDeliveries     int        `json:"failedDeliveries"`
	LastDeliveryAt       *time.Time `json:"lastDeliveryAt,omitempty"`
	LastSuccessAt        *time.Time `json:"lastSuccessAt,omitempty"`
	LastFailureAt        *time.Time `json:"lastFailureAt,omitempty"`
}

// TestWebhookResponse represents the response from testing a webhook.
type TestWebhookResponse struct {
	Success bool `json:"success"`
	// StatusCode is the HTTP status code returned by the webhook endpoint.
	StatusCode int `json:"statusCode"`
	// ResponseTime is the endpoint's response time in milliseconds.
	ResponseTime int    `json:"responseTime"`
	Error        string `json:"error,omitempty"`
}

// RotateSecretResponse represents the response from rotating a webhook secret.
type RotateSecretResponse struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
	// PreviousSecretValidUntil is when the previous secret stops verifying.
	PreviousSecretValidUntil *time.Time `json:"previousSecretValidUntil,omitempty"`
}

// WebhooksService manages webhook endpoints.
type WebhooksService service

// Create registers a webhook endpoint.
//
// Example:
//
//	wh, err := client.Webhooks.Create(ctx, "https://example.com/hooks",
//	    veilmail.WithWebhookEvents(veilmail.WebhookEventEmailBounced),
//	    veilmail.WithWebhookDescription("bounce handler"),
//	)
func (s *WebhooksService) Create(ctx context.Context, url string, opts ...WebhookCreateOption) (*Webhook, error) {
	cfg := &webhookCreateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return call[Webhook](ctx, s.api, http.MethodPost, "/v1/webhooks", cfg.body(url))
}

// List returns one page of webhooks.
func (s *WebhooksService) List(ctx context.Context, params *ListParams) (*Page[Webhook], error) {
	return list[Webhook](ctx, s.api, "/v1/webhooks", params)
}

// Get retrieves a webhook by ID.
func (s *WebhooksService) Get(ctx context.Context, id string) (*Webhook, error) {
	return callResource[Webhook](ctx, s.api, http.MethodGet, pathf("/v1/webhooks/%s", id), "webhook", id, nil)
}

// Update changes a webhook. Only the fields set through options are sent.
func (s *WebhooksService) Update(ctx context.Context, id string, opts ...WebhookUpdateOption) (*Webhook, error) {
	cfg := &webhookUpdateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return callResource[Webhook](ctx, s.api, http.MethodPatch, pathf("/v1/webhooks/%s", id), "webhook", id, cfg.body())
}

// Delete removes a webhook.
func (s *WebhooksService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/webhooks/%s", id), "webhook", id)
}

// Test sends a synthetic event to the endpoint and reports how it answered.
func (s *WebhooksService) Test(ctx context.Context, id string) (*TestWebhookResponse, error) {
	return callResource[TestWebhookResponse](ctx, s.api, http.MethodPost, pathf("/v1/webhooks/%s/test", id), "webhook", id, nil)
}

// RotateSecret issues a new signing secret. The previous secret keeps
// verifying until PreviousSecretValidUntil.
func (s *WebhooksService) RotateSecret(ctx context.Context, id string) (*RotateSecretResponse, error) {
	return callResource[RotateSecretResponse](ctx, s.api, http.MethodPost, pathf("/v1/webhooks/%s/rotate-secret", id), "webhook", id, nil)
}
