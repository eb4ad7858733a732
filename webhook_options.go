package veilmail

// webhookCreateConfig holds configuration for creating a webhook.
type webhookCreateConfig struct {
	events      []WebhookEventType
	description string
	disabled    bool
}

// webhookUpdateConfig holds configuration for updating a webhook.
type webhookUpdateConfig struct {
	url         *string
	events      []WebhookEventType
	description *string
	enabled     *bool
}

type webhookCreateBody struct {
	URL         string             `json:"url"`
	Events      []WebhookEventType `json:"events,omitempty"`
	Description string             `json:"description,omitempty"`
	Enabled     bool               `json:"enabled"`
}

type webhookUpdateBody struct {
	URL         *string            `json:"url,omitempty"`
	Events      []WebhookEventType `json:"events,omitempty"`
	Description *string            `json:"description,omitempty"`
	Enabled     *bool              `json:"enabled,omitempty"`
}

func (c *webhookCreateConfig) body(url string) *webhookCreateBody {
	return &webhookCreateBody{
		URL:         url,
		Events:      c.events,
		Description: c.description,
		Enabled:     !c.disabled,
	}
}

func (c *webhookUpdateConfig) body() *webhookUpdateBody {
	return &webhookUpdateBody{
		URL:         c.url,
		Events:      c.events,
		Description: c.description,
		Enabled:     c.enabled,
	}
}

// WebhookCreateOption configures webhook creation.
type WebhookCreateOption func(*webhookCreateConfig)

// WebhookUpdateOption configures webhook updates.
type WebhookUpdateOption func(*webhookUpdateConfig)

// Create options

// WithWebhookEvents sets the event types that trigger the webhook. Without
// it the server subscribes the endpoint to every event.
func WithWebhookEvents(events ...WebhookEventType) WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.events = events
	}
}

// WithWebhookDescription sets the description for the webhook.
func WithWebhookDescription(description string) WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.description = description
	}
}

// WithWebhookDisabled creates the webhook in a disabled state.
func WithWebhookDisabled() WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.disabled = true
	}
}

// Update options

// WithUpdateURL updates the webhook URL.
func WithUpdateURL(url string) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.url = &url
	}
}

// WithUpdateEvents replaces the subscribed event types.
func WithUpdateEvents(events ...WebhookEventType) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.events = events
	}
}

// WithUpdateDescription updates the webhook description.
func WithUpdateDescription(description string) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.description = &description
	}
}

// WithUpdateEnabled enables or disables the webhook.
func WithUpdateEnabled(enabled bool) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.enabled = &enabled
	}
}
