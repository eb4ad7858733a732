package veilmail

import (
	"context"
	"net/http"
	"time"

	"github.com/Resonia-Health/veilmail-go/authresults"
	"github.com/Resonia-Health/veilmail-go/spamanalysis"
)

// InboundAction is what happens to mail matched by an inbound rule.
type InboundAction string

const (
	// InboundActionStore keeps the email for retrieval through the API.
	InboundActionStore InboundAction = "store"
	// InboundActionForward relays the email to ForwardTo.
	InboundActionForward InboundAction = "forward"
	// InboundActionWebhook posts the parsed email to WebhookURL.
	InboundActionWebhook InboundAction = "webhook"
	// InboundActionDrop discards the email.
	InboundActionDrop InboundAction = "drop"
)

// InboundRule routes mail received on a domain.
type InboundRule struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DomainID string `json:"domainId"`
	// Pattern matches the local part, e.g. "support" or "*".
	Pattern    string        `json:"pattern"`
	Action     InboundAction `json:"action"`
	ForwardTo  []string      `json:"forwardTo,omitempty"`
	WebhookURL string        `json:"webhookUrl,omitempty"`
	Priority   int           `json:"priority"`
	Enabled    bool          `json:"enabled"`
	// RejectSpam drops mail whose spam verdict is positive.
	RejectSpam bool `json:"rejectSpam"`
	// RequireAuth drops mail that fails SPF, DKIM or DMARC.
	RequireAuth bool      `json:"requireAuth"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InboundRuleParams creates or updates an inbound rule.
type InboundRuleParams struct {
	Name        string        `json:"name,omitempty"`
	DomainID    string        `json:"domainId,omitempty"`
	Pattern     string        `json:"pattern,omitempty"`
	Action      InboundAction `json:"action,omitempty"`
	ForwardTo   []string      `json:"forwardTo,omitempty"`
	WebhookURL  string        `json:"webhookUrl,omitempty"`
	Priority    *int          `json:"priority,omitempty"`
	Enabled     *bool         `json:"enabled,omitempty"`
	RejectSpam  *bool         `json:"rejectSpam,omitempty"`
	RequireAuth *bool         `json:"requireAuth,omitempty"`
}

// InboundAttachment describes a file received with an inbound email.
type InboundAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	URL         string `json:"url,omitempty"`
}

// InboundEmail is a received message.
type InboundEmail struct {
	ID          string                `json:"id"`
	RuleID      string                `json:"ruleId,omitempty"`
	From        string                `json:"from"`
	To          []string              `json:"to"`
	Cc          []string              `json:"cc,omitempty"`
	Subject     string                `json:"subject"`
	Text        string                `json:"text,omitempty"`
	HTML        string                `json:"html,omitempty"`
	Headers     map[string]string     `json:"headers,omitempty"`
	Attachments []InboundAttachment   `json:"attachments,omitempty"`
	Auth        *authresults.Results  `json:"auth,omitempty"`
	Spam        *spamanalysis.Verdict `json:"spam,omitempty"`
	ReceivedAt  time.Time             `json:"receivedAt"`
}

// Authenticated reports whether the sender passed SPF, DKIM and DMARC.
func (e *InboundEmail) Authenticated() bool {
	return e.Auth.Check() == nil
}

// ListInboundEmailsParams filters received mail.
type ListInboundEmailsParams struct {
	ListParams
	RuleID string     `url:"ruleId,omitempty"`
	From   *time.Time `url:"from,omitempty"`
	To     *time.Time `url:"to,omitempty"`
}

// InboundService groups inbound routing rules and received mail.
type InboundService struct {
	Rules  *InboundRulesService
	Emails *InboundEmailsService
}

// InboundRulesService manages inbound routing rules.
type InboundRulesService service

// Create creates a rule.
func (s *InboundRulesService) Create(ctx context.Context, params *InboundRuleParams) (*InboundRule, error) {
	return call[InboundRule](ctx, s.api, http.MethodPost, "/v1/inbound/rules", params)
}

// List returns one page of rules.
func (s *InboundRulesService) List(ctx context.Context, params *ListParams) (*Page[InboundRule], error) {
	return list[InboundRule](ctx, s.api, "/v1/inbound/rules", params)
}

// Get retrieves a rule by ID.
func (s *InboundRulesService) Get(ctx context.Context, id string) (*InboundRule, error) {
	return callResource[InboundRule](ctx, s.api, http.MethodGet, pathf("/v1/inbound/rules/%s", id), "inbound rule", id, nil)
}

// Update changes a rule.
func (s *InboundRulesService) Update(ctx context.Context, id string, params *InboundRuleParams) (*InboundRule, error) {
	return callResource[InboundRule](ctx, s.api, http.MethodPatch, pathf("/v1/inbound/rules/%s", id), "inbound rule", id, params)
}

// Delete removes a rule.
func (s *InboundRulesService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/inbound/rules/%s", id), "inbound rule", id)
}

// InboundEmailsService reads stored inbound mail.
type InboundEmailsService service

// List returns one page of received emails.
func (s *InboundEmailsService) List(ctx context.Context, params *ListInboundEmailsParams) (*Page[InboundEmail], error) {
	return list[InboundEmail](ctx, s.api, "/v1/inbound/emails", params)
}

// Get retrieves a received email by ID.
func (s *InboundEmailsService) Get(ctx context.Context, id string) (*InboundEmail, error) {
	return callResource[InboundEmail](ctx, s.api, http.MethodGet, pathf("/v1/inbound/emails/%s", id), "inbound email", id, nil)
}

// Delete removes a received email.
func (s *InboundEmailsService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/inbound/emails/%s", id), "inbound email", id)
}
