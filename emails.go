package veilmail

import (
	"context"
	"net/http"
	"time"

	"github.com/Resonia-Health/veilmail-go/internal/api"
)

// EmailType distinguishes transactional from marketing mail.
type EmailType string

const (
	// EmailTypeTransactional is triggered by a user action and exempt from
	// marketing consent rules.
	EmailTypeTransactional EmailType = "transactional"
	// EmailTypeMarketing is subject to unsubscribe and consent requirements.
	EmailTypeMarketing EmailType = "marketing"
)

// EmailStatus is the delivery state of an email.
type EmailStatus string

const (
	EmailStatusQueued    EmailStatus = "queued"
	EmailStatusScheduled EmailStatus = "scheduled"
	EmailStatusSending   EmailStatus = "sending"
	EmailStatusSent      EmailStatus = "sent"
	EmailStatusDelivered EmailStatus = "delivered"
	EmailStatusBounced   EmailStatus = "bounced"
	EmailStatusFailed    EmailStatus = "failed"
	EmailStatusCancelled EmailStatus = "cancelled"
)

// Attachment is a file attached to an email. Content is base64 encoded.
type Attachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content,omitempty"`
	Path        string `json:"path,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// Email is a sent, scheduled or queued message.
type Email struct {
	ID           string            `json:"id"`
	From         string            `json:"from"`
	To           []string          `json:"to"`
	Cc           []string          `json:"cc,omitempty"`
	Bcc          []string          `json:"bcc,omitempty"`
	ReplyTo      string            `json:"replyTo,omitempty"`
	Subject      string            `json:"subject"`
	HTML         string            `json:"html,omitempty"`
	Text         string            `json:"text,omitempty"`
	TemplateID   string            `json:"templateId,omitempty"`
	Type         EmailType         `json:"type,omitempty"`
	Status       EmailStatus       `json:"status"`
	Tags         []string          `json:"tags,omitempty"`
	Metadata     Metadata          `json:"metadata,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	ScheduledFor *time.Time        `json:"scheduledFor,omitempty"`
	SentAt       *time.Time        `json:"sentAt,omitempty"`
	DeliveredAt  *time.Time        `json:"deliveredAt,omitempty"`
	OpenedAt     *time.Time        `json:"openedAt,omitempty"`
	ClickedAt    *time.Time        `json:"clickedAt,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// SendEmailParams describes an email to send. Either HTML/Text or
// TemplateID must be provided.
type SendEmailParams struct {
	From         string            `json:"from"`
	To           []string          `json:"to"`
	Cc           []string          `json:"cc,omitempty"`
	Bcc          []string          `json:"bcc,omitempty"`
	ReplyTo      string            `json:"replyTo,omitempty"`
	Subject      string            `json:"subject,omitempty"`
	HTML         string            `json:"html,omitempty"`
	Text         string            `json:"text,omitempty"`
	TemplateID   string            `json:"templateId,omitempty"`
	TemplateData map[string]any    `json:"templateData,omitempty"`
	Type         EmailType         `json:"type,omitempty"`
	TopicID      string            `json:"topicId,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Metadata     Metadata          `json:"metadata,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	Attachments  []Attachment      `json:"attachments,omitempty"`
	ScheduledFor *time.Time        `json:"scheduledFor,omitempty"`

	// IdempotencyKey, when set, is sent as the Idempotency-Key header so a
	// repeated send is not delivered twice.
	IdempotencyKey string `json:"-"`
}

// BatchItemError is the failure of one item in a batch.
type BatchItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchSendResult is the outcome of one email in a batch send. Index is the
// item's position in the request.
type BatchSendResult struct {
	Index  int             `json:"index"`
	ID     string          `json:"id,omitempty"`
	Status EmailStatus     `json:"status,omitempty"`
	Error  *BatchItemError `json:"error,omitempty"`
}

// OK reports whether the item was accepted.
func (r BatchSendResult) OK() bool {
	return r.Error == nil
}

// BatchSendResponse holds per-item results in request order.
type BatchSendResponse struct {
	Data       []BatchSendResult `json:"data"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
}

// ListEmailsParams filters an email listing.
type ListEmailsParams struct {
	ListParams
	Status EmailStatus `url:"status,omitempty"`
	Tag    string      `url:"tag,omitempty"`
	From   *time.Time  `url:"from,omitempty"`
	To     *time.Time  `url:"to,omitempty"`
}

// UpdateEmailParams reschedules a scheduled email.
type UpdateEmailParams struct {
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}

// EmailsService sends and inspects emails.
type EmailsService service

// Send sends or schedules a single email.
func (s *EmailsService) Send(ctx context.Context, params *SendEmailParams) (*Email, error) {
	var opts []api.RequestOption
	if params != nil && params.IdempotencyKey != "" {
		opts = append(opts, api.WithHeader("Idempotency-Key", params.IdempotencyKey))
	}
	return call[Email](ctx, s.api, http.MethodPost, "/v1/emails", params, opts...)
}

// SendBatch sends up to MaxBatchSize emails in one request. Items succeed or
// fail independently; the batch is not split locally, so larger batches are
// rejected by the server with a validation error.
func (s *EmailsService) SendBatch(ctx context.Context, emails []SendEmailParams) (*BatchSendResponse, error) {
	body := struct {
		Emails []SendEmailParams `json:"emails"`
	}{Emails: emails}

	resp := &BatchSendResponse{}
	if err := s.api.Do(ctx, http.MethodPost, "/v1/emails/batch", body, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Get retrieves an email by ID.
func (s *EmailsService) Get(ctx context.Context, id string) (*Email, error) {
	return callResource[Email](ctx, s.api, http.MethodGet, pathf("/v1/emails/%s", id), "email", id, nil)
}

// List returns one page of emails.
func (s *EmailsService) List(ctx context.Context, params *ListEmailsParams) (*Page[Email], error) {
	return list[Email](ctx, s.api, "/v1/emails", params)
}

// Update changes a scheduled email that has not been sent yet.
func (s *EmailsService) Update(ctx context.Context, id string, params *UpdateEmailParams) (*Email, error) {
	return callResource[Email](ctx, s.api, http.MethodPatch, pathf("/v1/emails/%s", id), "email", id, params)
}

// Cancel cancels a scheduled email.
func (s *EmailsService) Cancel(ctx context.Context, id string) (*Email, error) {
	return callResource[Email](ctx, s.api, http.MethodPost, pathf("/v1/emails/%s/cancel", id), "email", id, nil)
}
