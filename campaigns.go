package veilmail

import (
	"context"
	"net/http"
	"time"
)

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusSending   CampaignStatus = "sending"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusSent      CampaignStatus = "sent"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// CampaignStats are delivery counters for a campaign.
type CampaignStats struct {
	Recipients   int `json:"recipients"`
	Sent         int `json:"sent"`
	Delivered    int `json:"delivered"`
	Opened       int `json:"opened"`
	Clicked      int `json:"clicked"`
	Bounced      int `json:"bounced"`
	Complained   int `json:"complained"`
	Unsubscribed int `json:"unsubscribed"`
}

// Campaign is a marketing send to an audience.
type Campaign struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Subject     string         `json:"subject"`
	PreviewText string         `json:"previewText,omitempty"`
	From        string         `json:"from"`
	ReplyTo     string         `json:"replyTo,omitempty"`
	AudienceID  string         `json:"audienceId"`
	TopicID     string         `json:"topicId,omitempty"`
	TemplateID  string         `json:"templateId,omitempty"`
	HTML        string         `json:"html,omitempty"`
	Text        string         `json:"text,omitempty"`
	Status      CampaignStatus `json:"status"`
	Tags        []string       `json:"tags,omitempty"`
	Stats       *CampaignStats `json:"stats,omitempty"`
	ScheduledAt *time.Time     `json:"scheduledAt,omitempty"`
	SentAt      *time.Time     `json:"sentAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CampaignParams creates or updates a campaign.
type CampaignParams struct {
	Name         string         `json:"name,omitempty"`
	Subject      string         `json:"subject,omitempty"`
	PreviewText  string         `json:"previewText,omitempty"`
	From         string         `json:"from,omitempty"`
	ReplyTo      string         `json:"replyTo,omitempty"`
	AudienceID   string         `json:"audienceId,omitempty"`
	TopicID      string         `json:"topicId,omitempty"`
	TemplateID   string         `json:"templateId,omitempty"`
	TemplateData map[string]any `json:"templateData,omitempty"`
	HTML         string         `json:"html,omitempty"`
	Text         string         `json:"text,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
}

// ListCampaignsParams filters a campaign listing.
type ListCampaignsParams struct {
	ListParams
	Status CampaignStatus `url:"status,omitempty"`
}

// CampaignsService manages campaigns. Lifecycle calls are plain triggers;
// illegal transitions are rejected by the server.
type CampaignsService service

// Create creates a draft campaign.
func (s *CampaignsService) Create(ctx context.Context, params *CampaignParams) (*Campaign, error) {
	return call[Campaign](ctx, s.api, http.MethodPost, "/v1/campaigns", params)
}

// List returns one page of campaigns.
func (s *CampaignsService) List(ctx context.Context, params *ListCampaignsParams) (*Page[Campaign], error) {
	return list[Campaign](ctx, s.api, "/v1/campaigns", params)
}

// Get retrieves a campaign by ID.
func (s *CampaignsService) Get(ctx context.Context, id string) (*Campaign, error) {
	return callResource[Campaign](ctx, s.api, http.MethodGet, pathf("/v1/campaigns/%s", id), "campaign", id, nil)
}

// Update changes a draft campaign.
func (s *CampaignsService) Update(ctx context.Context, id string, params *CampaignParams) (*Campaign, error) {
	return callResource[Campaign](ctx, s.api, http.MethodPatch, pathf("/v1/campaigns/%s", id), "campaign", id, params)
}

// Delete removes a campaign.
func (s *CampaignsService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/campaigns/%s", id), "campaign", id)
}

// Schedule schedules the campaign for at.
func (s *CampaignsService) Schedule(ctx context.Context, id string, at time.Time) (*Campaign, error) {
	body := struct {
		ScheduledAt time.Time `json:"scheduledAt"`
	}{ScheduledAt: at}
	return s.transition(ctx, id, "schedule", body)
}

// Send starts sending the campaign immediately.
func (s *CampaignsService) Send(ctx context.Context, id string) (*Campaign, error) {
	return s.transition(ctx, id, "send", nil)
}

// Pause pauses a sending campaign.
func (s *CampaignsService) Pause(ctx context.Context, id string) (*Campaign, error) {
	return s.transition(ctx, id, "pause", nil)
}

// Resume resumes a paused campaign.
func (s *CampaignsService) Resume(ctx context.Context, id string) (*Campaign, error) {
	return s.transition(ctx, id, "resume", nil)
}

// Cancel cancels a scheduled or paused campaign.
func (s *CampaignsService) Cancel(ctx context.Context, id string) (*Campaign, error) {
	return s.transition(ctx, id, "cancel", nil)
}

// SendTest sends a preview of the campaign to the given addresses.
func (s *CampaignsService) SendTest(ctx context.Context, id string, to []string) error {
	body := struct {
		To []string `json:"to"`
	}{To: to}
	err := s.api.Do(ctx, http.MethodPost, pathf("/v1/campaigns/%s/test", id), body, nil)
	return wrapNotFound(err, "campaign", id)
}

func (s *CampaignsService) transition(ctx context.Context, id, action string, body any) (*Campaign, error) {
	return callResource[Campaign](ctx, s.api, http.MethodPost, pathf("/v1/campaigns/%s/%s", id, action), "campaign", id, body)
}
