package veilmail

import (
	"context"
	"net/http"
	"time"
)

// Feed is an RSS/Atom feed that can drive digest campaigns.
type Feed struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	AudienceID    string     `json:"audienceId,omitempty"`
	TemplateID    string     `json:"templateId,omitempty"`
	Schedule      string     `json:"schedule,omitempty"`
	Active        bool       `json:"active"`
	LastPolledAt  *time.Time `json:"lastPolledAt,omitempty"`
	LastItemCount int        `json:"lastItemCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FeedParams creates or updates a feed.
type FeedParams struct {
	Name       string `json:"name,omitempty"`
	URL        string `json:"url,omitempty"`
	AudienceID string `json:"audienceId,omitempty"`
	TemplateID string `json:"templateId,omitempty"`
	// Schedule is a cron expression for automatic polling.
	Schedule string `json:"schedule,omitempty"`
	Active   *bool  `json:"active,omitempty"`
}

// FeedItem is one entry fetched from a feed.
type FeedItem struct {
	ID          string     `json:"id"`
	FeedID      string     `json:"feedId"`
	GUID        string     `json:"guid"`
	Title       string     `json:"title"`
	Link        string     `json:"link,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Sent        bool       `json:"sent"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// PollResult reports what a manual poll found.
type PollResult struct {
	FeedID   string     `json:"feedId"`
	NewItems int        `json:"newItems"`
	Items    []FeedItem `json:"items,omitempty"`
	PolledAt time.Time  `json:"polledAt"`
}

// FeedsService manages feeds.
type FeedsService service

// Create registers a feed.
func (s *FeedsService) Create(ctx context.Context, params *FeedParams) (*Feed, error) {
	return call[Feed](ctx, s.api, http.MethodPost, "/v1/feeds", params)
}

// List returns one page of feeds.
func (s *FeedsService) List(ctx context.Context, params *ListParams) (*Page[Feed], error) {
	return list[Feed](ctx, s.api, "/v1/feeds", params)
}

// Get retrieves a feed by ID.
func (s *FeedsService) Get(ctx context.Context, id string) (*Feed, error) {
	return callResource[Feed](ctx, s.api, http.MethodGet, pathf("/v1/feeds/%s", id), "feed", id, nil)
}

// Update changes a feed.
func (s *FeedsService) Update(ctx context.Context, id string, params *FeedParams) (*Feed, error) {
	return callResource[Feed](ctx, s.api, http.MethodPatch, pathf("/v1/feeds/%s", id), "feed", id, params)
}

// Delete removes a feed.
func (s *FeedsService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/feeds/%s", id), "feed", id)
}

// Poll fetches the feed now instead of waiting for its schedule.
func (s *FeedsService) Poll(ctx context.Context, id string) (*PollResult, error) {
	return callResource[PollResult](ctx, s.api, http.MethodPost, pathf("/v1/feeds/%s/poll", id), "feed", id, nil)
}

// Items returns one page of items fetched from the feed.
func (s *FeedsService) Items(ctx context.Context, id string, params *ListParams) (*Page[FeedItem], error) {
	page, err := list[FeedItem](ctx, s.api, pathf("/v1/feeds/%s/items", id), params)
	return page, wrapNotFound(err, "feed", id)
}
