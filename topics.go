package veilmail

import (
	"context"
	"net/http"
	"time"
)

// Topic is a subscription preference category subscribers can opt out of
// independently.
type Topic struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DefaultOn   bool      `json:"defaultOn"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TopicParams creates or updates a topic.
type TopicParams struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	DefaultOn   *bool  `json:"defaultOn,omitempty"`
	Public      *bool  `json:"public,omitempty"`
}

// TopicsService manages subscription topics.
type TopicsService service

// Create creates a topic.
func (s *TopicsService) Create(ctx context.Context, params *TopicParams) (*Topic, error) {
	return call[Topic](ctx, s.api, http.MethodPost, "/v1/topics", params)
}

// List returns one page of topics.
func (s *TopicsService) List(ctx context.Context, params *ListParams) (*Page[Topic], error) {
	return list[Topic](ctx, s.api, "/v1/topics", params)
}

// Get retrieves a topic by ID.
func (s *TopicsService) Get(ctx context.Context, id string) (*Topic, error) {
	return callResource[Topic](ctx, s.api, http.MethodGet, pathf("/v1/topics/%s", id), "topic", id, nil)
}

// Update changes a topic.
func (s *TopicsService) Update(ctx context.Context, id string, params *TopicParams) (*Topic, error) {
	return callResource[Topic](ctx, s.api, http.MethodPatch, pathf("/v1/topics/%s", id), "topic", id, params)
}

// Delete removes a topic.
func (s *TopicsService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/topics/%s", id), "topic", id)
}
