package veilmail

import (
	"context"
	"net/http"
	"time"

	"github.com/Resonia-Health/veilmail-go/internal/api"
)

// Audience is a list of subscribers.
type Audience struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DoubleOptIn     bool      `json:"doubleOptIn"`
	SubscriberCount int       `json:"subscriberCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AudienceParams creates or updates an audience.
type AudienceParams struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	DoubleOptIn *bool  `json:"doubleOptIn,omitempty"`
}

// AudiencesService manages audiences. Subscriber operations live on the
// audience-scoped service returned by Subscribers.
type AudiencesService service

// Create creates an audience.
func (s *AudiencesService) Create(ctx context.Context, params *AudienceParams) (*Audience, error) {
	return call[Audience](ctx, s.api, http.MethodPost, "/v1/audiences", params)
}

// List returns one page of audiences.
func (s *AudiencesService) List(ctx context.Context, params *ListParams) (*Page[Audience], error) {
	return list[Audience](ctx, s.api, "/v1/audiences", params)
}

// Get retrieves an audience by ID.
func (s *AudiencesService) Get(ctx context.Context, id string) (*Audience, error) {
	return callResource[Audience](ctx, s.api, http.MethodGet, pathf("/v1/audiences/%s", id), "audience", id, nil)
}

// Update changes an audience.
func (s *AudiencesService) Update(ctx context.Context, id string, params *AudienceParams) (*Audience, error) {
	return callResource[Audience](ctx, s.api, http.MethodPatch, pathf("/v1/audiences/%s", id), "audience", id, params)
}

// Delete removes an audience and its subscribers.
func (s *AudiencesService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/audiences/%s", id), "audience", id)
}

// Subscribers returns the subscriber operations of one audience. The
// returned service is cheap and may be discarded after use.
func (s *AudiencesService) Subscribers(audienceID string) *SubscribersService {
	return &SubscribersService{api: s.api, audienceID: audienceID}
}

// SubscriberStatus is the consent state of a subscriber.
type SubscriberStatus string

const (
	// SubscriberStatusPending awaits double opt-in confirmation.
	SubscriberStatusPending      SubscriberStatus = "pending"
	SubscriberStatusActive       SubscriberStatus = "active"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
	SubscriberStatusBounced      SubscriberStatus = "bounced"
	SubscriberStatusComplained   SubscriberStatus = "complained"
)

// Subscriber is a contact within an audience.
type Subscriber struct {
	ID          string           `json:"id"`
	AudienceID  string           `json:"audienceId"`
	Email       string           `json:"email"`
	FirstName   string           `json:"firstName,omitempty"`
	LastName    string           `json:"lastName,omitempty"`
	Status      SubscriberStatus `json:"status"`
	Properties  map[string]any   `json:"properties,omitempty"`
	Topics      []string         `json:"topics,omitempty"`
	ConfirmedAt *time.Time       `json:"confirmedAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// AddSubscriberParams adds a contact to an audience.
type AddSubscriberParams struct {
	Email      string         `json:"email"`
	FirstName  string         `json:"firstName,omitempty"`
	LastName   string         `json:"lastName,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Topics     []string       `json:"topics,omitempty"`
	// SkipConfirmation activates the subscriber even when the audience
	// requires double opt-in.
	SkipConfirmation bool `json:"skipConfirmation,omitempty"`
}

// UpdateSubscriberParams changes a subscriber.
type UpdateSubscriberParams struct {
	FirstName  string           `json:"firstName,omitempty"`
	LastName   string           `json:"lastName,omitempty"`
	Status     SubscriberStatus `json:"status,omitempty"`
	Properties map[string]any   `json:"properties,omitempty"`
	Topics     []string         `json:"topics,omitempty"`
}

// ListSubscribersParams filters a subscriber listing.
type ListSubscribersParams struct {
	ListParams
	Status SubscriberStatus `url:"status,omitempty"`
	Search string           `url:"search,omitempty"`
}

// ImportSubscribersParams bulk-loads contacts.
type ImportSubscribersParams struct {
	Subscribers []AddSubscriberParams `json:"subscribers"`
	// UpdateExisting overwrites fields of contacts already in the audience.
	UpdateExisting bool `json:"updateExisting,omitempty"`
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Imported int              `json:"imported"`
	Updated  int              `json:"updated"`
	Skipped  int              `json:"skipped"`
	Errors   []BatchItemError `json:"errors,omitempty"`
}

// SubscribersService manages the subscribers of one audience. Every call is
// scoped to the audience the service was obtained for.
type SubscribersService struct {
	api        *api.Client
	audienceID string
}

// AudienceID returns the audience the service is scoped to.
func (s *SubscribersService) AudienceID() string {
	return s.audienceID
}

func (s *SubscribersService) path(suffix ...string) string {
	p := pathf("/v1/audiences/%s/subscribers", s.audienceID)
	for _, part := range suffix {
		p += pathf("/%s", part)
	}
	return p
}

// Add adds a subscriber. With double opt-in the subscriber stays pending
// until confirmed.
func (s *SubscribersService) Add(ctx context.Context, params *AddSubscriberParams) (*Subscriber, error) {
	return callResource[Subscriber](ctx, s.api, http.MethodPost, s.path(), "audience", s.audienceID, params)
}

// List returns one page of subscribers.
func (s *SubscribersService) List(ctx context.Context, params *ListSubscribersParams) (*Page[Subscriber], error) {
	page, err := list[Subscriber](ctx, s.api, s.path(), params)
	return page, wrapNotFound(err, "audience", s.audienceID)
}

// Get retrieves a subscriber by ID.
func (s *SubscribersService) Get(ctx context.Context, id string) (*Subscriber, error) {
	return callResource[Subscriber](ctx, s.api, http.MethodGet, s.path(id), "subscriber", id, nil)
}

// Update changes a subscriber.
func (s *SubscribersService) Update(ctx context.Context, id string, params *UpdateSubscriberParams) (*Subscriber, error) {
	return callResource[Subscriber](ctx, s.api, http.MethodPatch, s.path(id), "subscriber", id, params)
}

// Remove deletes a subscriber from the audience.
func (s *SubscribersService) Remove(ctx context.Context, id string) error {
	return remove(ctx, s.api, s.path(id), "subscriber", id)
}

// Confirm completes double opt-in for a pending subscriber.
func (s *SubscribersService) Confirm(ctx context.Context, id string) (*Subscriber, error) {
	return callResource[Subscriber](ctx, s.api, http.MethodPost, s.path(id, "confirm"), "subscriber", id, nil)
}

// Import bulk-loads subscribers into the audience.
func (s *SubscribersService) Import(ctx context.Context, params *ImportSubscribersParams) (*ImportResult, error) {
	return callResource[ImportResult](ctx, s.api, http.MethodPost, s.path("import"), "audience", s.audienceID, params)
}
