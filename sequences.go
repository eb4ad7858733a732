package veilmail

import (
	"context"
	"net/http"
	"time"
)

// SequenceStatus is the state of an automation sequence.
type SequenceStatus string

const (
	SequenceStatusDraft  SequenceStatus = "draft"
	SequenceStatusActive SequenceStatus = "active"
	SequenceStatusPaused SequenceStatus = "paused"
)

// SequenceTrigger says what enrolls subscribers into a sequence.
type SequenceTrigger string

const (
	SequenceTriggerManual        SequenceTrigger = "manual"
	SequenceTriggerSubscribed    SequenceTrigger = "audience_subscribed"
	SequenceTriggerEvent         SequenceTrigger = "event"
	SequenceTriggerPropertyMatch SequenceTrigger = "property_match"
)

// SequenceStep is one email in a sequence, sent Delay after the previous step.
type SequenceStep struct {
	ID           string `json:"id"`
	Position     int    `json:"position"`
	Subject      string `json:"subject,omitempty"`
	TemplateID   string `json:"templateId,omitempty"`
	HTML         string `json:"html,omitempty"`
	Text         string `json:"text,omitempty"`
	DelayMinutes int    `json:"delayMinutes"`
}

// Delay returns the wait before the step is sent.
func (s SequenceStep) Delay() time.Duration {
	return time.Duration(s.DelayMinutes) * time.Minute
}

// Sequence is an automated series of emails.
type Sequence struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	AudienceID    string          `json:"audienceId,omitempty"`
	From          string          `json:"from,omitempty"`
	Trigger       SequenceTrigger `json:"trigger"`
	TriggerConfig map[string]any  `json:"triggerConfig,omitempty"`
	Status        SequenceStatus  `json:"status"`
	Steps         []SequenceStep  `json:"steps,omitempty"`
	EnrolledCount int             `json:"enrolledCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// SequenceParams creates or updates a sequence.
type SequenceParams struct {
	Name          string          `json:"name,omitempty"`
	AudienceID    string          `json:"audienceId,omitempty"`
	From          string          `json:"from,omitempty"`
	Trigger       SequenceTrigger `json:"trigger,omitempty"`
	TriggerConfig map[string]any  `json:"triggerConfig,omitempty"`
}

// SequenceStepParams creates or updates a step.
type SequenceStepParams struct {
	Position     *int   `json:"position,omitempty"`
	Subject      string `json:"subject,omitempty"`
	TemplateID   string `json:"templateId,omitempty"`
	HTML         string `json:"html,omitempty"`
	Text         string `json:"text,omitempty"`
	DelayMinutes *int   `json:"delayMinutes,omitempty"`
}

// Enrollment is a subscriber's progress through a sequence.
type Enrollment struct {
	ID           string     `json:"id"`
	SequenceID   string     `json:"sequenceId"`
	SubscriberID string     `json:"subscriberId"`
	CurrentStep  int        `json:"currentStep"`
	Status       string     `json:"status"`
	NextSendAt   *time.Time `json:"nextSendAt,omitempty"`
	EnrolledAt   time.Time  `json:"enrolledAt"`
}

// ListSequencesParams filters a sequence listing.
type ListSequencesParams struct {
	ListParams
	Status SequenceStatus `url:"status,omitempty"`
}

// SequencesService manages automation sequences.
type SequencesService service

// Create creates a draft sequence.
func (s *SequencesService) Create(ctx context.Context, params *SequenceParams) (*Sequence, error) {
	return call[Sequence](ctx, s.api, http.MethodPost, "/v1/sequences", params)
}

// List returns one page of sequences.
func (s *SequencesService) List(ctx context.Context, params *ListSequencesParams) (*Page[Sequence], error) {
	return list[Sequence](ctx, s.api, "/v1/sequences", params)
}

// Get retrieves a sequence and its steps.
func (s *SequencesService) Get(ctx context.Context, id string) (*Sequence, error) {
	return callResource[Sequence](ctx, s.api, http.MethodGet, pathf("/v1/sequences/%s", id), "sequence", id, nil)
}

// Update changes a sequence.
func (s *SequencesService) Update(ctx context.Context, id string, params *SequenceParams) (*Sequence, error) {
	return callResource[Sequence](ctx, s.api, http.MethodPatch, pathf("/v1/sequences/%s", id), "sequence", id, params)
}

// Delete removes a sequence.
func (s *SequencesService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/sequences/%s", id), "sequence", id)
}

// Activate starts enrolling and sending.
func (s *SequencesService) Activate(ctx context.Context, id string) (*Sequence, error) {
	return callResource[Sequence](ctx, s.api, http.MethodPost, pathf("/v1/sequences/%s/activate", id), "sequence", id, nil)
}

// Pause stops sending; enrollments keep their position.
func (s *SequencesService) Pause(ctx context.Context, id string) (*Sequence, error) {
	return callResource[Sequence](ctx, s.api, http.MethodPost, pathf("/v1/sequences/%s/pause", id), "sequence", id, nil)
}

// AddStep appends a step, or inserts it at params.Position.
func (s *SequencesService) AddStep(ctx context.Context, sequenceID string, params *SequenceStepParams) (*SequenceStep, error) {
	return callResource[SequenceStep](ctx, s.api, http.MethodPost, pathf("/v1/sequences/%s/steps", sequenceID), "sequence", sequenceID, params)
}

// UpdateStep changes a step.
func (s *SequencesService) UpdateStep(ctx context.Context, sequenceID, stepID string, params *SequenceStepParams) (*SequenceStep, error) {
	return callResource[SequenceStep](ctx, s.api, http.MethodPatch, pathf("/v1/sequences/%s/steps/%s", sequenceID, stepID), "sequence step", stepID, params)
}

// RemoveStep deletes a step.
func (s *SequencesService) RemoveStep(ctx context.Context, sequenceID, stepID string) error {
	return remove(ctx, s.api, pathf("/v1/sequences/%s/steps/%s", sequenceID, stepID), "sequence step", stepID)
}

// Enroll adds a subscriber to a sequence.
func (s *SequencesService) Enroll(ctx context.Context, sequenceID, subscriberID string) (*Enrollment, error) {
	body := struct {
		SubscriberID string `json:"subscriberId"`
	}{SubscriberID: subscriberID}
	return callResource[Enrollment](ctx, s.api, http.MethodPost, pathf("/v1/sequences/%s/enroll", sequenceID), "sequence", sequenceID, body)
}

// Unenroll removes a subscriber from a sequence.
func (s *SequencesService) Unenroll(ctx context.Context, sequenceID, subscriberID string) error {
	return remove(ctx, s.api, pathf("/v1/sequences/%s/enrollments/%s", sequenceID, subscriberID), "enrollment", subscriberID)
}
