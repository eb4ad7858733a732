package veilmail

import (
	"context"
	"net/http"
	"time"
)

// FormField is an input on a signup form.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
}

// Form is a hosted signup form feeding an audience.
type Form struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	AudienceID      string      `json:"audienceId"`
	Fields          []FormField `json:"fields,omitempty"`
	DoubleOptIn     bool        `json:"doubleOptIn"`
	RedirectURL     string      `json:"redirectUrl,omitempty"`
	SuccessMessage  string      `json:"successMessage,omitempty"`
	SubmissionCount int         `json:"submissionCount"`
	EmbedURL        string      `json:"embedUrl,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// FormParams creates or updates a form.
type FormParams struct {
	Name           string      `json:"name,omitempty"`
	AudienceID     string      `json:"audienceId,omitempty"`
	Fields         []FormField `json:"fields,omitempty"`
	DoubleOptIn    *bool       `json:"doubleOptIn,omitempty"`
	RedirectURL    string      `json:"redirectUrl,omitempty"`
	SuccessMessage string      `json:"successMessage,omitempty"`
}

// FormSubmission is one completed form.
type FormSubmission struct {
	ID           string         `json:"id"`
	FormID       string         `json:"formId"`
	SubscriberID string         `json:"subscriberId,omitempty"`
	Data         map[string]any `json:"data"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// FormsService manages signup forms.
type FormsService service

// Create creates a form.
func (s *FormsService) Create(ctx context.Context, params *FormParams) (*Form, error) {
	return call[Form](ctx, s.api, http.MethodPost, "/v1/forms", params)
}

// List returns one page of forms.
func (s *FormsService) List(ctx context.Context, params *ListParams) (*Page[Form], error) {
	return list[Form](ctx, s.api, "/v1/forms", params)
}

// Get retrieves a form by ID.
func (s *FormsService) Get(ctx context.Context, id string) (*Form, error) {
	return callResource[Form](ctx, s.api, http.MethodGet, pathf("/v1/forms/%s", id), "form", id, nil)
}

// Update changes a form.
func (s *FormsService) Update(ctx context.Context, id string, params *FormParams) (*Form, error) {
	return callResource[Form](ctx, s.api, http.MethodPatch, pathf("/v1/forms/%s", id), "form", id, params)
}

// Delete removes a form.
func (s *FormsService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/forms/%s", id), "form", id)
}

// Submissions returns one page of a form's submissions.
func (s *FormsService) Submissions(ctx context.Context, id string, params *ListParams) (*Page[FormSubmission], error) {
	page, err := list[FormSubmission](ctx, s.api, pathf("/v1/forms/%s/submissions", id), params)
	return page, wrapNotFound(err, "form", id)
}
