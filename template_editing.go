package veilmail

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// CodeVersionConflict is the error code the API returns when a save carries
// a stale expected version.
const CodeVersionConflict = "version_conflict"

// TemplateEditor identifies a user taking part in an editing session.
type TemplateEditor struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// TemplateLock is an exclusive edit lock. The server releases it on its own
// once ExpiresAt passes without activity.
type TemplateLock struct {
	TemplateID string         `json:"templateId"`
	LockedBy   TemplateEditor `json:"lockedBy"`
	AcquiredAt time.Time      `json:"acquiredAt"`
	ExpiresAt  time.Time      `json:"expiresAt"`
}

// SaveTemplateParams saves template content. ExpectedVersion must equal the
// server's current version or the save is rejected.
type SaveTemplateParams struct {
	ExpectedVersion int
	Subject         string
	HTML            string
	Text            string
	Variables       []TemplateVariable
	Message         string
}

type saveTemplateBody struct {
	ExpectedVersion int                `json:"expectedVersion"`
	Subject         string             `json:"subject,omitempty"`
	HTML            string             `json:"html,omitempty"`
	Text            string             `json:"text,omitempty"`
	VariablesSchema []TemplateVariable `json:"variablesSchema,omitempty"`
	Message         string             `json:"message,omitempty"`
}

// PresenceEntry is one editor currently viewing a template. Entries that
// stop sending heartbeats are dropped by the server.
type PresenceEntry struct {
	TemplateEditor
	Section    string    `json:"section,omitempty"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// HeartbeatParams report what an editor is looking at.
type HeartbeatParams struct {
	Section string `json:"section,omitempty"`
}

// TemplateVersion is a saved revision of a template.
type TemplateVersion struct {
	Version   int            `json:"version"`
	Subject   string         `json:"subject,omitempty"`
	HTML      string         `json:"html,omitempty"`
	Text      string         `json:"text,omitempty"`
	Message   string         `json:"message,omitempty"`
	SavedBy   TemplateEditor `json:"savedBy"`
	CreatedAt time.Time      `json:"createdAt"`
}

// TemplateEditingService covers locking, versioned saves and presence for
// collaborative template editing. Concurrency rules are enforced by the
// server; conflicts are returned as API errors.
type TemplateEditingService service

// AcquireLock takes the edit lock on a template.
func (s *TemplateEditingService) AcquireLock(ctx context.Context, templateID string) (*TemplateLock, error) {
	return callResource[TemplateLock](ctx, s.api, http.MethodPost, pathf("/v1/templates/%s/lock", templateID), "template", templateID, nil)
}

// ReleaseLock gives the edit lock back.
func (s *TemplateEditingService) ReleaseLock(ctx context.Context, templateID string) error {
	return remove(ctx, s.api, pathf("/v1/templates/%s/lock", templateID), "template", templateID)
}

// Save stores new content if params.ExpectedVersion is still current. A
// stale version yields an error for which IsVersionConflict is true.
func (s *TemplateEditingService) Save(ctx context.Context, templateID string, params *SaveTemplateParams) (*Template, error) {
	if params == nil {
		return nil, errors.New("save params are required")
	}
	body := &saveTemplateBody{
		ExpectedVersion: params.ExpectedVersion,
		Subject:         params.Subject,
		HTML:            params.HTML,
		Text:            params.Text,
		VariablesSchema: params.Variables,
		Message:         params.Message,
	}
	dto, err := callResource[templateDTO](ctx, s.api, http.MethodPut, pathf("/v1/templates/%s/content", templateID), "template", templateID, body)
	if err != nil {
		return nil, err
	}
	return templateFromDTO(dto), nil
}

// Heartbeat keeps the caller listed in the template's presence.
func (s *TemplateEditingService) Heartbeat(ctx context.Context, templateID string, params *HeartbeatParams) error {
	if params == nil {
		params = &HeartbeatParams{}
	}
	err := s.api.Do(ctx, http.MethodPost, pathf("/v1/templates/%s/presence", templateID), params, nil)
	return wrapNotFound(err, "template", templateID)
}

// Presence lists the editors currently active on a template.
func (s *TemplateEditingService) Presence(ctx context.Context, templateID string) ([]PresenceEntry, error) {
	var entries []PresenceEntry
	if err := s.api.DoData(ctx, http.MethodGet, pathf("/v1/templates/%s/presence", templateID), nil, &entries); err != nil {
		return nil, wrapNotFound(err, "template", templateID)
	}
	return entries, nil
}

// Versions lists saved revisions, newest first.
func (s *TemplateEditingService) Versions(ctx context.Context, templateID string, params *ListParams) (*Page[TemplateVersion], error) {
	page, err := list[TemplateVersion](ctx, s.api, pathf("/v1/templates/%s/versions", templateID), params)
	return page, wrapNotFound(err, "template", templateID)
}

// IsVersionConflict reports whether err is a rejected save caused by a stale
// expected version.
func IsVersionConflict(err error) bool {
	apiErr, ok := AsError(err)
	return ok && (apiErr.Code == CodeVersionConflict || apiErr.StatusCode == http.StatusConflict)
}
