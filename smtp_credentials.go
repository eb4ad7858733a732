package veilmail

import (
	"context"
	"net/http"
	"time"
)

// SMTPCredential authenticates SMTP relay submissions.
type SMTPCredential struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	// Password is only returned by Create.
	Password   string     `json:"password,omitempty"`
	Host       string     `json:"host,omitempty"`
	Port       int        `json:"port,omitempty"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CreateSMTPCredentialParams names a new credential.
type CreateSMTPCredentialParams struct {
	Name string `json:"name"`
}

// SMTPCredentialsService manages SMTP relay credentials.
type SMTPCredentialsService service

// Create issues a credential. Store the returned password; it cannot be
// retrieved again.
func (s *SMTPCredentialsService) Create(ctx context.Context, params *CreateSMTPCredentialParams) (*SMTPCredential, error) {
	return call[SMTPCredential](ctx, s.api, http.MethodPost, "/v1/smtp-credentials", params)
}

// List returns one page of credentials.
func (s *SMTPCredentialsService) List(ctx context.Context, params *ListParams) (*Page[SMTPCredential], error) {
	return list[SMTPCredential](ctx, s.api, "/v1/smtp-credentials", params)
}

// Get retrieves a credential by ID.
func (s *SMTPCredentialsService) Get(ctx context.Context, id string) (*SMTPCredential, error) {
	return callResource[SMTPCredential](ctx, s.api, http.MethodGet, pathf("/v1/smtp-credentials/%s", id), "SMTP credential", id, nil)
}

// Delete revokes a credential.
func (s *SMTPCredentialsService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/smtp-credentials/%s", id), "SMTP credential", id)
}
