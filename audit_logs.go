package veilmail

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// AuditActor is who performed an audited action.
type AuditActor struct {
	Type  string `json:"type"` // user, api_key, system
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// AuditLog is one recorded account action.
type AuditLog struct {
	ID           string          `json:"id"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resourceType"`
	ResourceID   string          `json:"resourceId,omitempty"`
	Actor        AuditActor      `json:"actor"`
	IPAddress    string          `json:"ipAddress,omitempty"`
	UserAgent    string          `json:"userAgent,omitempty"`
	Changes      json.RawMessage `json:"changes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListAuditLogsParams filters the audit log.
type ListAuditLogsParams struct {
	ListParams
	Action       string     `url:"action,omitempty"`
	ResourceType string     `url:"resourceType,omitempty"`
	ResourceID   string     `url:"resourceId,omitempty"`
	ActorID      string     `url:"actorId,omitempty"`
	From         *time.Time `url:"from,omitempty"`
	To           *time.Time `url:"to,omitempty"`
}

// AuditLogsService reads the account audit log.
type AuditLogsService service

// List returns one page of audit entries, newest first.
func (s *AuditLogsService) List(ctx context.Context, params *ListAuditLogsParams) (*Page[AuditLog], error) {
	return list[AuditLog](ctx, s.api, "/v1/audit-logs", params)
}

// Get retrieves an audit entry by ID.
func (s *AuditLogsService) Get(ctx context.Context, id string) (*AuditLog, error) {
	return callResource[AuditLog](ctx, s.api, http.MethodGet, pathf("/v1/audit-logs/%s", id), "audit log", id, nil)
}
