package veilmail

import (
	"context"
	"net/http"
	"time"
)

// DedicatedIPStatus is the provisioning state of a dedicated IP.
type DedicatedIPStatus string

const (
	DedicatedIPStatusProvisioning DedicatedIPStatus = "provisioning"
	// DedicatedIPStatusWarming is sending under a ramped daily limit.
	DedicatedIPStatusWarming  DedicatedIPStatus = "warming"
	DedicatedIPStatusActive   DedicatedIPStatus = "active"
	DedicatedIPStatusReleased DedicatedIPStatus = "released"
)

// DedicatedIP is a sending IP reserved for the account.
type DedicatedIP struct {
	ID         string            `json:"id"`
	Address    string            `json:"address"`
	Pool       string            `json:"pool,omitempty"`
	Region     string            `json:"region,omitempty"`
	Status     DedicatedIPStatus `json:"status"`
	WarmupDay  int               `json:"warmupDay,omitempty"`
	DailyLimit int               `json:"dailyLimit,omitempty"`
	Reputation float64           `json:"reputation,omitempty"`
	DomainIDs  []string          `json:"domainIds,omitempty"`
	ReleasedAt *time.Time        `json:"releasedAt,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// RequestDedicatedIPParams asks for a new dedicated IP.
type RequestDedicatedIPParams struct {
	Region string `json:"region,omitempty"`
	Pool   string `json:"pool,omitempty"`
	// Warmup starts the IP on a ramped sending schedule.
	Warmup *bool `json:"warmup,omitempty"`
}

// UpdateDedicatedIPParams reassigns a dedicated IP.
type UpdateDedicatedIPParams struct {
	Pool      string   `json:"pool,omitempty"`
	DomainIDs []string `json:"domainIds,omitempty"`
}

// DedicatedIPsService manages dedicated sending IPs.
type DedicatedIPsService service

// List returns one page of dedicated IPs.
func (s *DedicatedIPsService) List(ctx context.Context, params *ListParams) (*Page[DedicatedIP], error) {
	return list[DedicatedIP](ctx, s.api, "/v1/dedicated-ips", params)
}

// Get retrieves a dedicated IP by ID.
func (s *DedicatedIPsService) Get(ctx context.Context, id string) (*DedicatedIP, error) {
	return callResource[DedicatedIP](ctx, s.api, http.MethodGet, pathf("/v1/dedicated-ips/%s", id), "dedicated IP", id, nil)
}

// Request provisions a new dedicated IP.
func (s *DedicatedIPsService) Request(ctx context.Context, params *RequestDedicatedIPParams) (*DedicatedIP, error) {
	return call[DedicatedIP](ctx, s.api, http.MethodPost, "/v1/dedicated-ips", params)
}

// Update changes the pool or domains of a dedicated IP.
func (s *DedicatedIPsService) Update(ctx context.Context, id string, params *UpdateDedicatedIPParams) (*DedicatedIP, error) {
	return callResource[DedicatedIP](ctx, s.api, http.MethodPatch, pathf("/v1/dedicated-ips/%s", id), "dedicated IP", id, params)
}

// Release gives a dedicated IP back.
func (s *DedicatedIPsService) Release(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/dedicated-ips/%s", id), "dedicated IP", id)
}
