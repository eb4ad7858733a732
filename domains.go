package veilmail

import (
	"context"
	"net/http"
	"time"
)

// DomainStatus is the verification state of a sending domain.
type DomainStatus string

const (
	DomainStatusPending  DomainStatus = "pending"
	DomainStatusVerified DomainStatus = "verified"
	DomainStatusFailed   DomainStatus = "failed"
)

// DNSRecord is a record that must be published for a domain to verify.
type DNSRecord struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Value    string `json:"value"`
	Priority int    `json:"priority,omitempty"`
	TTL      int    `json:"ttl,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Domain is a sending domain.
type Domain struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Status        DomainStatus `json:"status"`
	Region        string       `json:"region,omitempty"`
	Records       []DNSRecord  `json:"records,omitempty"`
	TrackOpens    bool         `json:"trackOpens"`
	TrackClicks   bool         `json:"trackClicks"`
	ReturnPath    string       `json:"returnPath,omitempty"`
	VerifiedAt    *time.Time   `json:"verifiedAt,omitempty"`
	LastCheckedAt *time.Time   `json:"lastCheckedAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// CreateDomainParams registers a sending domain.
type CreateDomainParams struct {
	Name        string `json:"name"`
	Region      string `json:"region,omitempty"`
	TrackOpens  *bool  `json:"trackOpens,omitempty"`
	TrackClicks *bool  `json:"trackClicks,omitempty"`
	ReturnPath  string `json:"returnPath,omitempty"`
}

// UpdateDomainParams changes tracking settings of a domain.
type UpdateDomainParams struct {
	TrackOpens  *bool  `json:"trackOpens,omitempty"`
	TrackClicks *bool  `json:"trackClicks,omitempty"`
	ReturnPath  string `json:"returnPath,omitempty"`
}

// ListDomainsParams filters a domain listing.
type ListDomainsParams struct {
	ListParams
	Status DomainStatus `url:"status,omitempty"`
}

// DomainsService manages sending domains.
type DomainsService service

// Create registers a domain. The returned Domain lists the DNS records to
// publish before calling Verify.
func (s *DomainsService) Create(ctx context.Context, params *CreateDomainParams) (*Domain, error) {
	return call[Domain](ctx, s.api, http.MethodPost, "/v1/domains", params)
}

// List returns one page of domains.
func (s *DomainsService) List(ctx context.Context, params *ListDomainsParams) (*Page[Domain], error) {
	return list[Domain](ctx, s.api, "/v1/domains", params)
}

// Get retrieves a domain by ID.
func (s *DomainsService) Get(ctx context.Context, id string) (*Domain, error) {
	return callResource[Domain](ctx, s.api, http.MethodGet, pathf("/v1/domains/%s", id), "domain", id, nil)
}

// Update changes a domain's settings.
func (s *DomainsService) Update(ctx context.Context, id string, params *UpdateDomainParams) (*Domain, error) {
	return callResource[Domain](ctx, s.api, http.MethodPatch, pathf("/v1/domains/%s", id), "domain", id, params)
}

// Delete removes a domain.
func (s *DomainsService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.api, pathf("/v1/domains/%s", id), "domain", id)
}

// Verify asks the server to re-check the domain's DNS records and returns
// the updated domain.
func (s *DomainsService) Verify(ctx context.Context, id string) (*Domain, error) {
	return callResource[Domain](ctx, s.api, http.MethodPost, pathf("/v1/domains/%s/verify", id), "domain", id, nil)
}
