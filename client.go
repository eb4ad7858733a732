package veilmail

import (
	"github.com/Resonia-Health/veilmail-go/internal/api"
)

// Version is the SDK version reported in the User-Agent and X-VeilMail-SDK
// headers.
const Version = "1.0.0"

// Client is the VeilMail API client. It is safe for concurrent use; each
// call performs exactly one HTTP request and holds no per-call state.
type Client struct {
	apiClient *api.Client
	common    service

	Emails          *EmailsService
	Domains         *DomainsService
	Templates       *TemplatesService
	Audiences       *AudiencesService
	Campaigns       *CampaignsService
	Sequences       *SequencesService
	Feeds           *FeedsService
	Forms           *FormsService
	Webhooks        *WebhooksService
	Topics          *TopicsService
	Properties      *PropertiesService
	Analytics       *AnalyticsService
	Validation      *ValidationService
	Inbound         *InboundService
	DedicatedIPs    *DedicatedIPsService
	SMTPCredentials *SMTPCredentialsService
	AuditLogs       *AuditLogsService
	Suppressions    *SuppressionsService
}

// service is the shared base of every resource facade.
type service struct {
	api *api.Client
}

// New creates a client authenticated with apiKey. The key must start with
// "veil_live_" or "veil_test_". Invalid configuration fails here, before any
// request is made.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(apiKey, cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{apiClient: apiClient}
	c.common.api = apiClient

	c.Emails = (*EmailsService)(&c.common)
	c.Domains = (*DomainsService)(&c.common)
	c.Templates = &TemplatesService{api: apiClient, Editing: (*TemplateEditingService)(&c.common)}
	c.Audiences = (*AudiencesService)(&c.common)
	c.Campaigns = (*CampaignsService)(&c.common)
	c.Sequences = (*SequencesService)(&c.common)
	c.Feeds = (*FeedsService)(&c.common)
	c.Forms = (*FormsService)(&c.common)
	c.Webhooks = (*WebhooksService)(&c.common)
	c.Topics = (*TopicsService)(&c.common)
	c.Properties = (*PropertiesService)(&c.common)
	c.Analytics = (*AnalyticsService)(&c.common)
	c.Validation = (*ValidationService)(&c.common)
	c.Inbound = &InboundService{
		Rules:  (*InboundRulesService)(&c.common),
		Emails: (*InboundEmailsService)(&c.common),
	}
	c.DedicatedIPs = (*DedicatedIPsService)(&c.common)
	c.SMTPCredentials = (*SMTPCredentialsService)(&c.common)
	c.AuditLogs = (*AuditLogsService)(&c.common)
	c.Suppressions = (*SuppressionsService)(&c.common)

	return c, nil
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithTimeout(cfg.timeout),
		api.WithVersion(Version),
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	if cfg.userAgent != "" {
		apiOpts = append(apiOpts, api.WithUserAgent(cfg.userAgent))
	}
	if cfg.logger != nil {
		apiOpts = append(apiOpts, api.WithLogger(*cfg.logger))
	}
	return api.New(apiKey, apiOpts...)
}

// IsTestMode reports whether the client uses a test ("veil_test_") key.
// Test-mode sends are accepted but never delivered.
func (c *Client) IsTestMode() bool {
	return c.apiClient.IsTestKey()
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}
