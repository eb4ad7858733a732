package veilmail

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://api.veilmail.xyz"
	defaultTimeout = 30 * time.Second
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *zerolog.Logger
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL. Useful for staging or a local mock.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Its own Timeout, if any, applies
// in addition to the per-request timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout. Must be positive.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithUserAgent prepends a product token to the User-Agent header,
// e.g. "myapp/1.2".
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing. Requests are logged
// at debug level and transport failures at warn level. The API key is never
// logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = &logger
	}
}
