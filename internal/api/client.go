package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"

	"github.com/Resonia-Health/veilmail-go/internal/apierrors"
)

// Defaults applied by New.
const (
	DefaultBaseURL = "https://api.veilmail.xyz"
	DefaultTimeout = 30 * time.Second
)

// API key prefixes distinguishing live and test credentials.
const (
	LiveKeyPrefix = "veil_live_"
	TestKeyPrefix = "veil_test_"
)

// Client is the HTTP API client.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	sdkHeader  string
	logger     zerolog.Logger
}

// Option configures the API client.
type Option func(*config)

type config struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	version    string
	logger     *zerolog.Logger
}

// WithBaseURL sets the base URL.
func WithBaseURL(u string) Option {
	return func(c *config) {
		c.baseURL = u
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// WithUserAgent appends a product token to the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithVersion sets the SDK version reported in identification headers.
func WithVersion(v string) Option {
	return func(c *config) {
		c.version = v
	}
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = &l
	}
}

// ValidateAPIKey checks that key is present and carries a live or test prefix.
func ValidateAPIKey(key string) error {
	if key == "" {
		return apierrors.ErrMissingAPIKey
	}
	if !strings.HasPrefix(key, LiveKeyPrefix) && !strings.HasPrefix(key, TestKeyPrefix) {
		return fmt.Errorf("%w: must start with %q or %q", apierrors.ErrInvalidAPIKey, LiveKeyPrefix, TestKeyPrefix)
	}
	return nil
}

// New creates a new API client. All configuration is validated here so that
// no request is ever issued with an invalid setup.
func New(apiKey string, opts ...Option) (*Client, error) {
	if err := ValidateAPIKey(apiKey); err != nil {
		return nil, err
	}

	cfg := &config{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		version: "dev",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be an absolute http(s) URL", cfg.baseURL)
	}
	if cfg.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", cfg.timeout)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := zerolog.Nop()
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	ua := "veilmail-go/" + cfg.version
	if cfg.userAgent != "" {
		ua = cfg.userAgent + " " + ua
	}

	return &Client{
		baseURL:    base,
		apiKey:     apiKey,
		timeout:    cfg.timeout,
		httpClient: httpClient,
		userAgent:  ua,
		sdkHeader:  "go/" + cfg.version,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// IsTestKey reports whether the client authenticates with a test key.
func (c *Client) IsTestKey() bool {
	return strings.HasPrefix(c.apiKey, TestKeyPrefix)
}

// RequestOption customizes a single request.
type RequestOption func(*request)

type request struct {
	query   any
	headers http.Header
}

// WithQuery sets query parameters. v may be url.Values or a struct with
// `url` tags; zero values tagged omitempty are left out.
func WithQuery(v any) RequestOption {
	return func(r *request) {
		r.query = v
	}
}

// WithHeader sets an extra request header, replacing any default value.
func WithHeader(key, value string) RequestOption {
	return func(r *request) {
		if r.headers == nil {
			r.headers = http.Header{}
		}
		r.headers.Add(key, value)
	}
}

// Do performs one HTTP round trip. body, when non-nil, is sent as JSON.
// result receives the decoded response: JSON bodies are unmarshaled into it,
// non-JSON bodies are stored into *string or *[]byte targets. A 204 leaves
// result untouched. Non-2xx responses return an *apierrors.Error.
func (c *Client) Do(ctx context.Context, method, path string, body, result any, opts ...RequestOption) error {
	r := &request{}
	for _, opt := range opts {
		opt(r)
	}

	u, err := c.buildURL(path, r.query)
	if err != nil {
		return err
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-VeilMail-SDK", c.sdkHeader)
	for k, vs := range r.headers {
		req.Header[k] = vs
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = c.transportError(ctx, reqCtx, err)
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).
			Dur("elapsed", time.Since(start)).Msg("VeilMail request failed")
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, reqCtx, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("VeilMail request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := apierrors.FromResponse(resp.StatusCode, resp.Header, data)
		c.logger.Debug().Str("kind", string(apiErr.Kind)).Str("code", apiErr.Code).
			Str("request_id", apiErr.RequestID).Msg("VeilMail error response")
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent || result == nil {
		return nil
	}

	return decodeBody(resp.Header.Get("Content-Type"), data, result)
}

// transportError maps a failed round trip to a timeout, a caller
// cancellation, or a network error.
func (c *Client) transportError(parent, reqCtx context.Context, err error) error {
	if parent.Err() != nil {
		return fmt.Errorf("request cancelled: %w", parent.Err())
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(c.timeout, reqCtx.Err())
	}
	return apierrors.NewNetworkError(err)
}

func (c *Client) buildURL(path string, q any) (string, error) {
	u := c.baseURL.String() + "/" + strings.TrimLeft(path, "/")

	if q == nil {
		return u, nil
	}

	var values url.Values
	switch v := q.(type) {
	case url.Values:
		values = v
	default:
		var err error
		values, err = query.Values(q)
		if err != nil {
			return "", fmt.Errorf("failed to encode query: %w", err)
		}
	}
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u, nil
}

func decodeBody(contentType string, data []byte, result any) error {
	if isJSON(contentType) {
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	switch r := result.(type) {
	case *string:
		*r = string(data)
	case *[]byte:
		*r = data
	}
	return nil
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
