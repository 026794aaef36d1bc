// Package microsoft talks to the Microsoft Translator V2 HTTP TranslateArray
// endpoint using its XML request/response protocol.
package microsoft

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/FrenchMajesty/turbo-translate/clients"
	"github.com/FrenchMajesty/turbo-translate/rate_limit"
	"github.com/FrenchMajesty/turbo-translate/utils/logger"
	"github.com/google/uuid"
)

const (
	DefaultEndpoint = "https://api.microsofttranslator.com/v2/Http.svc/TranslateArray"
	DefaultFrom     = "en"
	DefaultTo       = "ar"

	providerName = "microsoft"

	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
	traceIDHeader         = "X-ClientTraceId"
	requestContentType    = "text/xml; charset=utf-8"
)

// Client is safe for concurrent use. The subscription key can be swapped at
// any time with SetAPIKey; each request reads the current value.
type Client struct {
	apiKey     atomic.Pointer[string]
	endpoint   string
	from       string
	to         string
	httpClient *http.Client
	logger     logger.Logger
}

var _ clients.TranslatorInterface = (*Client)(nil)

type Option func(*Client)

// WithEndpoint overrides the TranslateArray URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithLanguages sets the fixed source and target language tags
func WithLanguages(from, to string) Option {
	return func(c *Client) {
		c.from = from
		c.to = to
	}
}

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for dropped responses
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.logger = logger.WithPrefix(l, providerName)
	}
}

// NewClient creates a client using apiKey as the subscription key
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		from:     DefaultFrom,
		to:       DefaultTo,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.NewNoopLogger(),
	}
	c.SetAPIKey(apiKey)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetAPIKey replaces the subscription key for subsequent requests
func (c *Client) SetAPIKey(key string) {
	c.apiKey.Store(&key)
}

// APIKey returns the current subscription key
func (c *Client) APIKey() string {
	if key := c.apiKey.Load(); key != nil {
		return *key
	}
	return ""
}

// Languages returns the source and target language tags
func (c *Client) Languages() (from, to string) {
	return c.from, c.to
}

func (c *Client) Provider() rate_limit.Provider {
	return rate_limit.ProviderMicrosoft
}

// EstimateUnits counts characters, the unit the service bills and throttles on
func (c *Client) EstimateUnits(texts []string) int {
	total := 0
	for _, text := range texts {
		total += utf8.RuneCountInString(text)
	}
	return total
}

// TranslateString translates a single text. ok is false when the service
// returned no usable result.
func (c *Client) TranslateString(ctx context.Context, text string) (string, bool, error) {
	translations, ok, err := c.TranslateArray(ctx, []string{text})
	if err != nil || !ok {
		return "", ok, err
	}
	return translations[0], true, nil
}

// TranslateArray sends one TranslateArray request and maps the translations
// back onto texts by position.
func (c *Client) TranslateArray(ctx context.Context, texts []string) ([]string, bool, error) {
	if err := clients.ValidateTexts(texts); err != nil {
		return nil, false, err
	}

	body, err := encodeRequest(c.from, c.to, texts)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", requestContentType)
	req.Header.Set(subscriptionKeyHeader, c.APIKey())
	req.Header.Set(traceIDHeader, uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, &clients.TransportError{Provider: providerName, Op: "post", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, &clients.TransportError{Provider: providerName, Op: "read body", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, false, &clients.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 256),
		}
	case resp.StatusCode != http.StatusOK:
		c.logger.Printf("status %d, no result for %d texts", resp.StatusCode, len(texts))
		return nil, false, nil
	}

	translations, err := decodeResponse(respBody)
	if err != nil {
		c.logger.Printf("malformed response body: %v", err)
		return nil, false, nil
	}
	if len(translations) != len(texts) {
		c.logger.Printf("expected %d translations, got %d", len(texts), len(translations))
		return nil, false, nil
	}

	return translations, true, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
