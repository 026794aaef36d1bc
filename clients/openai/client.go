// Package openai translates through a chat completion model, exposing the same
// contract as the Microsoft adapter so the orchestrator can swap providers.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/FrenchMajesty/turbo-translate/clients"
	"github.com/FrenchMajesty/turbo-translate/rate_limit"
	"github.com/FrenchMajesty/turbo-translate/utils/logger"
	"github.com/FrenchMajesty/turbo-translate/utils/token_counter"
	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	DefaultModel = "gpt-4o-mini"
	DefaultFrom  = "en"
	DefaultTo    = "ar"

	providerName = "openai"

	systemPromptTemplate = "You are a translation engine. Translate every string in the \"texts\" array " +
		"of the user message from %s to %s. Reply with only a JSON object of the form " +
		"{\"translations\": [...]} holding exactly one translation per input string, in the same order."
)

// Client is safe for concurrent use.
type Client struct {
	apiKey       atomic.Pointer[string]
	model        string
	from         string
	to           string
	baseURL      string
	httpClient   *http.Client
	tokenCounter token_counter.TokenCounterInterface
	logger       logger.Logger
	api          openai.Client
}

var _ clients.TranslatorInterface = (*Client)(nil)

type Option func(*Client)

// WithModel sets the chat model
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithLanguages sets the fixed source and target language tags
func WithLanguages(from, to string) Option {
	return func(c *Client) {
		c.from = from
		c.to = to
	}
}

// WithBaseURL points the SDK at another API root (proxies, tests)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenCounter sets the counter used for quota estimates
func WithTokenCounter(tc token_counter.TokenCounterInterface) Option {
	return func(c *Client) {
		c.tokenCounter = tc
	}
}

// WithLogger sets the logger used for dropped responses
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.logger = logger.WithPrefix(l, providerName)
	}
}

// NewClient creates a client authenticating with apiKey. SDK level retries are
// disabled: 429s surface as *clients.StatusError for the orchestrator's retry.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		model: DefaultModel,
		from:  DefaultFrom,
		to:    DefaultTo,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger.NewNoopLogger(),
	}
	c.SetAPIKey(apiKey)

	for _, opt := range opts {
		opt(c)
	}

	if c.tokenCounter == nil {
		tc, err := token_counter.NewTokenCounter()
		if err != nil {
			c.logger.Printf("token counter unavailable, estimating by characters: %v", err)
		} else {
			c.tokenCounter = tc
		}
	}

	sdkOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(c.httpClient),
	}
	if c.baseURL != "" {
		sdkOpts = append(sdkOpts, option.WithBaseURL(c.baseURL))
	}
	c.api = openai.NewClient(sdkOpts...)

	return c
}

// SetAPIKey replaces the API key for subsequent requests
func (c *Client) SetAPIKey(key string) {
	c.apiKey.Store(&key)
}

// APIKey returns the current API key
func (c *Client) APIKey() string {
	if key := c.apiKey.Load(); key != nil {
		return *key
	}
	return ""
}

func (c *Client) Provider() rate_limit.Provider {
	return rate_limit.ProviderOpenAI
}

// EstimateUnits estimates prompt plus completion tokens for texts
func (c *Client) EstimateUnits(texts []string) int {
	payload, err := c.buildPayload(texts)
	if err != nil {
		payload = strings.Join(texts, "\n")
	}

	if c.tokenCounter == nil {
		// ~4 characters per token for latin text
		return (len(c.systemPrompt())+2*len(payload))/4 + 1
	}

	prompt := c.tokenCounter.CountPromptTokens(c.systemPrompt(), payload)
	completion := c.tokenCounter.CountTextsTokens(texts)
	return prompt + completion
}

// TranslateString translates a single text
func (c *Client) TranslateString(ctx context.Context, text string) (string, bool, error) {
	translations, ok, err := c.TranslateArray(ctx, []string{text})
	if err != nil || !ok {
		return "", ok, err
	}
	return translations[0], true, nil
}

// TranslateArray asks the model for one translation per input.
func (c *Client) TranslateArray(ctx context.Context, texts []string) ([]string, bool, error) {
	if err := clients.ValidateTexts(texts); err != nil {
		return nil, false, err
	}

	payload, err := c.buildPayload(texts)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build payload: %w", err)
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt()),
			openai.UserMessage(payload),
		},
		Temperature: openai.Float(0),
	}, option.WithAPIKey(c.APIKey()))
	if err != nil {
		var apiErr *openai.Error
		if !errors.As(err, &apiErr) {
			return nil, false, &clients.TransportError{Provider: providerName, Op: "chat completion", Err: err}
		}
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return nil, false, &clients.StatusError{
				Provider:   providerName,
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Message,
			}
		}
		c.logger.Printf("status %d, no result for %d texts", apiErr.StatusCode, len(texts))
		return nil, false, nil
	}

	if len(resp.Choices) == 0 {
		c.logger.Println("response has no choices")
		return nil, false, nil
	}

	translations, ok := parseTranslations(resp.Choices[0].Message.Content)
	if !ok {
		c.logger.Printf("malformed completion: %q", resp.Choices[0].Message.Content)
		return nil, false, nil
	}
	if len(translations) != len(texts) {
		c.logger.Printf("expected %d translations, got %d", len(texts), len(translations))
		return nil, false, nil
	}

	return translations, true, nil
}

func (c *Client) systemPrompt() string {
	return fmt.Sprintf(systemPromptTemplate, c.from, c.to)
}

func (c *Client) buildPayload(texts []string) (string, error) {
	payload, err := sjson.Set(`{}`, "from", c.from)
	if err != nil {
		return "", err
	}
	payload, err = sjson.Set(payload, "to", c.to)
	if err != nil {
		return "", err
	}
	return sjson.Set(payload, "texts", texts)
}

// parseTranslations reads {"translations": [...]} from the completion,
// tolerating a surrounding markdown code fence.
func parseTranslations(content string) ([]string, bool) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if !gjson.Valid(content) {
		return nil, false
	}

	result := gjson.Get(content, "translations")
	if !result.IsArray() {
		return nil, false
	}

	items := result.Array()
	translations := make([]string, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, false
		}
		translations[i] = item.String()
	}
	return translations, true
}
