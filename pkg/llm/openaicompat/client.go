package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/precishq/precis/pkg/debug"
	"github.com/precishq/precis/pkg/llm"
)

// Config holds the per-provider knobs of the shared client. Adapters fill
// it from their own configuration plus provider constants.
type Config struct {
	// Name identifies the provider in results (e.g., "openai").
	Name string

	// APIKey authenticates against the backend. Required.
	APIKey string

	// BaseURL is the API root (e.g., "https://api.openai.com/v1").
	// Trailing slashes are stripped.
	BaseURL string

	// DefaultModel is used when a request does not name a model.
	DefaultModel string

	// BannedSchemaKeywords are removed from schema documents before they
	// are attached to a request.
	BannedSchemaKeywords []string

	// ExtraHeaders are set on every outbound request, e.g. attribution
	// headers required by a routing backend.
	ExtraHeaders map[string]string
}

// Client performs requests against an OpenAI-compatible Chat Completions
// backend. Configuration is fixed at construction; Generate holds no state
// across calls, so a Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client

	name           string
	apiKey         string
	baseURL        string
	defaultModel   string
	bannedKeywords []string
	extraHeaders   map[string]string
}

// NewClient creates a Client. The credential is required and checked here
// so that a misconfigured adapter fails at startup, not on first use.
//
// No client-level timeout is set: each call carries its own deadline via
// GenerateParams.Timeout, and calls without one run unbounded.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewConfigurationError(cfg.Name + ": APIKey is required")
	}
	if cfg.BaseURL == "" {
		return nil, llm.NewConfigurationError(cfg.Name + ": BaseURL is required")
	}
	if cfg.DefaultModel == "" {
		return nil, llm.NewConfigurationError(cfg.Name + ": DefaultModel is required")
	}

	return &Client{
		httpClient:     &http.Client{},
		name:           cfg.Name,
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		defaultModel:   cfg.DefaultModel,
		bannedKeywords: cfg.BannedSchemaKeywords,
		extraHeaders:   cfg.ExtraHeaders,
	}, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return c.name
}

// DefaultModel returns the model used when a request names none.
func (c *Client) DefaultModel() string {
	return c.defaultModel
}

// Generate performs a single Chat Completions request. One attempt only;
// retry, fallback, and caching are caller policy.
func (c *Client) Generate(ctx context.Context, params llm.GenerateParams) (*llm.GenerateResult, error) {
	payload, err := BuildPayload(params, c.defaultModel, c.bannedKeywords)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, llm.NewValidationError("failed to marshal request: " + err.Error())
	}

	debug.Log("providers", "sending request",
		"provider", c.name, "model", payload.Model, "bytes", len(body))
	debug.Raw("providers", string(body))

	start := time.Now()
	statusCode, respBody, err := c.send(ctx, body, params.Timeout)
	latency := time.Since(start)
	if err != nil {
		return nil, err
	}

	debug.Log("providers", "received response",
		"provider", c.name, "status", statusCode, "bytes", len(respBody), "latency", latency)
	debug.Raw("providers", string(respBody))

	if statusCode < 200 || statusCode >= 300 {
		return nil, MapUpstreamError(statusCode, respBody)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, llm.NewTransportError("failed to parse backend response: " + err.Error())
	}

	var choice *ChatChoice
	if len(chatResp.Choices) > 0 {
		choice = &chatResp.Choices[0]
	}
	content := ExtractText(choice)
	if content == "" {
		return nil, llm.NewEmptyResponseError(c.name + ": response contained no text")
	}

	model := chatResp.Model
	if model == "" {
		model = payload.Model
	}

	return &llm.GenerateResult{
		Content:  content,
		Raw:      respBody,
		Provider: c.name,
		Model:    model,
		Usage:    llm.NormalizeUsage(chatResp.Usage, latency),
	}, nil
}

// send performs the HTTP round trip and returns the status code with the
// raw body. A positive timeout becomes a context deadline; the deferred
// cancel releases the timer on every exit path.
func (c *Client) send(ctx context.Context, body []byte, timeout time.Duration) (int, []byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	url := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, llm.NewTransportError("failed to create HTTP request: " + err.Error())
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range c.extraHeaders {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, mapSendError(ctx, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, nil, mapSendError(ctx, err)
	}

	return httpResp.StatusCode, data, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
