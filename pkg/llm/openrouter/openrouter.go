package openrouter

import (
	"context"

	"github.com/precishq/precis/pkg/llm"
	"github.com/precishq/precis/pkg/llm/openaicompat"
)

const (
	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultModel is used when neither config nor request name a model.
	DefaultModel = "openai/gpt-4o-mini"
)

// Config holds configuration for the OpenRouter adapter.
type Config struct {
	// APIKey authenticates against OpenRouter. Required.
	APIKey string

	// BaseURL overrides the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// DefaultModel is used when a request does not name a model.
	// Defaults to DefaultModel.
	DefaultModel string

	// SiteURL and SiteName populate the HTTP-Referer and X-Title
	// attribution headers. Optional.
	SiteURL  string
	SiteName string
}

// Adapter implements llm.Adapter for OpenRouter.
type Adapter struct {
	client *openaicompat.Client
}

var _ llm.Adapter = (*Adapter)(nil)

// New creates an OpenRouter adapter. Schema documents are forwarded
// unmodified: OpenRouter validates per routed model, so stripping keywords
// here would discard constraints a capable model could honor.
func New(cfg Config) (*Adapter, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}

	headers := map[string]string{}
	if cfg.SiteURL != "" {
		headers["HTTP-Referer"] = cfg.SiteURL
	}
	if cfg.SiteName != "" {
		headers["X-Title"] = cfg.SiteName
	}

	client, err := openaicompat.NewClient(openaicompat.Config{
		Name:         "openrouter",
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		DefaultModel: cfg.DefaultModel,
		ExtraHeaders: headers,
	})
	if err != nil {
		return nil, err
	}

	return &Adapter{client: client}, nil
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return "openrouter"
}

// DefaultModel returns the model used when a request names none.
func (a *Adapter) DefaultModel() string {
	return a.client.DefaultModel()
}

// Generate performs a single completion request.
func (a *Adapter) Generate(ctx context.Context, params llm.GenerateParams) (*llm.GenerateResult, error) {
	return a.client.Generate(ctx, params)
}

// Close releases adapter resources.
func (a *Adapter) Close() error {
	return a.client.Close()
}
