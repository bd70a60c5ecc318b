package openai

import (
	"context"

	"github.com/precishq/precis/pkg/llm"
	"github.com/precishq/precis/pkg/llm/openaicompat"
)

const (
	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when neither config nor request name a model.
	DefaultModel = "gpt-4o-mini"
)

// bannedSchemaKeywords are JSON-Schema keywords the OpenAI structured-output
// validator rejects. They are stripped from schema documents before sending.
var bannedSchemaKeywords = []string{
	"minLength",
	"maxLength",
	"pattern",
	"format",
	"minimum",
	"maximum",
	"multipleOf",
	"minItems",
	"maxItems",
	"uniqueItems",
	"minProperties",
	"maxProperties",
	"default",
	"$schema",
}

// Adapter implements llm.Adapter for the OpenAI API.
type Adapter struct {
	client *openaicompat.Client
}

// Ensure Adapter implements llm.Adapter at compile time.
var _ llm.Adapter = (*Adapter)(nil)

// New creates an OpenAI adapter. The API key is required; base URL and
// default model fall back to the package constants.
func New(cfg Config) (*Adapter, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}

	client, err := openaicompat.NewClient(openaicompat.Config{
		Name:                 "openai",
		APIKey:               cfg.APIKey,
		BaseURL:              cfg.BaseURL,
		DefaultModel:         cfg.DefaultModel,
		BannedSchemaKeywords: bannedSchemaKeywords,
	})
	if err != nil {
		return nil, err
	}

	return &Adapter{client: client}, nil
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return "openai"
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
