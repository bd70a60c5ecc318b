package groq

import (
	"context"

	"github.com/precishq/precis/pkg/llm"
	"github.com/precishq/precis/pkg/llm/openaicompat"
)

const (
	// DefaultBaseURL is the Groq OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is used when neither config nor request name a model.
	DefaultModel = "llama-3.3-70b-versatile"
)

// bannedSchemaKeywords are JSON-Schema keywords Groq's json_schema mode
// does not accept.
var bannedSchemaKeywords = []string{
	"format",
	"pattern",
	"multipleOf",
	"$schema",
}

// Config holds configuration for the Groq adapter.
type Config struct {
	// APIKey authenticates against the Groq API. Required.
	APIKey string

	// BaseURL overrides the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// DefaultModel is used when a request does not name a model.
	// Defaults to DefaultModel.
	DefaultModel string
}

// Adapter implements llm.Adapter for the Groq API.
type Adapter struct {
	client *openaicompat.Client
}

var _ llm.Adapter = (*Adapter)(nil)

// New creates a Groq adapter.
func New(cfg Config) (*Adapter, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}

	client, err := openaicompat.NewClient(openaicompat.Config{
		Name:                 "groq",
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
	return "groq"
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
