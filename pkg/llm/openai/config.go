package openai

// Config holds configuration for the OpenAI adapter.
type Config struct {
	// APIKey authenticates against the OpenAI API. Required.
	APIKey string

	// BaseURL overrides the API root, e.g. for a proxy. Defaults to
	// DefaultBaseURL.
	BaseURL string

	// DefaultModel is used when a request does not name a model.
	// Defaults to DefaultModel.
	DefaultModel string
}
