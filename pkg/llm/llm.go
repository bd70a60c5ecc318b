package llm

import "context"

// Adapter abstracts a chat-completion backend. Adapters absorb backend
// differences in request shape, response shape, structured-output dialect,
// and failure behavior, so callers never branch on the provider.
//
// Implementations must be safe for concurrent use by multiple goroutines.
// An adapter performs exactly one backend request per Generate call: no
// retries, no fallback, no caching.
type Adapter interface {
	// Name returns the provider identifier (e.g., "openai", "groq").
	Name() string

	// DefaultModel returns the model used when a request names none.
	DefaultModel() string

	// Generate performs a single completion request.
	Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error)
}

// Closer is implemented by adapters that hold network resources.
// Callers that construct adapters should close them on shutdown.
type Closer interface {
	Close() error
}

// SchemaDescriptor supplies a JSON-Schema document used to constrain the
// model output. Conversion is deferred to payload build time so that a
// conversion failure surfaces as a per-call validation error rather than
// at descriptor construction.
type SchemaDescriptor interface {
	// JSONSchema returns the schema as a decoded JSON object tree.
	JSONSchema() (map[string]any, error)
}
