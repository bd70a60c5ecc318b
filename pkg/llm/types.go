package llm

import (
	"encoding/json"
	"time"
)

// GenerateParams is the caller-facing request. It contains only the
// information the adapter needs, stripped of transport and storage concerns.
//
// Optional fields are pointers (or zero values) so that absent values are
// never emitted in the outgoing payload.
type GenerateParams struct {
	// Prompt is the user input. Required.
	Prompt string

	// Model overrides the adapter's default model when non-empty.
	Model string

	// Temperature and TopP are sampling controls. Nil means backend default.
	Temperature *float64
	TopP        *float64

	// MaxOutputTokens caps the completion length. Nil means backend default.
	MaxOutputTokens *int

	// Timeout bounds the whole call. Zero or negative means no deadline.
	Timeout time.Duration

	// Schema constrains the output to a JSON document when non-nil.
	Schema SchemaDescriptor

	// SchemaName labels the schema block. Whitespace is trimmed; an empty
	// result falls back to a fixed default.
	SchemaName string
}

// GenerateResult is a successful completion.
type GenerateResult struct {
	// Content is the extracted assistant text. Never empty on success.
	Content string `json:"content"`

	// Raw is the unmodified backend response body, retained for
	// diagnostics and auditing.
	Raw json.RawMessage `json:"raw,omitempty"`

	// Provider is the adapter name that served the call.
	Provider string `json:"provider"`

	// Model is the model reported by the backend, falling back to the
	// model sent in the request.
	Model string `json:"model"`

	// Usage holds normalized token accounting. May be nil when the
	// backend reported nothing and no latency was recorded.
	Usage *UsageStats `json:"usage,omitempty"`
}

// UsageStats is the unified token accounting record. Backends report token
// counts under varying field names; NormalizeUsage folds them into this shape.
type UsageStats struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	// Latency is the wall-clock duration of the backend call, measured
	// by the adapter.
	Latency time.Duration `json:"latency"`
}
