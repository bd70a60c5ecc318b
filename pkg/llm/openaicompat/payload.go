package openaicompat

import (
	"strings"

	"github.com/precishq/precis/pkg/llm"
)

// DefaultSchemaName labels the json_schema block when the caller supplies
// no usable name.
const DefaultSchemaName = "response"

// BuildPayload maps GenerateParams onto the Chat Completions wire format.
// The model (params or fallback) and a single user message are always
// present; optional sampling controls are emitted only when set, so absent
// values never reach the backend.
//
// When a schema descriptor is present it is converted here, sanitized with
// the banned keyword list, and attached as a json_schema response format.
// A conversion failure is a validation error; the request is never sent
// without the constraint the caller asked for.
func BuildPayload(params llm.GenerateParams, defaultModel string, bannedKeywords []string) (*ChatRequest, error) {
	if strings.TrimSpace(params.Prompt) == "" {
		return nil, llm.NewValidationError("prompt is required")
	}

	model := params.Model
	if model == "" {
		model = defaultModel
	}

	req := &ChatRequest{
		Model: model,
		Messages: []ChatMessage{
			{Role: "user", Content: params.Prompt},
		},
		Temperature:     params.Temperature,
		TopP:            params.TopP,
		MaxOutputTokens: params.MaxOutputTokens,
	}

	if params.Schema != nil {
		doc, err := params.Schema.JSONSchema()
		if err != nil {
			return nil, llm.NewValidationError("schema conversion failed: " + err.Error())
		}

		name := strings.TrimSpace(params.SchemaName)
		if name == "" {
			name = DefaultSchemaName
		}

		req.ResponseFormat = &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchemaFormat{
				Name:   name,
				Schema: llm.SanitizeSchema(doc, bannedKeywords),
			},
		}
	}

	return req, nil
}
