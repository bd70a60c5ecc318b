package openaicompat

// Chat Completions request/response types shared across OpenAI-compatible
// adapters. These mirror the common denominator of the dialect; fields a
// backend does not know are simply never sent (sparse omitempty encoding).

// ChatRequest is the request body for {baseURL}/chat/completions.
type ChatRequest struct {
	Model           string          `json:"model"`
	Messages        []ChatMessage   `json:"messages"`
	Temperature     *float64        `json:"temperature,omitempty"`
	TopP            *float64        `json:"top_p,omitempty"`
	MaxOutputTokens *int            `json:"max_output_tokens,omitempty"`
	ResponseFormat  *ResponseFormat `json:"response_format,omitempty"`
}

// ChatMessage represents a message in the Chat Completions format. Content
// is a string in requests; responses may carry a string, a list of content
// parts, or nothing at all (in which case some backends set Text instead).
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content,omitempty"`
	Text    string `json:"text,omitempty"`
}

// ResponseFormat requests structured output from the backend.
type ResponseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *JSONSchemaFormat `json:"json_schema,omitempty"`
}

// JSONSchemaFormat carries the schema document and its label.
type JSONSchemaFormat struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
}

// ChatResponse is the response from {baseURL}/chat/completions. Usage is
// decoded as a raw map because backends disagree on its field names; it is
// normalized by llm.NormalizeUsage.
type ChatResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Model   string         `json:"model"`
	Choices []ChatChoice   `json:"choices"`
	Usage   map[string]any `json:"usage,omitempty"`
}

// ChatChoice represents one completion choice. Only the first choice is
// consumed.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatErrorResponse is the error envelope returned by Chat Completions
// backends. Some backends nest the details under "error", others report a
// top-level "message".
type ChatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
	Message string `json:"message"`
}
