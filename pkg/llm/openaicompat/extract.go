package openaicompat

// Text extraction from a completion choice. Backends wrap assistant text in
// several shapes; each shape is handled by one small strategy. The strategies
// run in order and the first one that claims the message wins. Supporting a
// new shape means appending a strategy, not deepening conditionals.

// extractStrategy inspects a message and returns the extracted text together
// with whether it claimed the message.
type extractStrategy func(m *ChatMessage) (string, bool)

var textStrategies = []extractStrategy{
	stringContent,
	contentParts,
	messageTextField,
}

// partTextKeys are the object fields scanned inside a content part list,
// in priority order per part.
var partTextKeys = []string{"text", "output_text", "data"}

// ExtractText returns the assistant text of a choice, or "" when no strategy
// finds any. A nil choice (no choices in the response) yields "".
func ExtractText(choice *ChatChoice) string {
	if choice == nil {
		return ""
	}
	for _, strategy := range textStrategies {
		if text, ok := strategy(&choice.Message); ok {
			return text
		}
	}
	return ""
}

// stringContent handles the common case of a plain string content field.
// An empty string is still a claim: the message said "no text" explicitly.
func stringContent(m *ChatMessage) (string, bool) {
	s, ok := m.Content.(string)
	return s, ok
}

// contentParts scans a list-shaped content field for the first part that is
// itself a string or carries a non-empty string under a known text key.
// Parts after the first match are not inspected.
func contentParts(m *ChatMessage) (string, bool) {
	parts, ok := m.Content.([]any)
	if !ok {
		return "", false
	}
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			if v != "" {
				return v, true
			}
		case map[string]any:
			for _, key := range partTextKeys {
				if s, ok := v[key].(string); ok && s != "" {
					return s, true
				}
			}
		}
	}
	return "", false
}

// messageTextField handles backends that put the text next to content
// instead of inside it.
func messageTextField(m *ChatMessage) (string, bool) {
	if m.Text == "" {
		return "", false
	}
	return m.Text, true
}
