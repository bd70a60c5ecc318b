package llm

import (
	"encoding/json"
	"time"
)

// NormalizeUsage folds a backend's raw usage block into UsageStats. Backends
// disagree on field names: snake_case vs camelCase, and "prompt"/"completion"
// vs "input"/"output". An explicitly reported total wins; otherwise the total
// is derived when both sides are present.
//
// A nil or empty raw block yields a latency-only record, or nil when no
// latency was recorded either.
func NormalizeUsage(raw map[string]any, latency time.Duration) *UsageStats {
	if len(raw) == 0 {
		if latency <= 0 {
			return nil
		}
		return &UsageStats{Latency: latency}
	}

	prompt, promptOK := usageField(raw, "prompt_tokens", "promptTokens", "input_tokens", "inputTokens")
	completion, completionOK := usageField(raw, "completion_tokens", "completionTokens", "output_tokens", "outputTokens")
	total, totalOK := usageField(raw, "total_tokens", "totalTokens")

	if !totalOK && promptOK && completionOK {
		total = prompt + completion
	}

	u := &UsageStats{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      total,
	}
	if latency > 0 {
		u.Latency = latency
	}
	return u
}

// usageField returns the first numeric value found under any of the given
// field names. JSON decoding produces float64 for numbers; json.Number is
// accepted for callers that decode with UseNumber.
func usageField(raw map[string]any, names ...string) (int, bool) {
	for _, name := range names {
		v, ok := raw[name]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n), true
		case int:
			return n, true
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return int(i), true
			}
		}
	}
	return 0, false
}
