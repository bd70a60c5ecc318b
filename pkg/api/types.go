package api

import "encoding/json"

// ObjectArticle and ObjectSummary are the object type discriminators used
// in API responses.
const (
	ObjectArticle = "article"
	ObjectSummary = "summary"
	ObjectList    = "list"
)

// Article is a stored piece of content.
type Article struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

// Summary is an LLM-produced digest of an article. The structured fields
// (headline, abstract, key points, topics) come from the model's
// schema-constrained output; provider, model, and usage record how it was
// produced.
type Summary struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	ArticleID string `json:"article_id"`

	Provider string `json:"provider"`
	Model    string `json:"model"`

	Headline  string   `json:"headline"`
	Abstract  string   `json:"abstract"`
	KeyPoints []string `json:"-"`
	Topics    []string `json:"-"`

	Usage     *SummaryUsage `json:"usage,omitempty"`
	CreatedAt int64         `json:"created_at"`
}

// MarshalJSON ensures key_points and topics are always arrays, never null.
func (s Summary) MarshalJSON() ([]byte, error) {
	type alias Summary
	type wire struct {
		alias
		KeyPoints []string `json:"key_points"`
		Topics    []string `json:"topics"`
	}
	w := wire{alias: alias(s), KeyPoints: s.KeyPoints, Topics: s.Topics}
	if w.KeyPoints == nil {
		w.KeyPoints = []string{}
	}
	if w.Topics == nil {
		w.Topics = []string{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON deserializes a Summary.
func (s *Summary) UnmarshalJSON(data []byte) error {
	type alias Summary
	type wire struct {
		alias
		KeyPoints []string `json:"key_points"`
		Topics    []string `json:"topics"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Summary(w.alias)
	s.KeyPoints = w.KeyPoints
	s.Topics = w.Topics
	return nil
}

// SummaryUsage records the token cost and latency of producing a summary.
type SummaryUsage struct {
	PromptTokens     int   `json:"prompt_tokens"`
	CompletionTokens int   `json:"completion_tokens"`
	TotalTokens      int   `json:"total_tokens"`
	LatencyMS        int64 `json:"latency_ms"`
}

// CreateArticleRequest is the body of POST /v1/articles.
type CreateArticleRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SummarizeRequest is the body of POST /v1/articles/{id}/summarize. All
// fields are optional; absent fields defer to server and provider defaults.
type SummarizeRequest struct {
	Model           string   `json:"model,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"top_p,omitempty"`
	MaxOutputTokens *int     `json:"max_output_tokens,omitempty"`

	// TimeoutMS bounds the provider call for this request only.
	TimeoutMS *int64 `json:"timeout_ms,omitempty"`
}

// ArticleList is the response of GET /v1/articles.
type ArticleList struct {
	Object  string    `json:"object"`
	Data    []Article `json:"data"`
	HasMore bool      `json:"has_more"`
	LastID  string    `json:"last_id,omitempty"`
}

// DeletedArticle confirms a deletion.
type DeletedArticle struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}
