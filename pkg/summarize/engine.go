package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/precishq/precis/pkg/api"
	"github.com/precishq/precis/pkg/debug"
	"github.com/precishq/precis/pkg/llm"
	"github.com/precishq/precis/pkg/observability"
	"github.com/precishq/precis/pkg/schema"
	"github.com/precishq/precis/pkg/transport"
)

// Store is the persistence surface the engine needs. Both store
// implementations satisfy it.
type Store interface {
	GetArticle(ctx context.Context, id string) (*api.Article, error)
	SaveSummary(ctx context.Context, summary *api.Summary) error
}

// Config holds engine-level defaults applied when a request omits a value.
type Config struct {
	// Temperature is the default sampling temperature. Nil defers to the
	// backend default.
	Temperature *float64

	// MaxOutputTokens caps the completion length. Nil defers to the backend.
	MaxOutputTokens *int

	// Timeout bounds each provider call. Zero or negative means no deadline.
	Timeout time.Duration

	// SchemaName labels the structured-output schema block.
	SchemaName string
}

// summaryDoc is the schema-constrained document the model must produce.
// Its reflected JSON schema is attached to every generation request and
// model output is validated against it before anything is persisted.
type summaryDoc struct {
	Headline  string   `json:"headline"`
	Abstract  string   `json:"abstract"`
	KeyPoints []string `json:"key_points"`
	Topics    []string `json:"topics"`
}

// Engine orchestrates summary production between the transport layer and
// the provider adapter. It implements transport.SummaryCreator.
type Engine struct {
	adapter    llm.Adapter
	store      Store
	cfg        Config
	guard      *inflightGuard
	descriptor llm.SchemaDescriptor
	validator  *schema.Validator
}

// Ensure Engine implements transport.SummaryCreator at compile time.
var _ transport.SummaryCreator = (*Engine)(nil)

// New creates an Engine. Adapter and store must not be nil. The summary
// schema is resolved here so a broken schema fails at startup, not on the
// first request.
func New(adapter llm.Adapter, store Store, cfg Config) (*Engine, error) {
	if adapter == nil {
		return nil, fmt.Errorf("summarize: adapter must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("summarize: store must not be nil")
	}

	validator, err := schema.NewValidator[summaryDoc]()
	if err != nil {
		return nil, fmt.Errorf("summarize: resolving summary schema: %w", err)
	}

	return &Engine{
		adapter:    adapter,
		store:      store,
		cfg:        cfg,
		guard:      newInflightGuard(),
		descriptor: schema.For[summaryDoc](),
		validator:  validator,
	}, nil
}

// CreateSummary produces and persists a summary for the given article.
// It performs exactly one provider call. Provider errors propagate with
// their classification intact; model output that does not conform to the
// summary schema is reported as upstream data, never persisted.
func (e *Engine) CreateSummary(ctx context.Context, articleID string, req *api.SummarizeRequest) (*api.Summary, error) {
	if req == nil {
		req = &api.SummarizeRequest{}
	}

	article, err := e.store.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	// One generation per article at a time. A concurrent duplicate is
	// rejected rather than queued; the caller can retry once the first
	// request settles.
	if !e.guard.acquire(articleID) {
		return nil, api.NewConflictError("a summary for this article is already being generated")
	}
	defer e.guard.release(articleID)

	params := e.buildParams(article, req)
	model := req.Model
	if model == "" {
		model = e.adapter.DefaultModel()
	}
	provider := e.adapter.Name()

	debug.Log("summarize", "generating summary",
		"article_id", article.ID, "provider", provider, "model", model)

	start := time.Now()
	result, err := e.adapter.Generate(ctx, params)
	duration := time.Since(start)

	if err != nil {
		status := "error"
		if kind, ok := llm.KindOf(err); ok {
			status = string(kind)
		}
		observability.ProviderRequestsTotal.WithLabelValues(provider, model, status).Inc()
		observability.ProviderLatency.WithLabelValues(provider, model).Observe(duration.Seconds())
		return nil, err
	}

	observability.ProviderRequestsTotal.WithLabelValues(provider, model, "ok").Inc()
	observability.ProviderLatency.WithLabelValues(provider, model).Observe(duration.Seconds())
	if result.Usage != nil {
		observability.ProviderTokensTotal.WithLabelValues(provider, model, "input").Add(float64(result.Usage.PromptTokens))
		observability.ProviderTokensTotal.WithLabelValues(provider, model, "output").Add(float64(result.Usage.CompletionTokens))
	}

	doc, err := e.decodeDocument(result.Content)
	if err != nil {
		return nil, err
	}

	summary := &api.Summary{
		ID:        api.NewSummaryID(),
		Object:    api.ObjectSummary,
		ArticleID: article.ID,
		Provider:  result.Provider,
		Model:     result.Model,
		Headline:  doc.Headline,
		Abstract:  doc.Abstract,
		KeyPoints: doc.KeyPoints,
		Topics:    doc.Topics,
		Usage:     summaryUsage(result.Usage),
		CreatedAt: time.Now().Unix(),
	}

	if err := e.store.SaveSummary(ctx, summary); err != nil {
		return nil, err
	}

	slog.Info("summary generated",
		"article_id", article.ID,
		"summary_id", summary.ID,
		"provider", summary.Provider,
		"model", summary.Model,
	)

	return summary, nil
}

// buildParams assembles the generation request, filling gaps in the
// per-request overrides from the engine defaults.
func (e *Engine) buildParams(article *api.Article, req *api.SummarizeRequest) llm.GenerateParams {
	temperature := req.Temperature
	if temperature == nil {
		temperature = e.cfg.Temperature
	}

	maxTokens := req.MaxOutputTokens
	if maxTokens == nil {
		maxTokens = e.cfg.MaxOutputTokens
	}

	timeout := e.cfg.Timeout
	if req.TimeoutMS != nil {
		timeout = time.Duration(*req.TimeoutMS) * time.Millisecond
	}

	return llm.GenerateParams{
		Prompt:          buildPrompt(article),
		Model:           req.Model,
		Temperature:     temperature,
		TopP:            req.TopP,
		MaxOutputTokens: maxTokens,
		Timeout:         timeout,
		Schema:          e.descriptor,
		SchemaName:      e.cfg.SchemaName,
	}
}

// decodeDocument parses the model content and checks it against the
// resolved summary schema. Validation runs on the decoded JSON value, then
// the content is decoded once more into the typed document.
func (e *Engine) decodeDocument(content string) (*summaryDoc, error) {
	var value any
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return nil, api.NewUpstreamError("invalid_model_output",
			"model output is not valid JSON: "+err.Error())
	}

	if err := e.validator.Validate(value); err != nil {
		return nil, api.NewUpstreamError("invalid_model_output",
			"model output does not match the summary schema: "+err.Error())
	}

	var doc summaryDoc
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, api.NewUpstreamError("invalid_model_output",
			"decoding model output: "+err.Error())
	}

	return &doc, nil
}

// summaryUsage converts adapter usage into the persisted representation.
func summaryUsage(u *llm.UsageStats) *api.SummaryUsage {
	if u == nil {
		return nil
	}
	return &api.SummaryUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
		LatencyMS:        u.Latency.Milliseconds(),
	}
}
