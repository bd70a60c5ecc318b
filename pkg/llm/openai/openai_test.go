package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/precishq/precis/pkg/llm"
	"github.com/precishq/precis/pkg/llm/openaicompat"
)

type fixedSchema map[string]any

func (s fixedSchema) JSONSchema() (map[string]any, error) {
	return s, nil
}

func TestNewMissingAPIKey(t *testing.T) {
	_, err := New(Config{})
	if !llm.IsKind(err, llm.ErrorKindConfiguration) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}

func TestNewDefaults(t *testing.T) {
	a, err := New(Config{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.Name() != "openai" {
		t.Errorf("Name = %q, want %q", a.Name(), "openai")
	}
	if a.DefaultModel() != DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", a.DefaultModel(), DefaultModel)
	}
}

func TestGenerateStripsBannedSchemaKeywords(t *testing.T) {
	var captured openaicompat.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"{\"title\":\"ok\"}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	a, err := New(Config{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	schema := fixedSchema{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string", "minLength": float64(1), "format": "plain"},
		},
	}

	res, err := a.Generate(context.Background(), llm.GenerateParams{
		Prompt: "summarize",
		Schema: schema,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Provider != "openai" {
		t.Errorf("Provider = %q, want %q", res.Provider, "openai")
	}

	if captured.ResponseFormat == nil || captured.ResponseFormat.JSONSchema == nil {
		t.Fatal("expected json_schema response format on the wire")
	}
	title := captured.ResponseFormat.JSONSchema.Schema["properties"].(map[string]any)["title"].(map[string]any)
	if _, ok := title["minLength"]; ok {
		t.Error("minLength should be stripped for OpenAI")
	}
	if _, ok := title["format"]; ok {
		t.Error("format should be stripped for OpenAI")
	}
	if title["type"] != "string" {
		t.Errorf("type = %v, want %q", title["type"], "string")
	}
}

func TestGenerateUsesDefaultModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openaicompat.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Model != "gpt-4.1" {
			t.Errorf("model = %q, want %q", req.Model, "gpt-4.1")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"gpt-4.1","choices":[{"index":0,"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	a, err := New(Config{APIKey: "sk-test", BaseURL: srv.URL, DefaultModel: "gpt-4.1"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	res, err := a.Generate(context.Background(), llm.GenerateParams{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Model != "gpt-4.1" {
		t.Errorf("Model = %q, want %q", res.Model, "gpt-4.1")
	}
}
