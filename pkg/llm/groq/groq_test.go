package groq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/precishq/precis/pkg/llm"
)

func TestNewMissingAPIKey(t *testing.T) {
	_, err := New(Config{})
	if !llm.IsKind(err, llm.ErrorKindConfiguration) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer gsk-test" {
			t.Errorf("Authorization = %q, want %q", auth, "Bearer gsk-test")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"llama-3.3-70b-versatile","choices":[{"index":0,"message":{"role":"assistant","content":"fast answer"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`))
	}))
	defer srv.Close()

	a, err := New(Config{APIKey: "gsk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.Name() != "groq" {
		t.Errorf("Name = %q, want %q", a.Name(), "groq")
	}

	res, err := a.Generate(context.Background(), llm.GenerateParams{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Content != "fast answer" {
		t.Errorf("Content = %q, want %q", res.Content, "fast answer")
	}
	if res.Provider != "groq" {
		t.Errorf("Provider = %q, want %q", res.Provider, "groq")
	}
	if res.Usage == nil || res.Usage.TotalTokens != 5 {
		t.Errorf("Usage = %+v, want total 5", res.Usage)
	}
}
