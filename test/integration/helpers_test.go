// Package integration provides integration tests for the precis API.
//
// Tests run against a real precis HTTP server backed by a mock Chat
// Completions backend, both started in-process using net/http/httptest.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/precishq/precis/pkg/api"
	"github.com/precishq/precis/pkg/llm/openai"
	"github.com/precishq/precis/pkg/storage/memory"
	"github.com/precishq/precis/pkg/summarize"
	"github.com/precishq/precis/pkg/transport"
	transporthttp "github.com/precishq/precis/pkg/transport/http"
)

// testEnv holds the shared servers for all integration tests.
var testEnv *TestEnvironment

// TestEnvironment holds the precis server and mock backend for testing.
type TestEnvironment struct {
	PrecisServer *httptest.Server
	MockBackend  *httptest.Server
	Store        *memory.Store
}

// TestMain starts the mock backend and precis server before running tests.
func TestMain(m *testing.M) {
	testEnv = setupTestEnvironment()
	code := m.Run()
	testEnv.Teardown()
	os.Exit(code)
}

// setupTestEnvironment creates a mock Chat Completions backend and a precis
// server wired to it through the OpenAI adapter.
func setupTestEnvironment() *TestEnvironment {
	mockBackend := startMockBackend()

	adapter, err := openai.New(openai.Config{
		APIKey:       "sk-test",
		BaseURL:      mockBackend.URL + "/v1",
		DefaultModel: "mock-model",
	})
	if err != nil {
		panic(fmt.Sprintf("creating adapter: %v", err))
	}

	store := memory.New(100)

	eng, err := summarize.New(adapter, store, summarize.Config{
		SchemaName: "article_summary",
	})
	if err != nil {
		panic(fmt.Sprintf("creating engine: %v", err))
	}

	// Same middleware stack the production server applies.
	httpAdapter := transporthttp.NewAdapter(eng, store, transporthttp.DefaultConfig(),
		transport.Recovery(),
		transport.RequestID(),
	)

	precisServer := httptest.NewServer(httpAdapter.Handler())

	return &TestEnvironment{
		PrecisServer: precisServer,
		MockBackend:  mockBackend,
		Store:        store,
	}
}

// Teardown stops both servers.
func (env *TestEnvironment) Teardown() {
	if env.PrecisServer != nil {
		env.PrecisServer.Close()
	}
	if env.MockBackend != nil {
		env.MockBackend.Close()
	}
}

// BaseURL returns the precis server base URL.
func (env *TestEnvironment) BaseURL() string {
	return env.PrecisServer.URL
}

// createArticle stores an article through the API and returns it.
func createArticle(t *testing.T, title, body string) *api.Article {
	t.Helper()

	resp := postJSON(t, testEnv.BaseURL()+"/v1/articles", map[string]any{
		"title": title,
		"body":  body,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("creating article: got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var art api.Article
	decodeJSON(t, resp, &art)
	return &art
}

// --- HTTP helpers ---

// postJSON sends a POST request with JSON body and returns the response.
func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

// getURL sends a GET request and returns the response.
func getURL(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

// deleteURL sends a DELETE request and returns the response.
func deleteURL(t *testing.T, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("creating DELETE request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE %s: %v", url, err)
	}
	return resp
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return string(body)
}

// decodeJSON reads the response body and decodes it into the target.
func decodeJSON(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
}

// --- Mock backend ---

// startMockBackend creates an httptest server that mimics a Chat Completions
// API. Trigger phrases in the prompt select failure modes; a json_schema
// response format yields a canned summary document.
func startMockBackend() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/chat/completions", handleMockChatCompletions)
	mux.HandleFunc("GET /v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"id": "mock-model", "object": "model", "owned_by": "test"},
			},
		})
	})

	return httptest.NewServer(mux)
}

// handleMockChatCompletions handles chat completion requests with
// deterministic responses.
func handleMockChatCompletions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content any    `json:"content"`
		} `json:"messages"`
		ResponseFormat *struct {
			Type string `json:"type"`
		} `json:"response_format"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":{"message":"invalid request","type":"invalid_request_error"}}`, http.StatusBadRequest)
		return
	}

	var prompt string
	for _, msg := range req.Messages {
		if msg.Role == "user" {
			if s, ok := msg.Content.(string); ok {
				prompt = s
			}
		}
	}
	lower := strings.ToLower(prompt)

	// Failure injection via article content.
	switch {
	case strings.Contains(lower, "rate limit"):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":"rate_limited","message":"slow down"}}`))
		return
	case strings.Contains(lower, "hang forever"):
		<-r.Context().Done()
		return
	case strings.Contains(lower, "say nothing"):
		writeMockResponse(w, req.Model, "")
		return
	}

	if req.ResponseFormat != nil && req.ResponseFormat.Type == "json_schema" {
		writeMockResponse(w, req.Model, mockSummaryDocument(prompt))
		return
	}

	writeMockResponse(w, req.Model, "Hello from mock!")
}

// mockSummaryDocument builds a summary JSON document whose headline echoes
// the article title from the prompt.
func mockSummaryDocument(prompt string) string {
	title := "Untitled article"
	for _, line := range strings.Split(prompt, "\n") {
		if after, ok := strings.CutPrefix(line, "Title: "); ok {
			title = strings.TrimSpace(after)
			break
		}
	}

	doc := map[string]any{
		"headline":   "Summary of " + title,
		"abstract":   "The article discusses " + title + ".",
		"key_points": []string{"point one", "point two"},
		"topics":     []string{"testing"},
	}
	data, _ := json.Marshal(doc)
	return string(data)
}

func writeMockResponse(w http.ResponseWriter, model, content string) {
	if model == "" {
		model = "mock-model"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-mock",
		"object": "chat.completion",
		"model":  model,
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15,
		},
	})
}
