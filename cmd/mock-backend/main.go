// Command mock-backend runs a deterministic Chat Completions server for
// development and conformance testing. Responses depend only on the request
// content, so test runs are reproducible without a real provider.
//
// Trigger phrases in the user prompt select failure modes:
//
//	"rate limit" - respond 429 with a rate_limited error envelope
//	"hang"       - never respond (exercises client-side timeouts)
//	"empty"      - respond 200 with no extractable text
//
// A request carrying a json_schema response format receives a canned
// article-summary document; everything else receives plain text.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/chat/completions", handleChatCompletions)
	mux.HandleFunc("GET /v1/models", handleModels)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// --- Request types ---

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature"`
	TopP           *float64        `json:"top_p"`
	ResponseFormat *responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type responseFormat struct {
	Type       string `json:"type"`
	JSONSchema *struct {
		Name   string         `json:"name"`
		Schema map[string]any `json:"schema"`
	} `json:"json_schema"`
}

// --- Response types ---

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int     `json:"index"`
	Message      chatMsg `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// --- Handler ---

func handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":{"message":"invalid request","type":"invalid_request_error"}}`, http.StatusBadRequest)
		return
	}

	prompt := strings.ToLower(getUserPrompt(&req))

	// Failure injection triggers.
	switch {
	case strings.Contains(prompt, "rate limit"):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":"rate_limited","message":"slow down"}}`))
		return
	case strings.Contains(prompt, "hang"):
		// Hold the connection open until the client gives up.
		<-r.Context().Done()
		return
	case strings.Contains(prompt, "empty"):
		writeResponse(w, req.Model, chatMsg{Role: "assistant"})
		return
	}

	if req.ResponseFormat != nil && req.ResponseFormat.Type == "json_schema" {
		writeResponse(w, req.Model, chatMsg{
			Role:    "assistant",
			Content: summaryDocument(&req),
		})
		return
	}

	writeResponse(w, req.Model, chatMsg{
		Role:    "assistant",
		Content: textAnswer(prompt),
	})
}

// textAnswer returns a canned plain-text reply for the prompt.
func textAnswer(prompt string) string {
	if strings.Contains(prompt, "2+2") {
		return "4"
	}
	if strings.Contains(prompt, "count from 1 to 5") {
		return "1, 2, 3, 4, 5"
	}
	return "Hello, nice day!"
}

// summaryDocument produces a deterministic article-summary JSON document.
// The headline echoes the article title when the prompt carries one, so
// callers can assert the mock saw their article.
func summaryDocument(req *chatRequest) string {
	title := extractTitle(getUserPrompt(req))
	if title == "" {
		title = "Untitled article"
	}

	doc := map[string]any{
		"headline":   "Summary of " + title,
		"abstract":   "The article discusses " + title + " in detail. It covers the main developments and their implications.",
		"key_points": []string{"first key point", "second key point"},
		"topics":     []string{"testing", "mock"},
	}

	data, _ := json.Marshal(doc)
	return string(data)
}

// extractTitle finds the article title in a summarization prompt, which
// carries it on a "Title: ..." line.
func extractTitle(prompt string) string {
	for _, line := range strings.Split(prompt, "\n") {
		if after, ok := strings.CutPrefix(line, "Title: "); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

func writeResponse(w http.ResponseWriter, model string, msg chatMsg) {
	if model == "" {
		model = "mock-model"
	}

	resp := chatResponse{
		ID:     "chatcmpl-mock",
		Object: "chat.completion",
		Model:  model,
		Choices: []chatChoice{
			{Index: 0, Message: msg, FinishReason: "stop"},
		},
		Usage: chatUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// --- Models endpoint ---

func handleModels(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"object": "list",
		"data": []map[string]any{
			{"id": "mock-model", "object": "model", "owned_by": "precis-mock"},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// --- Helpers ---

func getUserPrompt(req *chatRequest) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role != "user" {
			continue
		}
		if s, ok := req.Messages[i].Content.(string); ok {
			return s
		}
	}
	return ""
}
