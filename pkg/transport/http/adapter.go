package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/precishq/precis/pkg/api"
	"github.com/precishq/precis/pkg/storage"
	"github.com/precishq/precis/pkg/transport"
)

// Adapter serves the precis article and summary API over HTTP.
// It routes requests to the appropriate handler and serializes responses.
type Adapter struct {
	creator transport.SummaryCreator
	store   transport.ArticleStore
	mux     *http.ServeMux
	config  Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr        string
	MaxBodySize int64
	MetricsPath string // empty disables the Prometheus endpoint
	Validation  api.ValidationConfig
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		MaxBodySize: 10 << 20, // 10 MB
		MetricsPath: "/metrics",
		Validation:  api.DefaultValidationConfig(),
	}
}

// NewAdapter creates an HTTP adapter with the given SummaryCreator, store,
// and options. Middleware is applied to the SummaryCreator in the given order.
func NewAdapter(creator transport.SummaryCreator, store transport.ArticleStore, cfg Config, middlewares ...transport.Middleware) *Adapter {
	// Apply middleware chain to the creator.
	if len(middlewares) > 0 {
		creator = transport.Chain(middlewares...)(creator)
	}

	a := &Adapter{
		creator: creator,
		store:   store,
		mux:     http.NewServeMux(),
		config:  cfg,
	}

	a.mux.HandleFunc("POST /v1/articles", a.handleCreateArticle)
	a.mux.HandleFunc("GET /v1/articles", a.handleListArticles)
	a.mux.HandleFunc("GET /v1/articles/{id}", a.handleGetArticle)
	a.mux.HandleFunc("DELETE /v1/articles/{id}", a.handleDeleteArticle)
	a.mux.HandleFunc("POST /v1/articles/{id}/summarize", a.handleSummarize)
	a.mux.HandleFunc("GET /v1/articles/{id}/summary", a.handleGetSummary)
	a.mux.HandleFunc("GET /healthz", a.handleHealthz)
	a.mux.HandleFunc("GET /readyz", a.handleReadyz)

	if cfg.MetricsPath != "" {
		a.mux.Handle("GET "+cfg.MetricsPath, promhttp.Handler())
	}

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest. The returned handler includes
// HTTP-level middleware for request ID propagation.
func (a *Adapter) Handler() http.Handler {
	return httpRequestIDMiddleware(a.mux)
}

// httpRequestIDMiddleware is HTTP-level middleware that propagates the
// X-Request-ID header. If present in the request, it is forwarded into the
// context and reflected back in the response headers before the first write.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If client sent X-Request-ID, propagate it into context.
		if id := r.Header.Get("X-Request-ID"); id != "" {
			ctx := transport.ContextWithRequestID(r.Context(), id)
			r = r.WithContext(ctx)
		}
		rw := &requestIDResponseWriter{ResponseWriter: w, r: r}
		next.ServeHTTP(rw, r)
	})
}

// requestIDResponseWriter wraps http.ResponseWriter to inject the
// X-Request-ID header before the first write.
type requestIDResponseWriter struct {
	http.ResponseWriter
	r           *http.Request
	headersSent bool
}

func (w *requestIDResponseWriter) WriteHeader(statusCode int) {
	w.ensureRequestIDHeader()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *requestIDResponseWriter) Write(b []byte) (int, error) {
	w.ensureRequestIDHeader()
	return w.ResponseWriter.Write(b)
}

func (w *requestIDResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.NewResponseController.
func (w *requestIDResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *requestIDResponseWriter) ensureRequestIDHeader() {
	if w.headersSent {
		return
	}
	w.headersSent = true
	if id := transport.RequestIDFromContext(w.r.Context()); id != "" {
		w.ResponseWriter.Header().Set("X-Request-ID", id)
	}
}

// handleCreateArticle handles POST /v1/articles.
func (a *Adapter) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	// Validate Content-Type.
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return
	}

	// Limit body size.
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	// Decode request.
	var req api.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeDecodeError(w, err)
		return
	}

	if apiErr := api.ValidateCreateArticle(&req, a.config.Validation); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	art := &api.Article{
		ID:        api.NewArticleID(),
		Object:    api.ObjectArticle,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: time.Now().Unix(),
	}

	if err := a.store.SaveArticle(r.Context(), art); err != nil {
		transport.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(art)
}

// handleGetArticle handles GET /v1/articles/{id}.
func (a *Adapter) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !api.ValidateArticleID(id) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("id", "malformed article ID"),
			http.StatusBadRequest,
		)
		return
	}

	art, err := a.store.GetArticle(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("article "+id+" not found"))
		} else {
			transport.WriteError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(art)
}

// handleDeleteArticle handles DELETE /v1/articles/{id}. Deletion is soft:
// the article disappears from GET and list results but its summaries remain
// stored.
func (a *Adapter) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !api.ValidateArticleID(id) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("id", "malformed article ID"),
			http.StatusBadRequest,
		)
		return
	}

	if err := a.store.DeleteArticle(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("article "+id+" not found"))
		} else {
			transport.WriteError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.DeletedArticle{
		ID:      id,
		Object:  api.ObjectArticle,
		Deleted: true,
	})
}

// handleListArticles handles GET /v1/articles.
func (a *Adapter) handleListArticles(w http.ResponseWriter, r *http.Request) {
	opts, apiErr := parseListOptions(r)
	if apiErr != nil {
		transport.WriteErrorResponse(w, apiErr, http.StatusBadRequest)
		return
	}

	result, err := a.store.ListArticles(r.Context(), opts)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleSummarize handles POST /v1/articles/{id}/summarize. The request body
// is optional; an empty body runs the engine with server defaults.
func (a *Adapter) handleSummarize(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !api.ValidateArticleID(id) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("id", "malformed article ID"),
			http.StatusBadRequest,
		)
		return
	}

	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req api.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		a.writeDecodeError(w, err)
		return
	}

	if apiErr := api.ValidateSummarizeRequest(&req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	sum, err := a.creator.CreateSummary(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("article "+id+" not found"))
		} else {
			transport.WriteError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sum)
}

// handleGetSummary handles GET /v1/articles/{id}/summary.
func (a *Adapter) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !api.ValidateArticleID(id) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("id", "malformed article ID"),
			http.StatusBadRequest,
		)
		return
	}

	sum, err := a.store.GetLatestSummary(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("no summary for article "+id))
		} else {
			transport.WriteError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sum)
}

// handleHealthz handles GET /healthz. Liveness only; it never touches the
// store.
func (a *Adapter) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// handleReadyz handles GET /readyz and reports store health.
func (a *Adapter) handleReadyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := a.store.HealthCheck(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// writeDecodeError maps a JSON decoding failure to 413 or 400.
func (a *Adapter) writeDecodeError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
			http.StatusRequestEntityTooLarge,
		)
		return
	}
	transport.WriteErrorResponse(w,
		api.NewInvalidRequestError("body", "invalid JSON: "+err.Error()),
		http.StatusBadRequest,
	)
}

// parseListOptions extracts pagination parameters from the query string.
func parseListOptions(r *http.Request) (transport.ListOptions, *api.APIError) {
	q := r.URL.Query()
	opts := transport.ListOptions{
		After: q.Get("after"),
		Order: q.Get("order"),
	}

	if opts.Order != "" && opts.Order != "asc" && opts.Order != "desc" {
		return opts, api.NewInvalidRequestError("order", "order must be 'asc' or 'desc'")
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return opts, api.NewInvalidRequestError("limit", "limit must be a positive integer")
		}
		opts.Limit = limit
	}

	return opts, nil
}
