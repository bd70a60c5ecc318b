// Package transport defines the handler interfaces, middleware chain, and
// error mapping for the precis HTTP transport layer.
//
// The transport layer bridges external clients and the summarize engine. It
// deserializes incoming requests into the types defined in pkg/api,
// dispatches them for processing, and serializes results back to the client
// as JSON.
//
// # Handler Interfaces
//
// Two handler interfaces define the contract between the transport layer and
// the rest of the service:
//
//   - SummaryCreator handles the core summarize operation: load an article,
//     call the provider, persist and return the summary.
//   - ArticleStore handles article and summary persistence, retrieval,
//     listing, and deletion.
//
// Both are consumed here and implemented elsewhere (pkg/summarize and
// pkg/storage), so the transport layer never depends on a concrete engine
// or store.
//
// # Middleware
//
// The middleware chain wraps SummaryCreator with cross-cutting concerns.
// Built-in middleware provides panic recovery, request ID assignment
// (X-Request-ID), and structured logging via log/slog. Custom middleware
// can be added for application-specific concerns.
//
// # Error Mapping
//
// APIErrorFromError converts storage sentinel errors and classified provider
// errors into the api.APIError envelope; HTTPStatusFromError derives the
// HTTP status code from the envelope type. Handlers call WriteError and let
// the mapping decide between 4xx, 502, and 504.
package transport
