// Package api defines the core types of the precis HTTP surface.
//
// This package provides the data types for articles, summaries, and their
// lifecycle: request/response bodies, validation, error types, and ID
// generation.
//
// The package has zero external dependencies (Go standard library only) and
// performs no I/O.
//
// Core types:
//   - [Article]: Stored piece of content to be summarized
//   - [Summary]: LLM-produced digest of an article with usage accounting
//   - [CreateArticleRequest]: Client request to store an article
//   - [SummarizeRequest]: Client request to produce a summary
//   - [APIError]: Structured error with type, code, param, and message
package api
