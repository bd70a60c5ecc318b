// Package openaicompat provides the shared request/response code for any
// OpenAI-compatible Chat Completions backend. It handles payload building
// with sparse optional fields, structured-output schema attachment, HTTP
// transport with cooperative timeouts, text extraction, and error
// classification.
//
// Provider adapters (openai, groq, openrouter) wrap the Client from this
// package and delegate their Generate calls to it, contributing only their
// base URL, default model, banned schema keywords, and extra headers.
package openaicompat
