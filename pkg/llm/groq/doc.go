// Package groq implements the Adapter interface for the Groq API, which
// exposes an OpenAI-compatible Chat Completions endpoint. The adapter
// delegates all request handling to the shared openaicompat.Client.
package groq
