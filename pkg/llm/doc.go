// Package llm defines the provider-agnostic interface for chat-completion
// backends. Each adapter implementation (e.g., openai, groq) handles its own
// backend dialect internally. The interface operates on the package's own
// types (GenerateParams, GenerateResult, UsageStats), keeping wire details
// invisible to callers.
package llm
