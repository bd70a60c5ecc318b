// Package openrouter implements the Adapter interface for OpenRouter, an
// aggregator that routes Chat Completions requests across many upstream
// models. The adapter delegates to the shared openaicompat.Client and adds
// the attribution headers OpenRouter uses for app rankings.
package openrouter
