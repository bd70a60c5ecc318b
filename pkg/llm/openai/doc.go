// Package openai implements the Adapter interface for the OpenAI API.
// OpenAI speaks the Chat Completions dialect natively, so this adapter
// delegates all request handling to the shared openaicompat.Client and
// contributes only endpoint constants and the keyword list its
// structured-output validator rejects.
package openai
