// Package summarize implements the summary production workflow. The Engine
// struct implements transport.SummaryCreator, bridging article summarize
// requests to a provider adapter: it loads the article, performs a single
// structured-output generation, validates the model's document against the
// summary schema, and persists the result together with its usage accounting.
// Generation is single-attempt; retry and fallback are not this layer's job.
package summarize
