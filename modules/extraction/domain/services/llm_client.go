package services

import (
	"context"
	"fmt"
)

// CompletionRequest is a single prompt/response round-trip request to an
// LLM provider (spec.md §4.4). Schema is a human-readable description of
// the JSON shape the caller expects back; providers in JSON mode pass it
// through as a response-format hint.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Schema       string
	JSONMode     bool
}

// CompletionResult carries the raw text back to the Extractor, which is
// responsible for parsing it against Schema and handling LLMParseError
// (spec.md §7). FallbackUsed marks a response that didn't come from a real
// provider call (spec.md §4.4: "fallback responses are marked so
// downstream components can label confidence as 0"), so the Extractor
// never has to guess whether empty output means "genuinely empty" or
// "no provider available."
type CompletionResult struct {
	Text         string
	Model        string
	FallbackUsed bool
}

// LLMClient is the pluggable backend spec.md §4.4 describes: one interface,
// swappable providers, a "none"/fallback mode when no provider is
// configured or the call fails after retries.
type LLMClient interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)

	// Name identifies the backing provider for logging and for the
	// available-tools capability endpoint.
	Name() string
}

// LLMClientError wraps a provider-level failure with its HTTP status code
// (0 when the failure never reached an HTTP response, e.g. a network
// error), letting the retry layer implement spec.md §4.4's "retry on 429
// or 5xx, fail immediately on other 4xx" rule without each provider
// reimplementing it.
type LLMClientError struct {
	StatusCode int
	Err        error
}

func (e *LLMClientError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("llm provider error (status %d): %v", e.StatusCode, e.Err)
	}
	return e.Err.Error()
}

func (e *LLMClientError) Unwrap() error { return e.Err }

// Retryable reports whether this failure is worth retrying: no status code
// at all (network/timeout failures), 429, or any 5xx. Any other 4xx is
// treated as a permanent rejection.
func (e *LLMClientError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}
