package providers

import (
	"context"

	"gitscribe/modules/extraction/domain/services"
)

// FallbackProvider is the "no credential available" LLMClient spec.md §7
// requires: every Complete call succeeds with the empty JSON object "{}"
// (FallbackUsed set) rather than erroring, so the Extractor's schema parsing produces valid, low-confidence
// empty results instead of failing the pipeline. Mirrors the teacher's
// AudioProcessorFactory fall-back-to-mock-when-no-API-key branch.
type FallbackProvider struct{}

func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

var _ services.LLMClient = (*FallbackProvider)(nil)

func (p *FallbackProvider) Name() string { return "none" }

func (p *FallbackProvider) Complete(ctx context.Context, req services.CompletionRequest) (services.CompletionResult, error) {
	return services.CompletionResult{Text: "{}", Model: "none", FallbackUsed: true}, nil
}
