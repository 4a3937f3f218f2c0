package providers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"gitscribe/modules/extraction/domain/services"
)

const defaultMaxTokens int64 = 4096

// AnthropicProvider wraps anthropic-sdk-go, following the construction
// idiom intelligencedev-manifold's internal/llm/anthropic/client.go uses:
// option.WithAPIKey/option.WithBaseURL feeding anthropic.NewClient, a
// single MessageNewParams built per call.
type AnthropicProvider struct {
	sdk   anthropic.Client
	model string
}

func NewAnthropicProvider(apiKey, model, baseURL string) *AnthropicProvider {
	opts := []option.RequestOption{option.WithAPIKey(strings.TrimSpace(apiKey))}
	if base := strings.TrimSpace(baseURL); base != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSuffix(base, "/")))
	}
	if model == "" {
		model = string(anthropic.ModelClaude3_7SonnetLatest)
	}
	return &AnthropicProvider{
		sdk:   anthropic.NewClient(opts...),
		model: model,
	}
}

var _ services.LLMClient = (*AnthropicProvider)(nil)

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Complete(ctx context.Context, req services.CompletionRequest) (services.CompletionResult, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: defaultMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}

	start := time.Now()
	resp, err := p.sdk.Messages.New(ctx, params)
	log.Printf("anthropic completion took %s", time.Since(start))
	if err != nil {
		return services.CompletionResult{}, &services.LLMClientError{
			StatusCode: anthropicStatusCode(err),
			Err:        err,
		}
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return services.CompletionResult{
		Text:  text.String(),
		Model: string(resp.Model),
	}, nil
}

// anthropicStatusCode extracts the HTTP status code from an anthropic-sdk-go
// error, falling back to 0 (treated as a retryable network failure by
// LLMClientError.Retryable) when err isn't an *anthropic.Error.
func anthropicStatusCode(err error) int {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
