package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"gitscribe/modules/extraction/domain/services"
)

// OpenAIProvider wraps openai-go/v2, following the construction idiom
// intelligencedev-manifold's internal/llm/openai_client.go uses:
// option.WithAPIKey/option.WithBaseURL feeding openai.NewClient, a chat
// completion built per call with system+user messages.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model, baseURL string) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

var _ services.LLMClient = (*OpenAIProvider)(nil)

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Complete(ctx context.Context, req services.CompletionRequest) (services.CompletionResult, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
	}
	if req.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return services.CompletionResult{}, &services.LLMClientError{
			StatusCode: openaiStatusCode(err),
			Err:        err,
		}
	}
	if len(resp.Choices) == 0 {
		return services.CompletionResult{}, fmt.Errorf("openai: no choices returned")
	}

	return services.CompletionResult{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
	}, nil
}

// openaiStatusCode extracts the HTTP status code from an openai-go error,
// falling back to 0 (treated as a retryable network failure by
// LLMClientError.Retryable) when err isn't an *openai.Error.
func openaiStatusCode(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
