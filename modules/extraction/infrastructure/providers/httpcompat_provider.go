package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gitscribe/modules/extraction/domain/services"
)

// HTTPCompatProvider talks to any OpenAI-compatible chat-completions
// endpoint over plain net/http. Groq and Ollama both expose this wire
// format and neither ships a dedicated Go SDK in the pack, so this is the
// one LLM backend built on the standard library rather than a fetched
// client (SPEC_FULL.md's DOMAIN STACK section records this justification).
type HTTPCompatProvider struct {
	name       string
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewHTTPCompatProvider(name, baseURL, apiKey, model string) *HTTPCompatProvider {
	return &HTTPCompatProvider{
		name:       name,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

var _ services.LLMClient = (*HTTPCompatProvider)(nil)

func (p *HTTPCompatProvider) Name() string { return p.name }

type compatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type compatRequest struct {
	Model          string          `json:"model"`
	Messages       []compatMessage `json:"messages"`
	ResponseFormat *compatFormat   `json:"response_format,omitempty"`
}

type compatFormat struct {
	Type string `json:"type"`
}

type compatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message compatMessage `json:"message"`
	} `json:"choices"`
}

func (p *HTTPCompatProvider) Complete(ctx context.Context, req services.CompletionRequest) (services.CompletionResult, error) {
	body := compatRequest{
		Model: p.model,
		Messages: []compatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}
	if req.JSONMode {
		body.ResponseFormat = &compatFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return services.CompletionResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return services.CompletionResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return services.CompletionResult{}, &services.LLMClientError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return services.CompletionResult{}, &services.LLMClientError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s returned status %d", p.name, resp.StatusCode),
		}
	}

	var out compatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return services.CompletionResult{}, err
	}
	if len(out.Choices) == 0 {
		return services.CompletionResult{}, fmt.Errorf("%s: no choices returned", p.name)
	}

	return services.CompletionResult{
		Text:  out.Choices[0].Message.Content,
		Model: out.Model,
	}, nil
}
