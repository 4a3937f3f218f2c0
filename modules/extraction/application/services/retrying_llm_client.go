package services

import (
	"context"
	"errors"
	"time"

	"gitscribe/modules/extraction/domain/services"
)

// retryingLLMClient wraps a real provider with spec.md §4.4's retry rule: on
// a retryable LLMClientError (429, 5xx, or no status code at all), retry up
// to maxRetries times with backoff starting at 500ms and doubling each
// attempt. Any other error, including a non-retryable LLMClientError, fails
// immediately.
type retryingLLMClient struct {
	inner      services.LLMClient
	maxRetries int
}

// withRetry wraps client in retry/backoff when maxRetries > 0.
func withRetry(client services.LLMClient, maxRetries int) services.LLMClient {
	if maxRetries <= 0 {
		return client
	}
	return &retryingLLMClient{inner: client, maxRetries: maxRetries}
}

var _ services.LLMClient = (*retryingLLMClient)(nil)

func (c *retryingLLMClient) Name() string { return c.inner.Name() }

func (c *retryingLLMClient) Complete(ctx context.Context, req services.CompletionRequest) (services.CompletionResult, error) {
	backoff := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		result, err := c.inner.Complete(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var clientErr *services.LLMClientError
		if !errors.As(err, &clientErr) || !clientErr.Retryable() {
			return services.CompletionResult{}, err
		}
		if attempt == c.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return services.CompletionResult{}, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return services.CompletionResult{}, lastErr
}
