package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gitscribe/modules/integration/domain/services"
)

// SlackClient posts messages to a configured channel via an incoming
// webhook. Slack has no task/ticket concept, so CreateTask degrades to a
// Notify call and returns no external reference — TaskProjector skips
// recording an ExternalTaskRef when externalID comes back empty.
type SlackClient struct {
	webhookURL string
	channel    string
	httpClient *http.Client
}

func NewSlackClient(webhookURL, channel string) *SlackClient {
	return &SlackClient{
		webhookURL: webhookURL,
		channel:    channel,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ services.IntegrationClient = (*SlackClient)(nil)

func (c *SlackClient) Platform() string { return "slack" }

func (c *SlackClient) Available() bool {
	return c.webhookURL != ""
}

func (c *SlackClient) CreateTask(ctx context.Context, p services.TaskProjection) (string, string, error) {
	message := fmt.Sprintf("*%s*\n%s", p.Title, p.Description)
	if err := c.Notify(ctx, message); err != nil {
		return "", "", err
	}
	return "", "", nil
}

func (c *SlackClient) Notify(ctx context.Context, message string) error {
	if !c.Available() {
		return fmt.Errorf("slack integration not configured")
	}

	body := map[string]string{"text": message}
	if c.channel != "" {
		body["channel"] = c.channel
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}
