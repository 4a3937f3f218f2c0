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

const clickUpAPIBase = "https://api.clickup.com/api/v2"

// ClickUpClient creates a task in a configured list. Grounded on the same
// bare net/http REST pattern as NotionClient; no pack repo ships a ClickUp
// SDK either.
type ClickUpClient struct {
	token      string
	listID     string
	httpClient *http.Client
}

func NewClickUpClient(token, listID string) *ClickUpClient {
	return &ClickUpClient{
		token:      token,
		listID:     listID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ services.IntegrationClient = (*ClickUpClient)(nil)

func (c *ClickUpClient) Platform() string { return "clickup" }

func (c *ClickUpClient) Available() bool {
	return c.token != "" && c.listID != ""
}

func (c *ClickUpClient) CreateTask(ctx context.Context, p services.TaskProjection) (string, string, error) {
	if !c.Available() {
		return "", "", fmt.Errorf("clickup integration not configured")
	}

	body := map[string]interface{}{
		"name":        p.Title,
		"description": p.Description,
	}
	if p.Assignee != "" {
		body["assignees"] = []string{p.Assignee}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("%s/list/%s/task", clickUpAPIBase, c.listID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("clickup API returned status %d", resp.StatusCode)
	}

	var result struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", err
	}
	return result.ID, result.URL, nil
}

func (c *ClickUpClient) Notify(ctx context.Context, message string) error {
	return nil
}
