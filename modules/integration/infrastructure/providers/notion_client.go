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

const notionAPIBase = "https://api.notion.com/v1"

// NotionClient creates a database page per task. No pack repo ships a
// Notion SDK, so this talks to the REST API directly over net/http,
// following the same bare request/response shape the teacher's
// FirebaseUploader uses for its own HTTP calls.
type NotionClient struct {
	token      string
	databaseID string
	httpClient *http.Client
}

func NewNotionClient(token, databaseID string) *NotionClient {
	return &NotionClient{
		token:      token,
		databaseID: databaseID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ services.IntegrationClient = (*NotionClient)(nil)

func (c *NotionClient) Platform() string { return "notion" }

func (c *NotionClient) Available() bool {
	return c.token != "" && c.databaseID != ""
}

func (c *NotionClient) CreateTask(ctx context.Context, p services.TaskProjection) (string, string, error) {
	if !c.Available() {
		return "", "", fmt.Errorf("notion integration not configured")
	}

	body := map[string]interface{}{
		"parent": map[string]string{"database_id": c.databaseID},
		"properties": map[string]interface{}{
			"Name": map[string]interface{}{
				"title": []map[string]interface{}{
					{"text": map[string]string{"content": p.Title}},
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, notionAPIBase+"/pages", bytes.NewReader(payload))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", "2022-06-28")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("notion API returned status %d", resp.StatusCode)
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

// Notify is a no-op: Notion has no generic message-posting surface in this
// integration's scope.
func (c *NotionClient) Notify(ctx context.Context, message string) error {
	return nil
}
