package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/claude/plansync/internal/blocks"
)

// Client uploads converted workouts to the destination platform over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an upload client for the destination server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// uploadResponse is the subset of the destination's response we care about.
type uploadResponse struct {
	ID string `json:"id"`
}

// Upload POSTs one workout to the destination. Retries up to 3 times with
// exponential backoff. Returns the destination's reference key; when the
// response carries no id, a generated key is used so callers can still
// cross-reference placements.
func (c *Client) Upload(w *blocks.Workout) (string, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("marshaling workout: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, c.serverURL+"/api/v1/workouts", bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
			var out uploadResponse
			if err := json.Unmarshal(body, &out); err == nil && out.ID != "" {
				return out.ID, nil
			}
			return uuid.NewString(), nil
		}
		lastErr = fmt.Errorf("upload failed (status %d): %s", resp.StatusCode, body)
	}

	return "", fmt.Errorf("after 3 attempts: %w", lastErr)
}
