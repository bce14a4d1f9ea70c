package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultReplyEndpoint = "https://api.line.me/v2/bot/message/reply"

// Client posts replies back through the LINE reply API.
type Client struct {
	accessToken string
	endpoint    string
	httpClient  *http.Client
}

// NewClient builds a reply client. An empty endpoint selects the real LINE
// API; tests point it at a local server.
func NewClient(accessToken, endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultReplyEndpoint
	}
	return &Client{
		accessToken: accessToken,
		endpoint:    endpoint,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

// Reply sends one text message for the given reply token.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	payload := replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reply request failed: %d, %s", resp.StatusCode, string(body))
	}
	return nil
}
