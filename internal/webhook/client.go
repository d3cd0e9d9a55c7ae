// Package webhook posts alert notifications to a Discord webhook URL.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gradewatch/gradewatch/internal/alert"
)

const defaultTimeout = 10 * time.Second

// Embed is one Discord rich-message block.
type Embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

// Payload is the webhook wire shape: a list of embeds.
type Payload struct {
	Embeds []Embed `json:"embeds"`
}

// Client delivers notifications to a single webhook URL. It implements
// alert.Notifier.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

func New(url string, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		http:   &http.Client{Timeout: defaultTimeout},
		logger: logger,
	}
}

// Send serializes the notification to the embed wire shape and posts
// it. A non-2xx response is an error; the caller decides whether that
// is fatal.
func (c *Client) Send(ctx context.Context, n alert.Notification) error {
	payload := Payload{
		Embeds: []Embed{{
			Title:       n.Title,
			Description: n.Description(),
			Color:       n.Color,
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}

	c.logger.Debug("webhook delivered", "title", n.Title)
	return nil
}
