// Package expo sends push notifications through Expo's push API, the
// delivery channel for the drivers' mobile app.
package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type PushClient struct {
	URL  string
	HTTP *http.Client
}

func NewPushClient(url string, timeout time.Duration) *PushClient {
	return &PushClient{
		URL: url,
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

type PushMessage struct {
	To    string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

type pushTicket struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type pushResponse struct {
	Data []pushTicket `json:"data"`
}

// Send delivers one message and surfaces Expo's per-ticket errors, which
// arrive inside a 200 response.
func (c *PushClient) Send(ctx context.Context, msg PushMessage) error {
	// Expo's endpoint accepts an array of messages.
	body, err := json.Marshal([]PushMessage{msg})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expo push: unexpected status %d", resp.StatusCode)
	}

	var parsed pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return err
	}
	for _, ticket := range parsed.Data {
		if ticket.Status == "error" {
			return fmt.Errorf("expo push: %s", ticket.Message)
		}
	}

	return nil
}
