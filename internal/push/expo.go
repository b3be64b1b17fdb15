// Package push delivers push notifications through the Expo push
// service. Recipient tokens come from the push_tokens registry kept by
// the profiles module.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultEndpoint is the Expo push API endpoint.
const DefaultEndpoint = "https://exp.host/--/api/v2/push/send"

// maxBatchSize is the Expo limit on messages per request.
const maxBatchSize = 100

// Message is a notification addressed to one or more Expo push tokens.
type Message struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

type expoMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title,omitempty"`
	Body  string            `json:"body,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound,omitempty"`
}

type expoTicket struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type expoResponse struct {
	Data []expoTicket `json:"data"`
}

// Client talks to the Expo push API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a Client. An empty endpoint falls back to the
// public Expo API.
func NewClient(endpoint string, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Send delivers the message to every token, batching per the Expo
// limit. Per-token delivery errors are logged and do not fail the
// whole send; transport errors do.
func (c *Client) Send(ctx context.Context, msg Message) error {
	for start := 0; start < len(msg.Tokens); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(msg.Tokens) {
			end = len(msg.Tokens)
		}
		if err := c.sendBatch(ctx, msg, msg.Tokens[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) sendBatch(ctx context.Context, msg Message, tokens []string) error {
	batch := make([]expoMessage, 0, len(tokens))
	for _, token := range tokens {
		batch = append(batch, expoMessage{
			To:    token,
			Title: msg.Title,
			Body:  msg.Body,
			Data:  msg.Data,
			Sound: "default",
		})
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("push: marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("push: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push: send batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push: expo responded %d", resp.StatusCode)
	}

	var parsed expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("push: decode response: %w", err)
	}
	for i, ticket := range parsed.Data {
		if ticket.Status != "ok" && i < len(tokens) {
			c.logger.Warn("push delivery rejected",
				slog.String("token", tokens[i]), slog.String("detail", ticket.Message))
		}
	}
	return nil
}
