// Package aiclient wraps the hosted chat-completion API that produces the raw
// analysis text. The endpoint is OpenAI-compatible: bearer-token auth, one
// system message establishing the role, one user message with the prompt.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the production completion API host.
const DefaultBaseURL = "https://api.openai.com/v1"

// Client calls the chat-completion endpoint. No retry or backoff is applied;
// the platform-default HTTP timeout is the only limit.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *logrus.Logger
}

// NewClient creates a completion client. baseURL is DefaultBaseURL in
// production and an httptest server in tests.
func NewClient(baseURL, apiKey, model string, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the system and user messages and returns the raw completion
// text from choices[0].
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"model":       c.model,
		}).Error("Completion endpoint returned non-success status")
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	var payload completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	content := payload.Choices[0].Message.Content
	c.logger.WithFields(logrus.Fields{
		"model":           c.model,
		"response_length": len(content),
	}).Info("Received completion response")

	return content, nil
}
