// Package completion provides a client for an OpenAI-compatible chat
// completions endpoint.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is one role/content entry in a completion prompt. Only role and
// content cross the wire; identifiers and timestamps never reach the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UpstreamError reports a failed or malformed response from the completion
// API. The upstream body is preserved so callers can surface it.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion API error (status %d): %s", e.StatusCode, e.Body)
}

// Client is a minimal chat completions client. The model identifier and
// sampling parameters are fixed at construction; the API key is supplied per
// call because it is held by the caller, not the server.
type Client struct {
	url         string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewClient creates a completion client.
func NewClient(url, model string, maxTokens int, temperature float64, timeout time.Duration) *Client {
	return &Client{
		url:         url,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CreateChatCompletion sends the assembled prompt and returns the model's
// reply text. The caller-supplied key is forwarded as the bearer credential.
func (c *Client) CreateChatCompletion(ctx context.Context, apiKey string, messages []Message) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed reading completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: truncate(string(body), 2000)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: "unparseable response body: " + truncate(string(body), 400)}
	}

	// A payload without the expected content field is treated the same as an
	// upstream failure.
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: "response missing message content"}
	}

	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
