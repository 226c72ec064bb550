package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/motodesk/backend/internal/application/catalog"
	"github.com/motodesk/backend/internal/infrastructure/config"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 1 * 1024 * 1024 // 1MB max response

// TextClient calls a chat-completions style text generation API to produce
// vehicle sale descriptions. Requests are fired once and never retried; the
// caller falls back to canned copy on any failure.
type TextClient struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

// NewTextClient creates a text generation client from configuration
func NewTextClient(cfg config.AIConfig) (*TextClient, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("ai: endpoint is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &TextClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateDescription produces a short sale listing for the vehicle profile
func (c *TextClient) GenerateDescription(ctx context.Context, profile catalog.VehicleProfile) (string, error) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You write short, honest sale listings for used two-wheelers at an Indian dealership. Two sentences, no emoji, no price.",
			},
			{
				Role:    "user",
				Content: buildPrompt(profile),
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ai: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("ai: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("ai: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("ai: HTTP %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ai: failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("ai: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai: empty response")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func buildPrompt(profile catalog.VehicleProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vehicle: %d %s %s.", profile.Year, profile.Make, profile.Model)
	if profile.Color != "" {
		fmt.Fprintf(&b, " Color: %s.", profile.Color)
	}
	if profile.Odometer > 0 {
		fmt.Fprintf(&b, " Odometer: %d km.", profile.Odometer)
	}
	return b.String()
}

// Ensure TextClient implements the description generator
var _ catalog.Generator = (*TextClient)(nil)
