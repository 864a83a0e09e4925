package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	GroqBaseURL    = "https://api.groq.com/openai/v1"
	GroqModel      = "llama-3.3-70b-versatile"
	GatewayBaseURL = "https://ai.gateway.lovable.dev/v1"
	GatewayModel   = "google/gemini-2.5-flash"
)

// OpenAIConfig configures an OpenAI-compatible endpoint.
type OpenAIConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// OpenAIClient implements Client for any OpenAI-compatible chat completions API.
type OpenAIClient struct {
	log        *slog.Logger
	provider   string
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient creates a client from config.
func NewOpenAIClient(log *slog.Logger, cfg OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		log:        log,
		provider:   cfg.Provider,
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Provider names the upstream in errors and metrics.
func (c *OpenAIClient) Provider() string {
	return c.provider
}

// Complete sends the system and user prompts and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	const opn = "llm.OpenAIClient.Complete"
	log := c.log.With("op", opn, "provider", c.provider, "model", c.model)

	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s: failed to marshal request: %w", opn, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: failed to create request: %w", opn, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.DebugContext(ctx, "Sending completion request", "user_len", len(req.User))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s: request failed: %w", opn, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: failed to read response: %w", opn, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.ErrorContext(ctx, "Upstream API error", "status", resp.StatusCode, "body", string(respBody))
		return "", &StatusError{Provider: c.provider, StatusCode: resp.StatusCode}
	}

	var parsed chatResponse
	if err = json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%s: failed to parse response: %w", opn, err)
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	return parsed.Choices[0].Message.Content, nil
}
