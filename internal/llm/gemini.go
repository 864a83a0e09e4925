package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// GeminiModel is the default model of the GenAI provider.
const GeminiModel = "gemini-2.5-flash"

// GeminiClient implements Client on top of the Google GenAI SDK.
type GeminiClient struct {
	log    *slog.Logger
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client. An empty key yields a client that
// fails every call with ErrNotConfigured.
func NewGeminiClient(ctx context.Context, log *slog.Logger, apiKey, model string) (*GeminiClient, error) {
	if model == "" {
		model = GeminiModel
	}

	gc := &GeminiClient{log: log, model: model}
	if apiKey == "" {
		return gc, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	gc.client = client

	return gc, nil
}

// Provider names the upstream in errors and metrics.
func (c *GeminiClient) Provider() string {
	return "Gemini"
}

// Complete asks the model for a JSON completion.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	const opn = "llm.GeminiClient.Complete"

	if c.client == nil {
		return "", ErrNotConfigured
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens:  int32(req.MaxTokens), //nolint:gosec // token limits are small
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.User), cfg)
	if err != nil {
		if code, ok := apiErrorCode(err); ok {
			c.log.ErrorContext(ctx, "Upstream API error", "op", opn, "status", code, "error", err)
			return "", &StatusError{Provider: c.Provider(), StatusCode: code}
		}
		return "", fmt.Errorf("%s: %w", opn, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code, true
	}

	return 0, false
}
