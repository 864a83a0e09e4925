// Package llm talks to hosted chat-completion models.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sentinel messages are shown to API clients as-is.
//
//nolint:staticcheck // capitalized on purpose
var (
	ErrNotConfigured    = errors.New("AI API key is not configured")
	ErrEmptyCompletion  = errors.New("No content in AI response")
	ErrInvalidJSON      = errors.New("Invalid JSON response from AI")
	ErrRateLimited      = errors.New("Rate limit exceeded. Please try again later.")
	ErrCreditsExhausted = errors.New("API credits exhausted. Please add credits.")
)

// Request is a single-shot chat completion.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Client sends one prompt and returns the raw completion text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Provider() string
}

// StatusError is a non-2xx reply from the upstream API.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Provider, e.StatusCode)
}

// Is maps the statuses callers react to onto sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.StatusCode == 429
	case ErrCreditsExhausted:
		return e.StatusCode == 402
	default:
		return false
	}
}

var fenceRe = regexp.MustCompile("```(?:json)?\\n?")

// DecodeJSON strips markdown code fences from a completion and unmarshals it into v.
func DecodeJSON(content string, v any) error {
	clean := strings.TrimSpace(fenceRe.ReplaceAllString(content, ""))
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	return nil
}

// Observer receives the outcome of every completion.
type Observer interface {
	ObserveCompletion(provider string, elapsed time.Duration, err error)
}

type instrumented struct {
	Client
	obs Observer
}

// Instrument wraps a client so every completion is reported to obs.
func Instrument(c Client, obs Observer) Client {
	if obs == nil {
		return c
	}
	return &instrumented{Client: c, obs: obs}
}

func (i *instrumented) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	out, err := i.Client.Complete(ctx, req)
	i.obs.ObserveCompletion(i.Client.Provider(), time.Since(start), err)

	return out, err
}
