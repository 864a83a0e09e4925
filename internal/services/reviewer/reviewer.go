package reviewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
)

//nolint:staticcheck // shown to API clients
var ErrPhoneRequired = errors.New("Phone data is required")

const (
	temperature = 0.7
	maxTokens   = 2000
)

// Reviewer writes AI reviews for phones and caches them by phone name.
type Reviewer struct {
	log   *slog.Logger
	llm   llm.Client
	cache repository.ReviewCache
	ttl   time.Duration
}

// New creates a Reviewer. A nil cache or a non-positive ttl disables caching.
func New(log *slog.Logger, client llm.Client, cache repository.ReviewCache, ttl time.Duration) *Reviewer {
	return &Reviewer{log: log, llm: client, cache: cache, ttl: ttl}
}

// GenerateReview returns the review of phone, asking the model on a cache miss.
func (r *Reviewer) GenerateReview(ctx context.Context, phone *models.Phone) (*models.Review, error) {
	const opn = "reviewer.GenerateReview"

	if phone == nil || strings.TrimSpace(phone.Name) == "" {
		return nil, ErrPhoneRequired
	}
	log := r.log.With("op", opn, "phone", phone.Name)

	if r.cachingEnabled() {
		cached, err := r.cache.GetCachedReview(ctx, phone.Name, r.ttl)
		switch {
		case err == nil:
			log.DebugContext(ctx, "Serving cached review")
			return cached, nil
		case !errors.Is(err, repository.ErrReviewNotFound):
			log.WarnContext(ctx, "Review cache lookup failed", "error", err)
		}
	}

	content, err := r.llm.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        buildPrompt(phone),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	var review models.Review
	if err = llm.DecodeJSON(content, &review); err != nil {
		log.ErrorContext(ctx, "Failed to parse review completion", "content", content)
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	if r.cachingEnabled() {
		if err = r.cache.SaveReview(ctx, phone.Name, &review); err != nil {
			log.WarnContext(ctx, "Failed to cache review", "error", err)
		}
	}

	log.InfoContext(ctx, "Generated review", "provider", r.llm.Provider())

	return &review, nil
}

func (r *Reviewer) cachingEnabled() bool {
	return r.cache != nil && r.ttl > 0
}
