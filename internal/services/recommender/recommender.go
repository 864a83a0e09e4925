// Package recommender ranks catalog phones around a budget with an LLM.
package recommender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
)

//nolint:staticcheck // shown to API clients
var ErrBudgetRequired = errors.New("Budget is required")

// NoPhonesMessage is returned when the budget window holds no phones.
const NoPhonesMessage = "No phones found in your budget range"

const (
	temperature = 0.5
	maxTokens   = 2000

	candidateLimit = 20
	minBudgetRatio = 0.8
	maxBudgetRatio = 1.2
)

type Recommender struct {
	log  *slog.Logger
	llm  llm.Client
	repo repository.PhoneRepository
}

func New(log *slog.Logger, client llm.Client, repo repository.PhoneRepository) *Recommender {
	return &Recommender{log: log, llm: client, repo: repo}
}

// Recommend asks the model to rank the phones priced within 20% of budget.
func (r *Recommender) Recommend(
	ctx context.Context,
	budget float64,
	preferences []string,
) (*models.Recommendations, error) {
	const opn = "recommender.Recommend"

	if budget <= 0 {
		return nil, ErrBudgetRequired
	}
	log := r.log.With("op", opn, "budget", budget)

	phones, err := r.repo.PhonesInPriceRange(ctx,
		budget*minBudgetRatio, budget*maxBudgetRatio, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch phones: %w", opn, err)
	}

	if len(phones) == 0 {
		log.InfoContext(ctx, "No phones in budget range")
		return &models.Recommendations{
			Recommendations: []models.Recommendation{},
			Message:         NoPhonesMessage,
		}, nil
	}

	prompt, err := buildPrompt(budget, cleanPreferences(preferences), phones)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	content, err := r.llm.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	var result models.Recommendations
	if err = llm.DecodeJSON(content, &result); err != nil {
		log.ErrorContext(ctx, "Failed to parse recommendation completion", "content", content)
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	result.Recommendations = enrich(result.Recommendations, phones)
	result.Message = ""
	log.InfoContext(ctx, "Generated recommendations",
		"candidates", len(phones), "recommended", len(result.Recommendations), "provider", r.llm.Provider())

	return &result, nil
}

// enrich attaches the catalog row to every recommendation and drops the ones
// naming phones that were not offered to the model.
func enrich(recs []models.Recommendation, phones []models.Phone) []models.Recommendation {
	byID := make(map[string]*models.Phone, len(phones))
	for i := range phones {
		byID[phones[i].ID] = &phones[i]
	}

	out := make([]models.Recommendation, 0, len(recs))
	for _, rec := range recs {
		phone, ok := byID[rec.PhoneID]
		if !ok {
			continue
		}
		rec.Phone = phone
		out = append(out, rec)
	}
	return out
}

func cleanPreferences(preferences []string) []string {
	out := make([]string, 0, len(preferences))
	for _, p := range preferences {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
