package recommender

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Houeta/phone-insights/internal/models"
)

const systemPrompt = "You are a professional phone recommendation assistant. " +
	"Always provide honest, helpful recommendations based on specs and value. Respond with valid JSON only."

const recommendTemplate = `You are a phone recommendation expert. Given the user's budget of Rs. %s and the following available phones, recommend the top 5 best options.

%s

Available phones:
%s

Analyze each phone and return a JSON response with exactly this structure:
{
  "recommendations": [
    {
      "phone_id": "uuid of the phone",
      "rank": 1,
      "matchScore": 95,
      "reason": "Brief 1-2 sentence explanation why this phone is recommended",
      "bestFor": ["gaming", "photography", "daily use"]
    }
  ],
  "summary": "A brief 2-3 sentence summary of the recommendations based on the user's budget and preferences"
}

Consider factors like value for money, specifications quality, and user preferences. Return ONLY valid JSON.`

// summary is the condensed view of a phone the model ranks.
type summary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	Price     float64  `json:"price"`
	Processor *string  `json:"processor"`
	RAM       *string  `json:"ram"`
	Storage   *string  `json:"storage"`
	Battery   *string  `json:"battery"`
	Camera    *string  `json:"camera"`
	Display   *string  `json:"display"`
	Rating    *float64 `json:"rating"`
}

// optional keeps unknown specs as JSON null rather than "".
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func summarize(phones []models.Phone) []summary {
	out := make([]summary, 0, len(phones))
	for _, p := range phones {
		out = append(out, summary{
			ID:        p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			Price:     p.CurrentPrice,
			Processor: optional(p.Processor),
			RAM:       optional(p.RAM),
			Storage:   optional(p.Storage),
			Battery:   optional(p.Battery),
			Camera:    optional(p.MainCamera),
			Display:   optional(p.DisplaySize),
			Rating:    p.Rating,
		})
	}
	return out
}

func preferencesLine(preferences []string) string {
	if len(preferences) == 0 {
		return "User has no specific preferences"
	}
	return "User preferences: " + strings.Join(preferences, ", ")
}

func buildPrompt(budget float64, preferences []string, phones []models.Phone) (string, error) {
	list, err := json.MarshalIndent(summarize(phones), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode phone summaries: %w", err)
	}

	return fmt.Sprintf(recommendTemplate,
		strconv.FormatFloat(budget, 'f', -1, 64),
		preferencesLine(preferences),
		list,
	), nil
}
