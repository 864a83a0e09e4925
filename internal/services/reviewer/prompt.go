package reviewer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Houeta/phone-insights/internal/models"
)

const systemPrompt = "You are a professional tech reviewer who provides honest, detailed smartphone reviews. " +
	"Always respond with valid JSON only."

const reviewTemplate = `You are an expert tech reviewer. Based on the following phone specifications, generate a comprehensive review in JSON format.

%s

Generate a response with exactly this JSON structure:
{
  "summary": "A 2-3 sentence compelling summary of the phone highlighting its best features and value proposition",
  "pros": ["pro 1", "pro 2", "pro 3", "pro 4", "pro 5"],
  "cons": ["con 1", "con 2", "con 3"],
  "verdict": "A 2-3 sentence final verdict on whether this phone is worth buying and who it's best for",
  "performanceScore": 85,
  "cameraScore": 80,
  "batteryScore": 82,
  "valueScore": 88,
  "displayScore": 83,
  "highlights": [
    {"title": "Performance", "description": "Brief description of performance"},
    {"title": "Camera", "description": "Brief description of camera quality"},
    {"title": "Battery", "description": "Brief description of battery life"},
    {"title": "Display", "description": "Brief description of display quality"}
  ],
  "bestFor": ["gaming", "photography", "daily use"],
  "comparison": "Brief comparison with similar phones in this price range"
}

Be honest and realistic. Scores should be out of 100. Consider the price point when evaluating value. Return ONLY valid JSON, no markdown or extra text.`

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

// specSheet renders the phone as the plain-text block embedded in the prompt.
func specSheet(phone *models.Phone) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Phone: %s\n", phone.Name)
	fmt.Fprintf(&b, "Price: Rs. %s", formatPrice(phone.CurrentPrice))
	if phone.OriginalPrice != nil && *phone.OriginalPrice > 0 {
		fmt.Fprintf(&b, " (Original: Rs. %s)", formatPrice(*phone.OriginalPrice))
	}
	b.WriteString("\n")
	// The discount line stays in place, blank, when there is no discount.
	if phone.Discount != "" {
		fmt.Fprintf(&b, "Discount: %s", phone.Discount)
	}
	b.WriteString("\n")

	rating := "N/A"
	if phone.Rating != nil && *phone.Rating > 0 {
		rating = strconv.FormatFloat(*phone.Rating, 'f', -1, 64)
	}
	fmt.Fprintf(&b, "Rating: %s\n", rating)

	for _, row := range [][2]string{
		{"Processor", phone.Processor},
		{"RAM", phone.RAM},
		{"Storage", phone.Storage},
		{"Battery", phone.Battery},
		{"Main Camera", phone.MainCamera},
		{"Selfie Camera", phone.SelfieCamera},
		{"Display Size", phone.DisplaySize},
		{"Display Type", phone.DisplayType},
		{"OS", phone.OS},
		{"Network", phone.Network},
		{"Weight", phone.Weight},
		{"Dimensions", phone.Dimensions},
	} {
		fmt.Fprintf(&b, "%s: %s\n", row[0], orUnknown(row[1]))
	}

	return strings.TrimSpace(b.String())
}

func buildPrompt(phone *models.Phone) string {
	return fmt.Sprintf(reviewTemplate, specSheet(phone))
}
