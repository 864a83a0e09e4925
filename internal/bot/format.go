package bot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Houeta/phone-insights/internal/models"
)

func rupees(v float64) string {
	return "Rs. " + strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPhone(p *models.Phone) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s", p.Name, rupees(p.CurrentPrice))
	if p.OriginalPrice != nil && *p.OriginalPrice > p.CurrentPrice {
		fmt.Fprintf(&b, " (was %s)", rupees(*p.OriginalPrice))
	}
	b.WriteString("\n")
	if p.Rating != nil {
		fmt.Fprintf(&b, "Rating: %.1f\n", *p.Rating)
	}

	for _, row := range [][2]string{
		{"Processor", p.Processor},
		{"RAM", p.RAM},
		{"Storage", p.Storage},
		{"Battery", p.Battery},
		{"Camera", p.MainCamera},
		{"Display", strings.TrimSpace(p.DisplaySize + " " + p.DisplayType)},
	} {
		if row[1] != "" {
			fmt.Fprintf(&b, "%s: %s\n", row[0], row[1])
		}
	}
	if !p.HasSpecs() {
		b.WriteString("Specs are not available yet.\n")
	}

	return strings.TrimSpace(b.String())
}

func formatPhoneList(phones []models.Phone) string {
	lines := make([]string, 0, len(phones))
	for _, p := range phones {
		lines = append(lines, fmt.Sprintf("%s - %s (/phone %s)", p.Name, rupees(p.CurrentPrice), p.Slug))
	}
	return strings.Join(lines, "\n")
}

func formatRecommendations(recs *models.Recommendations) string {
	if len(recs.Recommendations) == 0 {
		if recs.Message != "" {
			return recs.Message
		}
		return "No recommendations this time."
	}

	var b strings.Builder
	for _, r := range recs.Recommendations {
		fmt.Fprintf(&b, "%d. %s - %s (match %d%%)\n%s\n\n", r.Rank, r.Phone.Name, rupees(r.Phone.CurrentPrice),
			r.MatchScore, r.Reason)
	}
	b.WriteString(recs.Summary)

	return strings.TrimSpace(b.String())
}

// formatChanges renders the changes subscribers care about: new phones and
// price drops. Removals and price increases are left out.
func formatChanges(changes *models.CatalogChanges) string {
	if changes.Empty() {
		return ""
	}

	var b strings.Builder
	if len(changes.Added) > 0 {
		b.WriteString("New phones:\n")
		for _, l := range changes.Added {
			fmt.Fprintf(&b, "+ %s - %s\n", l.Name, rupees(l.Price))
		}
	}

	var drops []models.PriceChange
	for _, c := range changes.Changed {
		if c.Dropped() {
			drops = append(drops, c)
		}
	}
	if len(drops) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Price drops:\n")
		for _, c := range drops {
			fmt.Fprintf(&b, "- %s: %s -> %s\n", c.New.Name, rupees(c.Old.Price), rupees(c.New.Price))
		}
	}

	return strings.TrimSpace(b.String())
}

// maxMessageLen is the Telegram limit on the text of one message, in characters.
const maxMessageLen = 4096

// splitMessage cuts text into parts of at most limit runes, breaking between
// lines where possible.
func splitMessage(text string, limit int) []string {
	var (
		parts []string
		cur   strings.Builder
		size  int
	)
	flush := func() {
		if part := strings.TrimRight(cur.String(), "\n"); part != "" {
			parts = append(parts, part)
		}
		cur.Reset()
		size = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if size+n > limit {
			flush()
		}
		for n > limit {
			runes := []rune(line)
			parts = append(parts, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}
		cur.WriteString(line)
		size += n
	}
	flush()

	return parts
}
