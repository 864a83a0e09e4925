package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// HTMLParser fetches the retailer listing page and turns it into listings.
type HTMLParser interface {
	GetHTMLResponse(ctx context.Context) (*http.Response, error)
	ParseTableResponse(ctx context.Context, inp io.ReadCloser) ([]models.Listing, error)
}

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "phone-insights-importer/1.0"
)

type Parser struct {
	log     *slog.Logger
	client  *http.Client
	destURL string
}

func NewParser(log *slog.Logger, destinationURL string) *Parser {
	return &Parser{log: log, destURL: destinationURL, client: &http.Client{Timeout: fetchTimeout}}
}

// ParseListings downloads the listing page and parses it.
func (p *Parser) ParseListings(ctx context.Context) ([]models.Listing, error) {
	resp, err := p.GetHTMLResponse(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get html response: %w", err)
	}
	defer resp.Body.Close()

	return p.ParseTableResponse(ctx, resp.Body)
}

func (p *Parser) GetHTMLResponse(ctx context.Context) (*http.Response, error) {
	reqURL, err := url.Parse(p.destURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse destination URL %s: %w", p.destURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", reqURL.String(), err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	p.log.DebugContext(ctx, "Fetching listing page", "url", req.URL)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", p.destURL, err)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	p.log.InfoContext(ctx, "Fetched listing page", "status", res.StatusCode, "bytes", res.ContentLength)

	return res, nil
}

// listing table layout
const (
	numberOfCells = 6
	nameIdx       = 0
	brandIdx      = 1
	priceIdx      = 2
	originalIdx   = 3
	discountIdx   = 4
	imageIdx      = 5
)

func (p *Parser) ParseTableResponse(ctx context.Context, inp io.ReadCloser) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(inp)
	if err != nil {
		return nil, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	var listings []models.Listing
	slugs := make(map[string]struct{})

	doc.Find(".table-bordered tbody tr").Each(func(idx int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() != numberOfCells {
			p.log.WarnContext(ctx, "table row has unexpected number of cells", "index", idx, "length", cells.Length())
			return
		}

		text := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}

		name := text(nameIdx)
		price, ok := ParsePrice(text(priceIdx))
		if name == "" || !ok {
			p.log.WarnContext(ctx, "table row has no name or price", "index", idx, "name", name)
			return
		}

		slug := Slugify(name)
		if slug == "" {
			p.log.WarnContext(ctx, "table row name has no usable slug", "index", idx, "name", name)
			return
		}
		if _, taken := slugs[slug]; taken {
			unique := uniqueSlug(slugs, slug)
			p.log.WarnContext(ctx, "slug collision", "index", idx, "name", name, "slug", slug, "renamed", unique)
			slug = unique
		}
		slugs[slug] = struct{}{}

		listing := models.Listing{
			Name:     name,
			Slug:     slug,
			Brand:    text(brandIdx),
			Price:    price,
			Discount: text(discountIdx),
			ImageURL: imageURL(cells.Eq(imageIdx)),
		}
		if listing.Brand == "" {
			listing.Brand = strings.Fields(name)[0]
		}
		if original, found := ParsePrice(text(originalIdx)); found && original > 0 {
			listing.OriginalPrice = &original
		}

		p.log.DebugContext(ctx, "Parsed listing", "name", listing.Name, "price", listing.Price)
		listings = append(listings, listing)
	})

	return listings, nil
}

// imageURL prefers an <img> source and falls back to the cell text.
func imageURL(cell *goquery.Selection) string {
	if src, ok := cell.Find("img").Attr("src"); ok {
		return strings.TrimSpace(src)
	}
	return strings.TrimSpace(cell.Text())
}

var priceRe = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice reads the first number of a price label such as "Rs. 54,999".
func ParsePrice(s string) (float64, bool) {
	match := priceRe.FindString(s)
	if match == "" {
		return 0, false
	}

	val, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a phone name into its URL key: "Galaxy S24 (8/256)" -> "galaxy-s24-8-256".
func Slugify(name string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// uniqueSlug suffixes base with the first free counter: base-2, base-3 and so on.
func uniqueSlug(taken map[string]struct{}, base string) string {
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
