package checker

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/parser"
	"github.com/Houeta/phone-insights/internal/repository"
)

// Checker is an orchestrator that performs a full catalog import cycle.
type Checker struct {
	log    *slog.Logger
	parser parser.HTMLParser
	repo   repository.StateRepository
}

// NewChecker creates a new Checker instance.
func NewChecker(log *slog.Logger, parser parser.HTMLParser, repo repository.StateRepository) *Checker {
	return &Checker{log: log, parser: parser, repo: repo}
}

// CheckForUpdates fetches the listing page and, when it differs from the last
// import, stores the listings and reports what changed.
func (c *Checker) CheckForUpdates(ctx context.Context) (*models.CatalogChanges, error) {
	const opn = "checker.CheckForUpdates"
	log := c.log.With("op", opn)

	// 1. Retrieving HTML and calculating a new hash
	log.InfoContext(ctx, "Fetching listing page to check for updates")
	resp, err := c.parser.GetHTMLResponse(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get html response: %w", opn, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response body: %w", opn, err)
	}

	newPageHash := calculateHash(body)
	log.DebugContext(ctx, "Calculated new page hash", "hash", newPageHash)

	// 2. Getting the old state from the database
	oldState, err := c.repo.GetCatalogState(ctx)
	if err != nil && !errors.Is(err, repository.ErrStateNotFound) {
		return nil, fmt.Errorf("%s: failed to get old state: %w", opn, err)
	}

	// 3. Hash comparison
	if err == nil && oldState.PageHash == newPageHash {
		log.InfoContext(ctx, "Page hash has not changed. No updates.")
		return &models.CatalogChanges{}, nil
	}
	log.InfoContext(ctx, "Page hash differs or first run. Starting full analysis...")

	// 4. Full page parsing
	listings, err := c.parser.ParseTableResponse(ctx, io.NopCloser(bytes.NewReader(body)))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse listings from new response: %w", opn, err)
	}
	log.InfoContext(ctx, "Successfully parsed listings", "count", len(listings))

	// 5. Listing comparison
	var known []models.Listing
	if oldState != nil {
		known = oldState.Listings
	}
	changes := detectChanges(known, listings)
	log.InfoContext(ctx, "Change detection complete",
		"added", len(changes.Added),
		"removed", len(changes.Removed),
		"changed", len(changes.Changed),
	)

	// 6. Updating the database and returning the result
	if err = c.repo.SyncCatalog(ctx, &models.CatalogState{PageHash: newPageHash, Listings: listings}); err != nil {
		return nil, fmt.Errorf("%s: failed to sync catalog: %w", opn, err)
	}
	log.InfoContext(ctx, "Successfully synced catalog")

	return &changes, nil
}

// Run checks the catalog every interval until ctx is done. onChange is called
// with every non-empty result.
func (c *Checker) Run(
	ctx context.Context,
	interval time.Duration,
	onChange func(context.Context, *models.CatalogChanges),
) {
	log := c.log.With("op", "checker.Run")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		changes, err := c.CheckForUpdates(ctx)
		switch {
		case err != nil:
			log.ErrorContext(ctx, "Catalog check failed", "error", err)
		case !changes.Empty() && onChange != nil:
			onChange(ctx, changes)
		}

		select {
		case <-ctx.Done():
			log.InfoContext(ctx, "Catalog checker stopped")
			return
		case <-ticker.C:
		}
	}
}

// calculateHash calculates the SHA256 hash for a slice of bytes.
func calculateHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// detectChanges compares two listing sets by slug.
func detectChanges(oldListings, newListings []models.Listing) models.CatalogChanges {
	oldMap := make(map[string]models.Listing, len(oldListings))
	for _, l := range oldListings {
		oldMap[l.Slug] = l
	}

	var changes models.CatalogChanges
	seen := make(map[string]struct{}, len(newListings))
	for _, l := range newListings {
		if _, dup := seen[l.Slug]; dup {
			continue
		}
		seen[l.Slug] = struct{}{}

		old, found := oldMap[l.Slug]
		if !found {
			changes.Added = append(changes.Added, l)
			continue
		}
		if old.Price != l.Price {
			changes.Changed = append(changes.Changed, models.PriceChange{Old: old, New: l})
		}
		delete(oldMap, l.Slug)
	}

	for _, removed := range oldMap {
		changes.Removed = append(changes.Removed, removed)
	}
	sort.Slice(changes.Removed, func(i, j int) bool {
		return changes.Removed[i].Slug < changes.Removed[j].Slug
	})

	return changes
}
