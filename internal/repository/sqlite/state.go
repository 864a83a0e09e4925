package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
	"github.com/google/uuid"
)

// GetCatalogState implements an interface method for retrieving state from the database.
func (r *Repository) GetCatalogState(ctx context.Context) (*models.CatalogState, error) {
	const opn = "repository.sqlite.GetCatalogState"

	// 1. Get hash of page
	var pageHash string
	err := r.db.QueryRowContext(ctx, "SELECT page_hash FROM catalog_state WHERE id = 1").Scan(&pageHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrStateNotFound
		}
		return nil, fmt.Errorf("%s: failed to get page hash: %w", opn, err)
	}

	// 2. Get the listing columns of every phone
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, slug, brand, current_price, original_price, discount, image_url FROM phones")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get phones: %w", opn, err)
	}
	defer rows.Close()

	// 3. Scan every row to Listing structure
	var listings []models.Listing
	for rows.Next() {
		var (
			l        models.Listing
			brand    sql.NullString
			original sql.NullFloat64
			discount sql.NullString
			image    sql.NullString
		)
		if err = rows.Scan(&l.Name, &l.Slug, &brand, &l.Price, &original, &discount, &image); err != nil {
			return nil, fmt.Errorf("%s: failed to scan listing: %w", opn, err)
		}
		l.Brand = brand.String
		l.OriginalPrice = floatPtr(original)
		l.Discount = discount.String
		l.ImageURL = image.String
		listings = append(listings, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return &models.CatalogState{
		PageHash: pageHash,
		Listings: listings,
	}, nil
}

// SyncCatalog atomically stores the page hash and upserts every listing.
// Phones missing from the listing are kept: they carry generated specs.
func (r *Repository) SyncCatalog(ctx context.Context, state *models.CatalogState) error {
	const opn = "repository.sqlite.SyncCatalog"

	// 1. begin transaction
	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // returns sql.ErrTxDone after a successful commit

	// 2. Update (or insert) hash of page.
	_, err = tx.ExecContext(ctx, "INSERT OR REPLACE INTO catalog_state (id, page_hash) VALUES (1, ?)", state.PageHash)
	if err != nil {
		return fmt.Errorf("%s: failed to update page hash: %w", opn, err)
	}

	// 3. Prepare the upsert keyed by slug.
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO phones
		(id, name, slug, brand, current_price, original_price, discount, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			current_price = excluded.current_price,
			original_price = excluded.original_price,
			discount = excluded.discount,
			image_url = COALESCE(excluded.image_url, phones.image_url),
			brand = COALESCE(excluded.brand, phones.brand),
			updated_at = excluded.updated_at`,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare upsert statement: %w", opn, err)
	}
	defer stmt.Close()

	// 4. Upsert each listing.
	now := time.Now().UTC()
	for _, l := range state.Listings {
		_, err = stmt.ExecContext(ctx,
			uuid.NewString(), l.Name, l.Slug, nullString(l.Brand), l.Price,
			nullFloat(l.OriginalPrice), nullString(l.Discount), nullString(l.ImageURL), now, now,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to upsert phone with slug %s: %w", opn, l.Slug, err)
		}
	}

	// 5. If all operations went through without errors - confirm the transaction.
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}
