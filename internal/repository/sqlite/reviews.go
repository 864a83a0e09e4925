package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
)

// GetCachedReview returns a stored review not older than maxAge.
func (r *Repository) GetCachedReview(
	ctx context.Context,
	phoneName string,
	maxAge time.Duration,
) (*models.Review, error) {
	const opn = "repository.sqlite.GetCachedReview"

	var (
		payload   string
		createdAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT payload, created_at FROM review_cache WHERE phone_name = ?", phoneName,
	).Scan(&payload, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrReviewNotFound
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	if maxAge <= 0 || time.Since(createdAt) > maxAge {
		return nil, repository.ErrReviewNotFound
	}

	var review models.Review
	if err = json.Unmarshal([]byte(payload), &review); err != nil {
		return nil, fmt.Errorf("%s: failed to decode cached review: %w", opn, err)
	}

	return &review, nil
}

// SaveReview stores or replaces the cached review of a phone.
func (r *Repository) SaveReview(ctx context.Context, phoneName string, review *models.Review) error {
	const opn = "repository.sqlite.SaveReview"

	payload, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("%s: failed to encode review: %w", opn, err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO review_cache (phone_name, payload, created_at) VALUES (?, ?, ?)",
		phoneName, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}
