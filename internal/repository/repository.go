package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
)

var (
	ErrStateNotFound  = errors.New("catalog state not found")
	ErrPhoneNotFound  = errors.New("phone not found")
	ErrReviewNotFound = errors.New("cached review not found")
)

// PhoneRepository is the catalog table.
type PhoneRepository interface {
	ListPhones(ctx context.Context, filter models.PhoneFilter) ([]models.Phone, error)
	GetPhoneBySlug(ctx context.Context, slug string) (*models.Phone, error)
	GetPhoneByID(ctx context.Context, id string) (*models.Phone, error)
	ListBrands(ctx context.Context) ([]string, error)
	PhonesInPriceRange(ctx context.Context, minPrice, maxPrice float64, limit int) ([]models.Phone, error)
	PhonesMissingSpecs(ctx context.Context, limit int) ([]models.Phone, error)
	UpdateSpecs(ctx context.Context, id string, specs *models.Specs) error
}

// StateRepository stores what the catalog importer saw last time.
type StateRepository interface {
	GetCatalogState(ctx context.Context) (*models.CatalogState, error)
	SyncCatalog(ctx context.Context, state *models.CatalogState) error
}

// ReviewCache keeps generated reviews keyed by phone name.
type ReviewCache interface {
	GetCachedReview(ctx context.Context, phoneName string, maxAge time.Duration) (*models.Review, error)
	SaveReview(ctx context.Context, phoneName string, review *models.Review) error
}

// SubscriptionRepository tracks Telegram chats that receive catalog alerts.
type SubscriptionRepository interface {
	// Subscribe reports false when the chat was already subscribed.
	Subscribe(ctx context.Context, chatID int64, username string) (bool, error)
	// Unsubscribe reports false when the chat was not subscribed.
	Unsubscribe(ctx context.Context, chatID int64) (bool, error)
	SubscribedChats(ctx context.Context) ([]int64, error)
}
