package mocks

import (
	"context"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/stretchr/testify/mock"
)

// ReviewCache is a mock of repository.ReviewCache.
type ReviewCache struct {
	mock.Mock
}

func (_m *ReviewCache) GetCachedReview(
	ctx context.Context,
	phoneName string,
	maxAge time.Duration,
) (*models.Review, error) {
	ret := _m.Called(ctx, phoneName, maxAge)

	r0, _ := ret.Get(0).(*models.Review)
	return r0, ret.Error(1)
}

func (_m *ReviewCache) SaveReview(ctx context.Context, phoneName string, review *models.Review) error {
	return _m.Called(ctx, phoneName, review).Error(0)
}

// NewReviewCache creates a ReviewCache whose expectations are asserted on cleanup.
func NewReviewCache(t testingT) *ReviewCache {
	m := &ReviewCache{}
	register(&m.Mock, t)

	return m
}
