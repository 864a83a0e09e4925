package mocks

import (
	"context"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/stretchr/testify/mock"
)

// Reviewer is a mock of the review service.
type Reviewer struct {
	mock.Mock
}

func (_m *Reviewer) GenerateReview(ctx context.Context, phone *models.Phone) (*models.Review, error) {
	ret := _m.Called(ctx, phone)

	r0, _ := ret.Get(0).(*models.Review)
	return r0, ret.Error(1)
}

// NewReviewer creates a Reviewer whose expectations are asserted on cleanup.
func NewReviewer(t testingT) *Reviewer {
	m := &Reviewer{}
	register(&m.Mock, t)

	return m
}

// SpecGenerator is a mock of the spec generation service.
type SpecGenerator struct {
	mock.Mock
}

func (_m *SpecGenerator) GenerateSpecs(ctx context.Context, phoneID, phoneName string) (*models.Specs, error) {
	ret := _m.Called(ctx, phoneID, phoneName)

	r0, _ := ret.Get(0).(*models.Specs)
	return r0, ret.Error(1)
}

func (_m *SpecGenerator) Backfill(ctx context.Context) (*models.BackfillReport, error) {
	ret := _m.Called(ctx)

	r0, _ := ret.Get(0).(*models.BackfillReport)
	return r0, ret.Error(1)
}

// NewSpecGenerator creates a SpecGenerator whose expectations are asserted on cleanup.
func NewSpecGenerator(t testingT) *SpecGenerator {
	m := &SpecGenerator{}
	register(&m.Mock, t)

	return m
}

// Recommender is a mock of the recommendation service.
type Recommender struct {
	mock.Mock
}

func (_m *Recommender) Recommend(
	ctx context.Context,
	budget float64,
	preferences []string,
) (*models.Recommendations, error) {
	ret := _m.Called(ctx, budget, preferences)

	r0, _ := ret.Get(0).(*models.Recommendations)
	return r0, ret.Error(1)
}

// NewRecommender creates a Recommender whose expectations are asserted on cleanup.
func NewRecommender(t testingT) *Recommender {
	m := &Recommender{}
	register(&m.Mock, t)

	return m
}

// CatalogChecker is a mock of the catalog import orchestrator.
type CatalogChecker struct {
	mock.Mock
}

func (_m *CatalogChecker) CheckForUpdates(ctx context.Context) (*models.CatalogChanges, error) {
	ret := _m.Called(ctx)

	r0, _ := ret.Get(0).(*models.CatalogChanges)
	return r0, ret.Error(1)
}

// NewCatalogChecker creates a CatalogChecker whose expectations are asserted on cleanup.
func NewCatalogChecker(t testingT) *CatalogChecker {
	m := &CatalogChecker{}
	register(&m.Mock, t)

	return m
}
