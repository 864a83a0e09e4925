package mocks

import (
	"context"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/stretchr/testify/mock"
)

// PhoneRepository is a mock of repository.PhoneRepository.
type PhoneRepository struct {
	mock.Mock
}

func (_m *PhoneRepository) ListPhones(ctx context.Context, filter models.PhoneFilter) ([]models.Phone, error) {
	ret := _m.Called(ctx, filter)

	r0, _ := ret.Get(0).([]models.Phone)
	return r0, ret.Error(1)
}

func (_m *PhoneRepository) GetPhoneBySlug(ctx context.Context, slug string) (*models.Phone, error) {
	ret := _m.Called(ctx, slug)

	r0, _ := ret.Get(0).(*models.Phone)
	return r0, ret.Error(1)
}

func (_m *PhoneRepository) GetPhoneByID(ctx context.Context, id string) (*models.Phone, error) {
	ret := _m.Called(ctx, id)

	r0, _ := ret.Get(0).(*models.Phone)
	return r0, ret.Error(1)
}

func (_m *PhoneRepository) ListBrands(ctx context.Context) ([]string, error) {
	ret := _m.Called(ctx)

	r0, _ := ret.Get(0).([]string)
	return r0, ret.Error(1)
}

func (_m *PhoneRepository) PhonesInPriceRange(
	ctx context.Context,
	minPrice, maxPrice float64,
	limit int,
) ([]models.Phone, error) {
	ret := _m.Called(ctx, minPrice, maxPrice, limit)

	r0, _ := ret.Get(0).([]models.Phone)
	return r0, ret.Error(1)
}

func (_m *PhoneRepository) PhonesMissingSpecs(ctx context.Context, limit int) ([]models.Phone, error) {
	ret := _m.Called(ctx, limit)

	r0, _ := ret.Get(0).([]models.Phone)
	return r0, ret.Error(1)
}

func (_m *PhoneRepository) UpdateSpecs(ctx context.Context, id string, specs *models.Specs) error {
	return _m.Called(ctx, id, specs).Error(0)
}

// NewPhoneRepository creates a PhoneRepository whose expectations are asserted on cleanup.
func NewPhoneRepository(t testingT) *PhoneRepository {
	m := &PhoneRepository{}
	register(&m.Mock, t)

	return m
}
