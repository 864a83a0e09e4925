package mocks

import (
	"context"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/stretchr/testify/mock"
)

// StateRepository is a mock of repository.StateRepository.
type StateRepository struct {
	mock.Mock
}

func (_m *StateRepository) GetCatalogState(ctx context.Context) (*models.CatalogState, error) {
	ret := _m.Called(ctx)

	r0, _ := ret.Get(0).(*models.CatalogState)
	return r0, ret.Error(1)
}

func (_m *StateRepository) SyncCatalog(ctx context.Context, state *models.CatalogState) error {
	return _m.Called(ctx, state).Error(0)
}
