package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// SubscriptionRepository is a mock of repository.SubscriptionRepository.
type SubscriptionRepository struct {
	mock.Mock
}

func (_m *SubscriptionRepository) Subscribe(ctx context.Context, chatID int64, username string) (bool, error) {
	ret := _m.Called(ctx, chatID, username)

	return ret.Bool(0), ret.Error(1)
}

func (_m *SubscriptionRepository) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	ret := _m.Called(ctx, chatID)

	return ret.Bool(0), ret.Error(1)
}

func (_m *SubscriptionRepository) SubscribedChats(ctx context.Context) ([]int64, error) {
	ret := _m.Called(ctx)

	r0, _ := ret.Get(0).([]int64)
	return r0, ret.Error(1)
}

// NewSubscriptionRepository creates a SubscriptionRepository whose expectations are asserted on cleanup.
func NewSubscriptionRepository(t testingT) *SubscriptionRepository {
	m := &SubscriptionRepository{}
	register(&m.Mock, t)

	return m
}
