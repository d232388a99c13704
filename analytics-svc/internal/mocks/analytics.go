package mocks

import (
	"context"

	"food-delivery/analytics-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type AnalyticsInterface struct {
	mock.Mock
}

func (_m *AnalyticsInterface) ForRestaurant(ctx context.Context, restaurantID int, period string) (*domain.RestaurantAnalytics, error) {
	ret := _m.Called(ctx, restaurantID, period)

	var r0 *domain.RestaurantAnalytics
	if rf, ok := ret.Get(0).(func(context.Context, int, string) *domain.RestaurantAnalytics); ok {
		r0 = rf(ctx, restaurantID, period)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.RestaurantAnalytics)
	}
	return r0, ret.Error(1)
}

func (_m *AnalyticsInterface) TopRestaurants(ctx context.Context, limit int) ([]domain.RestaurantRank, error) {
	ret := _m.Called(ctx, limit)

	var r0 []domain.RestaurantRank
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.RestaurantRank)
	}
	return r0, ret.Error(1)
}

func NewAnalyticsInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *AnalyticsInterface {
	m := &AnalyticsInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
