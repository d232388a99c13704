package service

import (
	"context"

	"food-delivery/analytics-svc/internal/domain"
)

type AnalyticsInterface interface {
	ForRestaurant(ctx context.Context, restaurantID int, period string) (*domain.RestaurantAnalytics, error)
	TopRestaurants(ctx context.Context, limit int) ([]domain.RestaurantRank, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
