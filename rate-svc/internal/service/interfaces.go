package service

import (
	"context"

	"food-delivery/auth"
	"food-delivery/rate-svc/internal/domain"
)

type RatingServiceInterface interface {
	Submit(ctx context.Context, claims *auth.Claims, kind domain.RatingType, req domain.RatingRequest) (*domain.Rating, error)
	Check(ctx context.Context, claims *auth.Claims, kind domain.RatingType, orderID int) (bool, error)
	Summary(ctx context.Context, kind domain.RatingType, targetID int) (*domain.Summary, error)
}

type RatingRepository interface {
	GetOrderInfo(ctx context.Context, orderID int) (*domain.OrderInfo, error)
	InsertRating(ctx context.Context, rating *domain.Rating) error
	HasRated(ctx context.Context, userID int, kind domain.RatingType, orderID int) (bool, error)
	Distribution(ctx context.Context, kind domain.RatingType, targetID int) (map[int]int, error)
}

type RatingMarkers interface {
	IsRated(ctx context.Context, userID int, kind domain.RatingType, orderID int) (bool, error)
	MarkRated(ctx context.Context, userID int, kind domain.RatingType, orderID int) error
}

type RatingPublisher interface {
	PublishRating(ctx context.Context, event domain.RatingEvent) error
}

var _ RatingServiceInterface = (*RatingService)(nil)
