package service

import (
	"context"

	"food-delivery/agg-svc/internal/domain"
	"food-delivery/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	UpdateRestaurantRating(ctx context.Context, restaurantID int) error
	UpdateDriverRating(ctx context.Context, driverID int) error
	RecordOrder(ctx context.Context, event domain.Event) error
	RecordCancellation(ctx context.Context, event domain.Event) error
}

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Process(ctx context.Context, event domain.Event) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
