package storage

import (
	"context"
	"fmt"
	"time"

	"food-delivery/rate-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RatingMarkers remembers which ratings a user already gave so repeated
// checks do not reach Postgres. A marker holds the unix time it was set.
type RatingMarkers struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRatingMarkers(client *redis.Client, ttl time.Duration) *RatingMarkers {
	return &RatingMarkers{client: client, ttl: ttl}
}

func markerKey(userID int, kind domain.RatingType, orderID int) string {
	return fmt.Sprintf("rating:%d:%s:%d", userID, kind, orderID)
}

func (m *RatingMarkers) IsRated(ctx context.Context, userID int, kind domain.RatingType, orderID int) (bool, error) {
	n, err := m.client.Exists(ctx, markerKey(userID, kind, orderID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *RatingMarkers) MarkRated(ctx context.Context, userID int, kind domain.RatingType, orderID int) error {
	return m.client.SetNX(ctx, markerKey(userID, kind, orderID), time.Now().Unix(), m.ttl).Err()
}
