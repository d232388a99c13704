package storage

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"food-delivery/agg-svc/internal/domain"
	"food-delivery/aggregates"

	"github.com/redis/go-redis/v9"
)

const (
	dailyTTL  = 7 * 24 * time.Hour
	ratingTTL = 24 * time.Hour
)

type Store struct {
	db  *sql.DB
	rdb *redis.Client
	now func() time.Time
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb, now: time.Now}
}

// UpdateRestaurantRating recomputes the restaurant's average from the
// ratings table and mirrors it into Redis.
func (s *Store) UpdateRestaurantRating(ctx context.Context, restaurantID int) error {
	var avgRating float64
	var count int
	err := s.db.QueryRowContext(ctx, `
		UPDATE restaurants
		SET avg_rating = COALESCE((
			SELECT ROUND(AVG(rating::numeric), 2)
			FROM ratings
			WHERE target_type = 'restaurant' AND target_id = $1
		), 0),
		rating_count = (
			SELECT COUNT(*)
			FROM ratings
			WHERE target_type = 'restaurant' AND target_id = $1
		)
		WHERE id = $1
		RETURNING avg_rating, rating_count
	`, restaurantID).Scan(&avgRating, &count)
	if err != nil {
		return err
	}

	key := aggregates.RestaurantRatingKey(restaurantID)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			aggregates.AvgRatingField:   avgRating,
			aggregates.RatingCountField: count,
			aggregates.LastUpdatedField: s.now().Unix(),
		})
		pipe.Expire(ctx, key, ratingTTL)
		pipe.ZAdd(ctx, aggregates.TopRestaurantsKey, redis.Z{Score: avgRating, Member: strconv.Itoa(restaurantID)})
		return nil
	})
	return err
}

func (s *Store) UpdateDriverRating(ctx context.Context, driverID int) error {
	var avgRating float64
	var count int
	err := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET avg_rating = COALESCE((
			SELECT ROUND(AVG(rating::numeric), 2)
			FROM ratings
			WHERE target_type = 'driver' AND target_id = $1
		), 0),
		rating_count = (
			SELECT COUNT(*)
			FROM ratings
			WHERE target_type = 'driver' AND target_id = $1
		)
		WHERE id = $1 AND role = 'driver'
		RETURNING avg_rating, rating_count
	`, driverID).Scan(&avgRating, &count)
	if err != nil {
		return err
	}

	key := aggregates.DriverRatingKey(driverID)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			aggregates.AvgRatingField:   avgRating,
			aggregates.RatingCountField: count,
			aggregates.LastUpdatedField: s.now().Unix(),
		})
		pipe.Expire(ctx, key, ratingTTL)
		return nil
	})
	return err
}

// RecordOrder adds a new order to the restaurant's daily and all-time item
// popularity and revenue.
func (s *Store) RecordOrder(ctx context.Context, event domain.Event) error {
	date := s.dateOf(event)
	dailyItems := aggregates.DailyItemsKey(date, event.RestaurantID)
	dailyRevenue := aggregates.DailyRevenueKey(date, event.RestaurantID)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, item := range event.Items {
			member := strconv.Itoa(item.MenuID)
			pipe.ZIncrBy(ctx, dailyItems, float64(item.Quantity), member)
			pipe.ZIncrBy(ctx, aggregates.AllTimeItemsKey(event.RestaurantID), float64(item.Quantity), member)
			if item.ItemName != "" {
				pipe.HSet(ctx, aggregates.ItemNamesKey(event.RestaurantID), member, item.ItemName)
			}
		}
		pipe.Expire(ctx, dailyItems, dailyTTL)

		pipe.HIncrByFloat(ctx, dailyRevenue, aggregates.RevenueField, event.TotalPrice)
		pipe.HIncrBy(ctx, dailyRevenue, aggregates.OrdersField, 1)
		pipe.Expire(ctx, dailyRevenue, dailyTTL)

		pipe.HIncrByFloat(ctx, aggregates.AllTimeRevenueKey(event.RestaurantID), aggregates.RevenueField, event.TotalPrice)
		pipe.HIncrBy(ctx, aggregates.AllTimeRevenueKey(event.RestaurantID), aggregates.OrdersField, 1)
		return nil
	})
	return err
}

// RecordCancellation counts a cancelled order on the day it was cancelled.
func (s *Store) RecordCancellation(ctx context.Context, event domain.Event) error {
	dailyRevenue := aggregates.DailyRevenueKey(s.dateOf(event), event.RestaurantID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, dailyRevenue, aggregates.CancelledField, 1)
		pipe.Expire(ctx, dailyRevenue, dailyTTL)
		pipe.HIncrBy(ctx, aggregates.AllTimeRevenueKey(event.RestaurantID), aggregates.CancelledField, 1)
		return nil
	})
	return err
}

func (s *Store) dateOf(event domain.Event) string {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	return ts.UTC().Format(aggregates.DateLayout)
}
