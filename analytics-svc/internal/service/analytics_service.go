package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"food-delivery/aggregates"
	"food-delivery/analytics-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidPeriod      = errors.New("period must be today or all")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

const (
	topItemsLimit      = 5
	maxRestaurantLimit = 50
)

// AnalyticsService reads the aggregates written by agg-svc and falls back
// to Postgres when Redis has nothing for the request.
type AnalyticsService struct {
	db  *sql.DB
	rdb *redis.Client
	now func() time.Time
}

func NewAnalyticsService(db *sql.DB, rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{db: db, rdb: rdb, now: time.Now}
}

func (s *AnalyticsService) ForRestaurant(ctx context.Context, restaurantID int, period string) (*domain.RestaurantAnalytics, error) {
	if period == "" {
		period = domain.PeriodToday
	}
	if period != domain.PeriodToday && period != domain.PeriodAll {
		return nil, ErrInvalidPeriod
	}

	result := &domain.RestaurantAnalytics{RestaurantID: restaurantID, Period: period}
	if err := s.loadRating(ctx, result); err != nil {
		return nil, err
	}

	cached, err := s.fromCache(ctx, result)
	if err != nil {
		log.Printf("[analytics-svc] redis read for restaurant %d failed: %v", restaurantID, err)
	}
	if cached {
		result.Source = domain.SourceCache
		return result, nil
	}

	if err := s.fromDatabase(ctx, result); err != nil {
		return nil, err
	}
	result.Source = domain.SourceDatabase
	return result, nil
}

func (s *AnalyticsService) revenueKeys(restaurantID int, period string) (revenueKey, itemsKey string) {
	if period == domain.PeriodAll {
		return aggregates.AllTimeRevenueKey(restaurantID), aggregates.AllTimeItemsKey(restaurantID)
	}
	date := s.now().UTC().Format(aggregates.DateLayout)
	return aggregates.DailyRevenueKey(date, restaurantID), aggregates.DailyItemsKey(date, restaurantID)
}

func (s *AnalyticsService) fromCache(ctx context.Context, result *domain.RestaurantAnalytics) (bool, error) {
	revenueKey, itemsKey := s.revenueKeys(result.RestaurantID, result.Period)

	revenue, err := s.rdb.HGetAll(ctx, revenueKey).Result()
	if err != nil || len(revenue) == 0 {
		return false, err
	}
	result.Revenue, _ = strconv.ParseFloat(revenue[aggregates.RevenueField], 64)
	result.Orders, _ = strconv.Atoi(revenue[aggregates.OrdersField])
	result.Cancelled, _ = strconv.Atoi(revenue[aggregates.CancelledField])

	top, err := s.rdb.ZRevRangeWithScores(ctx, itemsKey, 0, topItemsLimit-1).Result()
	if err != nil {
		return false, err
	}
	result.TopItems = make([]domain.ItemStat, 0, len(top))
	if len(top) == 0 {
		return true, nil
	}

	members := make([]string, len(top))
	for i, z := range top {
		members[i] = fmt.Sprint(z.Member)
	}
	names, err := s.rdb.HMGet(ctx, aggregates.ItemNamesKey(result.RestaurantID), members...).Result()
	if err != nil {
		return false, err
	}
	for i, z := range top {
		menuID, _ := strconv.Atoi(members[i])
		name, _ := names[i].(string)
		result.TopItems = append(result.TopItems, domain.ItemStat{MenuID: menuID, Name: name, Quantity: int(z.Score)})
	}
	return true, nil
}

func (s *AnalyticsService) fromDatabase(ctx context.Context, result *domain.RestaurantAnalytics) error {
	since := time.Unix(0, 0).UTC()
	if result.Period == domain.PeriodToday {
		now := s.now().UTC()
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_price), 0),
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'CANCELLED')
		FROM orders
		WHERE restaurant_id = $1 AND created_at >= $2
	`, result.RestaurantID, since).Scan(&result.Revenue, &result.Orders, &result.Cancelled)
	if err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.menu_id, oi.item_name, SUM(oi.quantity) AS quantity
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		WHERE o.restaurant_id = $1 AND o.created_at >= $2
		GROUP BY oi.menu_id, oi.item_name
		ORDER BY quantity DESC, oi.menu_id
		LIMIT $3
	`, result.RestaurantID, since, topItemsLimit)
	if err != nil {
		return err
	}
	defer rows.Close()

	result.TopItems = []domain.ItemStat{}
	for rows.Next() {
		var item domain.ItemStat
		if err := rows.Scan(&item.MenuID, &item.Name, &item.Quantity); err != nil {
			return err
		}
		result.TopItems = append(result.TopItems, item)
	}
	return rows.Err()
}

func (s *AnalyticsService) loadRating(ctx context.Context, result *domain.RestaurantAnalytics) error {
	rating, err := s.rdb.HGetAll(ctx, aggregates.RestaurantRatingKey(result.RestaurantID)).Result()
	if err == nil && len(rating) > 0 {
		result.AvgRating, _ = strconv.ParseFloat(rating[aggregates.AvgRatingField], 64)
		result.RatingCount, _ = strconv.Atoi(rating[aggregates.RatingCountField])
		return nil
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT avg_rating, rating_count FROM restaurants WHERE id = $1", result.RestaurantID).
		Scan(&result.AvgRating, &result.RatingCount)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRestaurantNotFound
	}
	return err
}

// TopRestaurants ranks restaurants by average rating.
func (s *AnalyticsService) TopRestaurants(ctx context.Context, limit int) ([]domain.RestaurantRank, error) {
	if limit <= 0 || limit > maxRestaurantLimit {
		limit = 10
	}

	top, err := s.rdb.ZRevRangeWithScores(ctx, aggregates.TopRestaurantsKey, 0, int64(limit-1)).Result()
	if err != nil {
		log.Printf("[analytics-svc] redis read for top restaurants failed: %v", err)
	}
	if len(top) == 0 {
		return s.topRestaurantsFromDB(ctx, limit)
	}

	ids := make([]int64, 0, len(top))
	for _, z := range top {
		id, err := strconv.ParseInt(fmt.Sprint(z.Member), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, avg_rating, rating_count FROM restaurants WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	ranks, err := scanRanks(rows)
	if err != nil {
		return nil, err
	}

	position := make(map[int]int, len(ids))
	for i, id := range ids {
		position[int(id)] = i
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return position[ranks[i].RestaurantID] < position[ranks[j].RestaurantID]
	})
	return ranks, nil
}

func (s *AnalyticsService) topRestaurantsFromDB(ctx context.Context, limit int) ([]domain.RestaurantRank, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, avg_rating, rating_count
		FROM restaurants
		WHERE rating_count > 0
		ORDER BY avg_rating DESC, rating_count DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return scanRanks(rows)
}

func scanRanks(rows *sql.Rows) ([]domain.RestaurantRank, error) {
	defer rows.Close()
	ranks := []domain.RestaurantRank{}
	for rows.Next() {
		var r domain.RestaurantRank
		if err := rows.Scan(&r.RestaurantID, &r.Name, &r.AvgRating, &r.RatingCount); err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}
	return ranks, rows.Err()
}
