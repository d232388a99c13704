// Package aggregates names the Redis keys agg-svc writes and analytics-svc
// reads.
package aggregates

import "fmt"

const (
	DateLayout = "2006-01-02"

	// TopRestaurantsKey is a sorted set of restaurant ids scored by average rating.
	TopRestaurantsKey = "analytics:top-restaurants"

	RevenueField     = "revenue"
	OrdersField      = "orders"
	CancelledField   = "cancelled"
	AvgRatingField   = "avg_rating"
	RatingCountField = "rating_count"
	LastUpdatedField = "last_updated"
)

// DailyItemsKey is a sorted set of menu ids scored by quantity ordered that day.
func DailyItemsKey(date string, restaurantID int) string {
	return fmt.Sprintf("analytics:daily:%s:%d", date, restaurantID)
}

func AllTimeItemsKey(restaurantID int) string {
	return fmt.Sprintf("analytics:alltime:%d", restaurantID)
}

// DailyRevenueKey is a hash of revenue, orders and cancelled for one day.
func DailyRevenueKey(date string, restaurantID int) string {
	return fmt.Sprintf("analytics:revenue:%s:%d", date, restaurantID)
}

func AllTimeRevenueKey(restaurantID int) string {
	return fmt.Sprintf("analytics:revenue:alltime:%d", restaurantID)
}

// ItemNamesKey maps menu ids to the item name last seen in an order.
func ItemNamesKey(restaurantID int) string {
	return fmt.Sprintf("analytics:items:%d", restaurantID)
}

func RestaurantRatingKey(restaurantID int) string {
	return fmt.Sprintf("restaurant:%d:rating", restaurantID)
}

func DriverRatingKey(driverID int) string {
	return fmt.Sprintf("driver:%d:rating", driverID)
}
