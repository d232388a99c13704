package domain

import "time"

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventNewRating          = "new_rating"
)

const (
	TargetRestaurant = "restaurant"
	TargetOrder      = "order"
	TargetDriver     = "driver"
)

// Event is any message read from the orders or ratings topics. Fields not
// carried by a given event type stay zero.
type Event struct {
	Type         string      `json:"type"`
	OrderID      int         `json:"order_id"`
	RestaurantID int         `json:"restaurant_id"`
	CustomerID   int         `json:"customer_id"`
	DriverID     *int        `json:"driver_id,omitempty"`
	Status       string      `json:"status"`
	TotalPrice   float64     `json:"total_price"`
	Items        []EventItem `json:"items"`
	TargetType   string      `json:"target_type"`
	TargetID     int         `json:"target_id"`
	UserID       int         `json:"user_id"`
	Rating       int         `json:"rating"`
	Timestamp    time.Time   `json:"timestamp"`
}

type EventItem struct {
	MenuID   int     `json:"menuId"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
