package domain

import (
	"errors"
	"time"

	"food-delivery/orderstatus"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate rating")
)

type RatingType string

const (
	TargetRestaurant RatingType = "restaurant"
	TargetOrder      RatingType = "order"
	TargetDriver     RatingType = "driver"
)

func (t RatingType) Valid() bool {
	switch t {
	case TargetRestaurant, TargetOrder, TargetDriver:
		return true
	}
	return false
}

type Rating struct {
	ID         int        `json:"id"`
	UserID     int        `json:"userId"`
	OrderID    int        `json:"orderId"`
	TargetType RatingType `json:"targetType"`
	TargetID   int        `json:"targetId"`
	Rating     int        `json:"rating"`
	Comment    string     `json:"comment"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type RatingRequest struct {
	OrderID int    `json:"orderId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// OrderInfo is the part of an order a rating is checked against.
type OrderInfo struct {
	ID           int
	CustomerID   int
	RestaurantID int
	DriverID     *int
	Status       orderstatus.Status
}

type Summary struct {
	TargetType   RatingType     `json:"targetType"`
	TargetID     int            `json:"targetId"`
	Average      float64        `json:"average"`
	Count        int            `json:"count"`
	Distribution map[string]int `json:"distribution"`
}

const EventNewRating = "new_rating"

type RatingEvent struct {
	Type       string     `json:"type"`
	TargetType RatingType `json:"target_type"`
	TargetID   int        `json:"target_id"`
	OrderID    int        `json:"order_id"`
	UserID     int        `json:"user_id"`
	Rating     int        `json:"rating"`
	Timestamp  time.Time  `json:"timestamp"`
}
