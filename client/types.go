package client

import (
	"time"

	"food-delivery/orderstatus"
	"food-delivery/wallet"
)

type OrderItem struct {
	ID       int     `json:"id,omitempty"`
	MenuID   int     `json:"menuId"`
	ItemName string  `json:"itemName,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Party struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type Order struct {
	ID                   int                  `json:"id"`
	CustomerID           int                  `json:"customerId"`
	RestaurantID         int                  `json:"restaurantId"`
	DriverID             *int                 `json:"driverId,omitempty"`
	Restaurant           *Party               `json:"restaurant,omitempty"`
	Driver               *Party               `json:"driver,omitempty"`
	Items                []OrderItem          `json:"orderItems"`
	TotalPrice           float64              `json:"totalPrice"`
	DeliveryFee          float64              `json:"deliveryFee"`
	Status               orderstatus.Status   `json:"status"`
	PaymentMethod        wallet.PaymentMethod `json:"paymentMethod"`
	PaymentStatus        wallet.PaymentStatus `json:"paymentStatus"`
	DeliveryAddress      string               `json:"deliveryAddress"`
	DeliveryInstructions string               `json:"deliveryInstructions,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	AcceptedAt           *time.Time           `json:"acceptedAt,omitempty"`
	PreparingAt          *time.Time           `json:"preparingAt,omitempty"`
	ReadyAt              *time.Time           `json:"readyAt,omitempty"`
	DeliveredAt          *time.Time           `json:"deliveredAt,omitempty"`
	CancelledAt          *time.Time           `json:"cancelledAt,omitempty"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	RestaurantID         int         `json:"restaurantId"`
	Items                []OrderItem `json:"items"`
	TotalPrice           float64     `json:"totalPrice"`
	DeliveryFee          float64     `json:"deliveryFee"`
	DeliveryAddress      string      `json:"deliveryAddress"`
	DeliveryLat          *float64    `json:"deliveryLat,omitempty"`
	DeliveryLng          *float64    `json:"deliveryLng,omitempty"`
	DeliveryInstructions string      `json:"deliveryInstructions,omitempty"`
	PaymentMethod        string      `json:"paymentMethod"`
}

type Wallet struct {
	UserID  int     `json:"userId"`
	Balance float64 `json:"balance"`
}

type BalanceCheck struct {
	Balance    float64 `json:"balance"`
	Required   float64 `json:"required"`
	Sufficient bool    `json:"sufficient"`
}

type MenuItem struct {
	ID           int     `json:"id"`
	RestaurantID int     `json:"restaurantId"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"imageUrl"`
	IsAvailable  bool    `json:"isAvailable"`
}

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	RestaurantID *int   `json:"restaurantId,omitempty"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type RatingType string

const (
	RatingRestaurant RatingType = "restaurant"
	RatingOrder      RatingType = "order"
	RatingDriver     RatingType = "driver"
)

type RatingRequest struct {
	OrderID int    `json:"orderId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}
