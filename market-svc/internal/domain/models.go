package domain

import (
	"errors"
	"time"

	"food-delivery/orderstatus"
	"food-delivery/wallet"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrStatusConflict      = errors.New("order status changed concurrently")
	ErrEmailTaken          = errors.New("email already registered")
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	RestaurantID *int      `json:"restaurantId,omitempty"` // restaurant owned by the user
	CreatedAt    time.Time `json:"createdAt"`
}

// Party is the summary of a user or restaurant attached to an order.
type Party struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type Restaurant struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	IsOpen bool   `json:"isOpen"`
}

// MenuPrice is the authoritative price of a menu item at order time.
type MenuPrice struct {
	MenuID       int     `json:"menuId"`
	RestaurantID int     `json:"restaurantId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Available    bool    `json:"isAvailable"`
}

type OrderItem struct {
	ID       int     `json:"id,omitempty"`
	MenuID   int     `json:"menuId"`
	ItemName string  `json:"itemName,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID                   int                  `json:"id"`
	CustomerID           int                  `json:"customerId"`
	RestaurantID         int                  `json:"restaurantId"`
	DriverID             *int                 `json:"driverId,omitempty"`
	Customer             *Party               `json:"customer,omitempty"`
	Restaurant           *Party               `json:"restaurant,omitempty"`
	Driver               *Party               `json:"driver,omitempty"`
	Items                []OrderItem          `json:"orderItems"`
	TotalPrice           float64              `json:"totalPrice"`
	DeliveryFee          float64              `json:"deliveryFee"`
	Commission           float64              `json:"commission"`
	Status               orderstatus.Status   `json:"status"`
	PaymentMethod        wallet.PaymentMethod `json:"paymentMethod"`
	PaymentStatus        wallet.PaymentStatus `json:"paymentStatus"`
	DeliveryAddress      string               `json:"deliveryAddress"`
	DeliveryLat          *float64             `json:"deliveryLat,omitempty"`
	DeliveryLng          *float64             `json:"deliveryLng,omitempty"`
	DeliveryInstructions string               `json:"deliveryInstructions,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
	AcceptedAt           *time.Time           `json:"acceptedAt,omitempty"`
	PreparingAt          *time.Time           `json:"preparingAt,omitempty"`
	ReadyAt              *time.Time           `json:"readyAt,omitempty"`
	PickedUpAt           *time.Time           `json:"pickedUpAt,omitempty"`
	DeliveredAt          *time.Time           `json:"deliveredAt,omitempty"`
	CancelledAt          *time.Time           `json:"cancelledAt,omitempty"`
}

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

// StatusChange is a compare-and-set of an order's status.
type StatusChange struct {
	OrderID  int
	From     orderstatus.Status
	To       orderstatus.Status
	DriverID *int
	Refund   bool
}

type Wallet struct {
	UserID    int       `json:"userId"`
	Balance   float64   `json:"balance"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WalletTransaction struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	OrderID      *int      `json:"orderId,omitempty"`
	Kind         string    `json:"kind"`
	Amount       float64   `json:"amount"`
	BalanceAfter float64   `json:"balanceAfter"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BalanceCheck struct {
	Balance    float64 `json:"balance"`
	Required   float64 `json:"required"`
	Sufficient bool    `json:"sufficient"`
}

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderEvent is published to the orders topic.
type OrderEvent struct {
	Type         string             `json:"type"`
	OrderID      int                `json:"order_id"`
	RestaurantID int                `json:"restaurant_id"`
	CustomerID   int                `json:"customer_id"`
	DriverID     *int               `json:"driver_id,omitempty"`
	Status       orderstatus.Status `json:"status"`
	TotalPrice   float64            `json:"total_price"`
	Items        []OrderItem        `json:"items,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
}
