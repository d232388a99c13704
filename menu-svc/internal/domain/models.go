package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInUse    = errors.New("referenced by existing orders")
)

type Restaurant struct {
	ID          int       `json:"id"`
	OwnerID     *int      `json:"ownerId,omitempty"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	IsOpen      bool      `json:"isOpen"`
	AvgRating   float64   `json:"avgRating"`
	RatingCount int       `json:"ratingCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MenuItem struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurantId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"imageUrl"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RestaurantFilter narrows ListRestaurants. A nil IsOpen lists every restaurant.
type RestaurantFilter struct {
	IsOpen *bool
	Search string
}

// MenuItemInput is the writable part of a menu item. Price is kept raw so
// string and numeric prices are both accepted.
type MenuItemInput struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Price       interface{} `json:"price"`
	ImageURL    string      `json:"imageUrl"`
	IsAvailable *bool       `json:"isAvailable"`
}

type RestaurantInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	IsOpen      *bool  `json:"isOpen"`
}
