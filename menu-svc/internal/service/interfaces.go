package service

import (
	"context"

	"food-delivery/auth"
	"food-delivery/menu-svc/internal/domain"
)

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id int) (int64, error)
	SetRestaurantOpen(ctx context.Context, id int, isOpen bool) (*domain.Restaurant, error)
}

type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context, restaurantID int, availableOnly bool) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, restaurantID, itemID int) (int64, error)
	SetMenuItemAvailability(ctx context.Context, restaurantID, itemID int, available bool) (*domain.MenuItem, error)
}

type RestaurantServiceInterface interface {
	List(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error)
	Get(ctx context.Context, id int) (*domain.Restaurant, error)
	Create(ctx context.Context, claims *auth.Claims, input domain.RestaurantInput) (*domain.Restaurant, error)
	Update(ctx context.Context, claims *auth.Claims, id int, input domain.RestaurantInput) (*domain.Restaurant, error)
	Delete(ctx context.Context, claims *auth.Claims, id int) error
	SetOpen(ctx context.Context, claims *auth.Claims, id int, isOpen bool) (*domain.Restaurant, error)
}

type MenuServiceInterface interface {
	List(ctx context.Context, restaurantID int, availableOnly bool) ([]domain.MenuItem, error)
	Get(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error)
	Create(ctx context.Context, claims *auth.Claims, restaurantID int, input domain.MenuItemInput) (*domain.MenuItem, error)
	Update(ctx context.Context, claims *auth.Claims, restaurantID, itemID int, input domain.MenuItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, claims *auth.Claims, restaurantID, itemID int) error
	SetAvailability(ctx context.Context, claims *auth.Claims, restaurantID, itemID int, available bool) (*domain.MenuItem, error)
}

var (
	_ RestaurantServiceInterface = (*RestaurantService)(nil)
	_ MenuServiceInterface       = (*MenuService)(nil)
)
