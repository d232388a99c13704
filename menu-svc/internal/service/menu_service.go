package service

import (
	"context"
	"fmt"
	"strings"

	"food-delivery/auth"
	"food-delivery/cart"
	"food-delivery/menu-svc/internal/domain"
)

type MenuService struct {
	restaurants RestaurantRepository
	items       MenuRepository
}

func NewMenuService(restaurants RestaurantRepository, items MenuRepository) *MenuService {
	return &MenuService{restaurants: restaurants, items: items}
}

// List returns the restaurant's menu. Customers pass availableOnly to hide
// items the kitchen switched off.
func (s *MenuService) List(ctx context.Context, restaurantID int, availableOnly bool) ([]domain.MenuItem, error) {
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.items.ListMenuItems(ctx, restaurantID, availableOnly)
}

func (s *MenuService) Get(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error) {
	return s.items.GetMenuItem(ctx, restaurantID, itemID)
}

func (s *MenuService) Create(ctx context.Context, claims *auth.Claims, restaurantID int, input domain.MenuItemInput) (*domain.MenuItem, error) {
	if _, err := authorize(ctx, s.restaurants, claims, restaurantID); err != nil {
		return nil, err
	}
	item := domain.MenuItem{RestaurantID: restaurantID, IsAvailable: true}
	if err := applyMenuItemInput(&item, input); err != nil {
		return nil, err
	}
	if err := s.items.CreateMenuItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuService) Update(ctx context.Context, claims *auth.Claims, restaurantID, itemID int, input domain.MenuItemInput) (*domain.MenuItem, error) {
	if _, err := authorize(ctx, s.restaurants, claims, restaurantID); err != nil {
		return nil, err
	}
	item, err := s.items.GetMenuItem(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}
	if err := applyMenuItemInput(item, input); err != nil {
		return nil, err
	}
	if err := s.items.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, claims *auth.Claims, restaurantID, itemID int) error {
	if _, err := authorize(ctx, s.restaurants, claims, restaurantID); err != nil {
		return err
	}
	rows, err := s.items.DeleteMenuItem(ctx, restaurantID, itemID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *MenuService) SetAvailability(ctx context.Context, claims *auth.Claims, restaurantID, itemID int, available bool) (*domain.MenuItem, error) {
	if _, err := authorize(ctx, s.restaurants, claims, restaurantID); err != nil {
		return nil, err
	}
	return s.items.SetMenuItemAvailability(ctx, restaurantID, itemID, available)
}

func applyMenuItemInput(item *domain.MenuItem, input domain.MenuItemInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMenuItem)
	}
	price := cart.SafePrice(input.Price).Round(2)
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidMenuItem)
	}
	item.Name = name
	item.Description = strings.TrimSpace(input.Description)
	item.Category = strings.TrimSpace(input.Category)
	item.Price = price.InexactFloat64()
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	return nil
}
