package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-delivery/auth"
	"food-delivery/menu-svc/internal/domain"
)

var (
	ErrInvalidRestaurant = errors.New("invalid restaurant")
	ErrInvalidMenuItem   = errors.New("invalid menu item")
	ErrForbidden         = errors.New("you do not manage this restaurant")
)

type RestaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

func (s *RestaurantService) List(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.ListRestaurants(ctx, filter)
}

func (s *RestaurantService) Get(ctx context.Context, id int) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

// Create registers a restaurant owned by the calling restaurant account.
func (s *RestaurantService) Create(ctx context.Context, claims *auth.Claims, input domain.RestaurantInput) (*domain.Restaurant, error) {
	if claims == nil || claims.Role != auth.RoleRestaurant {
		return nil, ErrForbidden
	}
	rest := domain.Restaurant{IsOpen: true}
	if err := applyRestaurantInput(&rest, input); err != nil {
		return nil, err
	}
	ownerID := claims.UserID
	rest.OwnerID = &ownerID
	if err := s.repo.CreateRestaurant(ctx, &rest); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (s *RestaurantService) Update(ctx context.Context, claims *auth.Claims, id int, input domain.RestaurantInput) (*domain.Restaurant, error) {
	rest, err := authorize(ctx, s.repo, claims, id)
	if err != nil {
		return nil, err
	}
	if err := applyRestaurantInput(rest, input); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRestaurant(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) Delete(ctx context.Context, claims *auth.Claims, id int) error {
	if _, err := authorize(ctx, s.repo, claims, id); err != nil {
		return err
	}
	rows, err := s.repo.DeleteRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetOpen toggles whether the restaurant accepts new orders.
func (s *RestaurantService) SetOpen(ctx context.Context, claims *auth.Claims, id int, isOpen bool) (*domain.Restaurant, error) {
	if _, err := authorize(ctx, s.repo, claims, id); err != nil {
		return nil, err
	}
	return s.repo.SetRestaurantOpen(ctx, id, isOpen)
}

func applyRestaurantInput(rest *domain.Restaurant, input domain.RestaurantInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRestaurant)
	}
	rest.Name = name
	rest.Address = strings.TrimSpace(input.Address)
	rest.Description = strings.TrimSpace(input.Description)
	rest.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.IsOpen != nil {
		rest.IsOpen = *input.IsOpen
	}
	return nil
}

// authorize loads the restaurant and checks that the caller manages it,
// either through the restaurant bound to the token or as its owner.
func authorize(ctx context.Context, repo RestaurantRepository, claims *auth.Claims, restaurantID int) (*domain.Restaurant, error) {
	if claims == nil || claims.Role != auth.RoleRestaurant {
		return nil, ErrForbidden
	}
	rest, err := repo.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if claims.RestaurantID == restaurantID {
		return rest, nil
	}
	if rest.OwnerID != nil && *rest.OwnerID == claims.UserID {
		return rest, nil
	}
	return nil, ErrForbidden
}
