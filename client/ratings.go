package client

import (
	"context"
	"sync"

	"food-delivery/orderstatus"

	"golang.org/x/sync/errgroup"
)

// RatingState records which ratings the customer already gave for an order.
type RatingState struct {
	Order      bool `json:"order"`
	Restaurant bool `json:"restaurant"`
	Driver     bool `json:"driver"`
}

// DefaultRatingConcurrency bounds parallel rating checks.
const DefaultRatingConcurrency = 4

// LoadRatingStates checks every delivered order's order, restaurant and
// driver ratings concurrently and returns once all checks finished. Driver
// checks are skipped for orders without a driver. The first failure cancels
// the remaining checks.
func LoadRatingStates(ctx context.Context, api *API, orders []Order, limit int) (map[int]RatingState, error) {
	if limit <= 0 {
		limit = DefaultRatingConcurrency
	}

	var mu sync.Mutex
	states := make(map[int]RatingState)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, order := range orders {
		if order.Status != orderstatus.Delivered {
			continue
		}
		mu.Lock()
		states[order.ID] = RatingState{}
		mu.Unlock()

		kinds := []RatingType{RatingOrder, RatingRestaurant}
		if order.DriverID != nil {
			kinds = append(kinds, RatingDriver)
		}
		for _, kind := range kinds {
			orderID, kind := order.ID, kind
			g.Go(func() error {
				rated, err := api.CheckRating(ctx, kind, orderID)
				if err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				state := states[orderID]
				switch kind {
				case RatingOrder:
					state.Order = rated
				case RatingRestaurant:
					state.Restaurant = rated
				case RatingDriver:
					state.Driver = rated
				}
				states[orderID] = state
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}
