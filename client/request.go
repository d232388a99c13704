package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"food-delivery/orderstatus"
)

type RequestState int

const (
	Idle RequestState = iota
	Pending
	Succeeded
	Failed
)

func (s RequestState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "idle"
}

// Request is the lifecycle of one write. Value is set only when State is
// Succeeded and Err only when it is Failed.
type Request[T any] struct {
	State RequestState
	Value T
	Err   error
}

var (
	ErrRequestInFlight = errors.New("an update for this order is already in progress")
	ErrUnknownOrder    = errors.New("order is not loaded")
	ErrUnknownAction   = errors.New("unknown order action")
)

// StatusUpdater drives restaurant actions on a list of orders. Local orders
// change only after the server confirms a transition, and then take the
// server's copy, timestamps included.
type StatusUpdater struct {
	api *API

	mu       sync.Mutex
	orders   map[int]Order
	requests map[int]Request[Order]
}

func NewStatusUpdater(api *API) *StatusUpdater {
	return &StatusUpdater{
		api:      api,
		orders:   make(map[int]Order),
		requests: make(map[int]Request[Order]),
	}
}

// Refresh replaces the local orders with the restaurant's current list.
func (u *StatusUpdater) Refresh(ctx context.Context, status string) ([]Order, error) {
	orders, err := u.api.RestaurantOrders(ctx, status)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.orders = make(map[int]Order, len(orders))
	for _, o := range orders {
		u.orders[o.ID] = o
	}
	return orders, nil
}

func (u *StatusUpdater) Order(id int) (Order, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	o, ok := u.orders[id]
	return o, ok
}

func (u *StatusUpdater) Request(id int) Request[Order] {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.requests[id]
}

// Actions lists the buttons to show for an order.
func (u *StatusUpdater) Actions(id int) []orderstatus.Action {
	o, ok := u.Order(id)
	if !ok {
		return nil
	}
	if u.Request(id).State == Pending {
		return nil
	}
	return orderstatus.RestaurantActions(o.Status)
}

func (u *StatusUpdater) Apply(ctx context.Context, id int, action orderstatus.Action) (Order, error) {
	target, ok := action.Target()
	if !ok {
		return Order{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	u.mu.Lock()
	current, ok := u.orders[id]
	if !ok {
		u.mu.Unlock()
		return Order{}, ErrUnknownOrder
	}
	if u.requests[id].State == Pending {
		u.mu.Unlock()
		return Order{}, ErrRequestInFlight
	}
	if err := orderstatus.CanTransition(current.Status, target, orderstatus.ActorRestaurant); err != nil {
		u.mu.Unlock()
		return Order{}, err
	}
	u.requests[id] = Request[Order]{State: Pending}
	u.mu.Unlock()

	updated, err := u.api.UpdateOrderStatus(ctx, id, string(target))

	u.mu.Lock()
	defer u.mu.Unlock()
	if err != nil {
		u.requests[id] = Request[Order]{State: Failed, Err: err}
		return Order{}, err
	}
	u.orders[id] = *updated
	u.requests[id] = Request[Order]{State: Succeeded, Value: *updated}
	return *updated, nil
}
