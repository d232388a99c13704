package client

import (
	"sync"

	"food-delivery/cart"

	"github.com/shopspring/decimal"
)

// Notifier shows a short message to the user, such as a toast.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// CartStore is the app's single cart. Build it once at startup and pass it
// to every screen that reads or changes the cart.
type CartStore struct {
	mu       sync.Mutex
	cart     *cart.Cart
	notifier Notifier
}

func NewCartStore(notifier Notifier) *CartStore {
	return &CartStore{cart: cart.New(), notifier: notifier}
}

func (s *CartStore) AddItem(item cart.Item) cart.State {
	s.mu.Lock()
	warning := s.cart.AddItem(item)
	state := s.cart.State()
	s.mu.Unlock()

	if warning != "" && s.notifier != nil {
		s.notifier.Notify(warning)
	}
	return state
}

func (s *CartStore) RemoveItem(menuID int) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(menuID)
	return s.cart.State()
}

func (s *CartStore) UpdateQuantity(menuID, quantity int) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(menuID, quantity)
	return s.cart.State()
}

func (s *CartStore) Clear() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.cart.State()
}

func (s *CartStore) SetDeliveryFee(fee decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetDeliveryFee(fee)
}

func (s *CartStore) State() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.State()
}
