package client

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"food-delivery/cart"
	"food-delivery/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart       = errors.New("your cart is empty")
	ErrMissingAddress  = errors.New("please enter a delivery address")
	ErrCheckoutPending = errors.New("order is already being placed")
)

type CheckoutForm struct {
	Address       string
	Lat, Lng      *float64
	Instructions  string
	PaymentMethod wallet.PaymentMethod
}

// BuildOrderRequest turns a cart snapshot into the POST /orders body. The
// total is the cart subtotal plus fee.
func BuildOrderRequest(state cart.State, form CheckoutForm, fee decimal.Decimal) (CreateOrderRequest, error) {
	if state.IsEmpty() || state.RestaurantID == nil {
		return CreateOrderRequest{}, ErrEmptyCart
	}
	address := strings.TrimSpace(form.Address)
	if address == "" {
		return CreateOrderRequest{}, ErrMissingAddress
	}
	method := form.PaymentMethod
	if method == "" {
		method = wallet.Cash
	}

	items := make([]OrderItem, 0, len(state.Lines))
	for _, line := range state.Lines {
		items = append(items, OrderItem{
			MenuID:   line.MenuID,
			Quantity: line.Quantity,
			Price:    cart.SafePrice(line.Price).InexactFloat64(),
		})
	}

	return CreateOrderRequest{
		RestaurantID:         *state.RestaurantID,
		Items:                items,
		TotalPrice:           state.CheckoutTotal(fee).Round(2).InexactFloat64(),
		DeliveryFee:          cart.SafePrice(fee).InexactFloat64(),
		DeliveryAddress:      address,
		DeliveryLat:          form.Lat,
		DeliveryLng:          form.Lng,
		DeliveryInstructions: strings.TrimSpace(form.Instructions),
		PaymentMethod:        string(method),
	}, nil
}

// Checkout places the cart as an order. The wallet balance is fetched by
// Refresh when the checkout screen opens and is not re-read afterwards.
type Checkout struct {
	api   *API
	store *CartStore
	fee   decimal.Decimal

	mu                 sync.Mutex
	balance            *decimal.Decimal
	pendingKey         string
	pendingFingerprint [sha256.Size]byte
	inFlight           bool
}

func NewCheckout(api *API, store *CartStore) *Checkout {
	return &Checkout{api: api, store: store, fee: wallet.FlatDeliveryFee}
}

func (c *Checkout) Refresh(ctx context.Context) error {
	w, err := c.api.Wallet(ctx)
	if err != nil {
		return err
	}
	balance := cart.SafePrice(w.Balance)
	c.mu.Lock()
	c.balance = &balance
	c.mu.Unlock()
	return nil
}

// Balance returns the cached wallet balance, if Refresh has succeeded.
func (c *Checkout) Balance() (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.balance == nil {
		return decimal.Zero, false
	}
	return *c.balance, true
}

// Submit validates the cart and form locally, then creates the order. A
// retry of the same request after a failed attempt reuses the idempotency
// key, so the server places the order at most once. A changed cart or form
// gets a fresh key. The cart is cleared only once the server has accepted
// the order.
func (c *Checkout) Submit(ctx context.Context, form CheckoutForm) (*Order, error) {
	state := c.store.State()
	req, err := BuildOrderRequest(state, form, c.fee)
	if err != nil {
		return nil, err
	}

	if form.PaymentMethod == wallet.Wallet {
		balance, ok := c.Balance()
		if !ok {
			if err := c.Refresh(ctx); err != nil {
				return nil, fmt.Errorf("load wallet balance: %w", err)
			}
			balance, _ = c.Balance()
		}
		if err := wallet.NewGuard(balance).Check(wallet.Wallet, state.Subtotal, c.fee); err != nil {
			return nil, err
		}
	}

	fingerprint, err := requestFingerprint(req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrCheckoutPending
	}
	c.inFlight = true
	if c.pendingKey == "" || c.pendingFingerprint != fingerprint {
		c.pendingKey = uuid.NewString()
		c.pendingFingerprint = fingerprint
	}
	key := c.pendingKey
	c.mu.Unlock()

	order, err := c.api.CreateOrder(ctx, req, key)

	c.mu.Lock()
	c.inFlight = false
	var apiErr *APIError
	if err == nil || (errors.As(err, &apiErr) && apiErr.StatusCode < 500) {
		c.pendingKey = ""
	}
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	c.store.Clear()
	return order, nil
}

func requestFingerprint(req CreateOrderRequest) ([sha256.Size]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return [sha256.Size]byte{}, fmt.Errorf("encode order request: %w", err)
	}
	return sha256.Sum256(body), nil
}
