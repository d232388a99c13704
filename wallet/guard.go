package wallet

import (
	"errors"
	"fmt"
	"strings"

	"food-delivery/cart"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	Cash   PaymentMethod = "CASH"
	Card   PaymentMethod = "CARD"
	Wallet PaymentMethod = "WALLET"
	UPI    PaymentMethod = "UPI"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// FlatDeliveryFee is charged on every order at checkout.
var FlatDeliveryFee = decimal.RequireFromString("5.00")

var (
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInsufficientFunds    = errors.New("insufficient wallet balance")
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case Cash, Card, Wallet, UPI:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
}

// InsufficientFundsError carries both figures shown to the customer.
type InsufficientFundsError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient wallet balance: balance %s, required %s",
		e.Balance.StringFixed(2), e.Required.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// Guard pre-checks wallet checkouts against a cached balance. The server
// performs the real debit; this only avoids a doomed request.
type Guard struct {
	Balance decimal.Decimal
}

func NewGuard(balance decimal.Decimal) Guard {
	return Guard{Balance: balance}
}

// Required is the amount a wallet checkout needs.
func Required(cartTotal, deliveryFee decimal.Decimal) decimal.Decimal {
	return cart.OrderTotal(cartTotal, deliveryFee)
}

// Check returns nil for non-wallet methods or when the balance covers
// cartTotal plus the delivery fee.
func (g Guard) Check(method PaymentMethod, cartTotal, deliveryFee decimal.Decimal) error {
	if method != Wallet {
		return nil
	}
	required := Required(cartTotal, deliveryFee)
	if g.Balance.LessThan(required) {
		return &InsufficientFundsError{Balance: g.Balance, Required: required}
	}
	return nil
}
