package service

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/cart"
	"food-delivery/market-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount must be positive and at most 10000.00")

var maxTopUp = decimal.NewFromInt(10000)

type WalletService struct {
	repo WalletRepository
}

func NewWalletService(repo WalletRepository) *WalletService {
	return &WalletService{repo: repo}
}

func (s *WalletService) Get(ctx context.Context, userID int) (*domain.Wallet, error) {
	return s.repo.GetWallet(ctx, userID)
}

// CheckBalance reports whether the wallet covers amount, which already
// includes the delivery fee.
func (s *WalletService) CheckBalance(ctx context.Context, userID int, amount float64) (*domain.BalanceCheck, error) {
	required := cart.SafePrice(amount)
	if !required.IsPositive() {
		return nil, ErrInvalidAmount
	}
	w, err := s.repo.GetWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	balance := cart.SafePrice(w.Balance)
	return &domain.BalanceCheck{
		Balance:    balance.InexactFloat64(),
		Required:   required.InexactFloat64(),
		Sufficient: balance.GreaterThanOrEqual(required),
	}, nil
}

func (s *WalletService) TopUp(ctx context.Context, userID int, amount float64) (*domain.Wallet, error) {
	value := cart.SafePrice(amount).Round(2)
	if !value.IsPositive() || value.GreaterThan(maxTopUp) {
		return nil, ErrInvalidAmount
	}
	return s.repo.TopUp(ctx, userID, value.InexactFloat64())
}

func (s *WalletService) Transactions(ctx context.Context, userID int) ([]domain.WalletTransaction, error) {
	return s.repo.ListTransactions(ctx, userID)
}
