package mocks

import (
	"context"

	"food-delivery/auth"
	"food-delivery/market-svc/internal/domain"
	"food-delivery/market-svc/internal/service"
	"food-delivery/orderstatus"

	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (_m *OrderService) Create(ctx context.Context, customerID int, req domain.CreateOrderRequest, idempotencyKey string) (*domain.Order, error) {
	ret := _m.Called(ctx, customerID, req, idempotencyKey)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) Get(ctx context.Context, claims *auth.Claims, orderID int) (*domain.Order, error) {
	ret := _m.Called(ctx, claims, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) Status(ctx context.Context, claims *auth.Claims, orderID int) (orderstatus.Status, error) {
	ret := _m.Called(ctx, claims, orderID)
	return ret.Get(0).(orderstatus.Status), ret.Error(1)
}

func (_m *OrderService) ListForCustomer(ctx context.Context, customerID int) ([]domain.Order, error) {
	ret := _m.Called(ctx, customerID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) ListForRestaurant(ctx context.Context, restaurantID int, status string) ([]domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, status)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) ListForDriver(ctx context.Context, driverID int) ([]domain.Order, error) {
	ret := _m.Called(ctx, driverID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) UpdateStatus(ctx context.Context, claims *auth.Claims, orderID int, target string) (*domain.Order, error) {
	ret := _m.Called(ctx, claims, orderID, target)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) Cancel(ctx context.Context, claims *auth.Claims, orderID int) (*domain.Order, error) {
	ret := _m.Called(ctx, claims, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) QRCode(ctx context.Context, claims *auth.Claims, orderID int) ([]byte, error) {
	ret := _m.Called(ctx, claims, orderID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

type WalletService struct {
	mock.Mock
}

func (_m *WalletService) Get(ctx context.Context, userID int) (*domain.Wallet, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Wallet)
	}
	return r0, ret.Error(1)
}

func (_m *WalletService) CheckBalance(ctx context.Context, userID int, amount float64) (*domain.BalanceCheck, error) {
	ret := _m.Called(ctx, userID, amount)
	var r0 *domain.BalanceCheck
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.BalanceCheck)
	}
	return r0, ret.Error(1)
}

func (_m *WalletService) TopUp(ctx context.Context, userID int, amount float64) (*domain.Wallet, error) {
	ret := _m.Called(ctx, userID, amount)
	var r0 *domain.Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Wallet)
	}
	return r0, ret.Error(1)
}

func (_m *WalletService) Transactions(ctx context.Context, userID int) ([]domain.WalletTransaction, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.WalletTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.WalletTransaction)
	}
	return r0, ret.Error(1)
}

type AccountService struct {
	mock.Mock
}

func (_m *AccountService) Register(ctx context.Context, req service.RegisterRequest) (*service.Session, error) {
	ret := _m.Called(ctx, req)
	var r0 *service.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.Session)
	}
	return r0, ret.Error(1)
}

func (_m *AccountService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	ret := _m.Called(ctx, email, password)
	var r0 *service.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.Session)
	}
	return r0, ret.Error(1)
}

func (_m *AccountService) Refresh(ctx context.Context, userID int) (*service.Session, error) {
	ret := _m.Called(ctx, userID)
	var r0 *service.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.Session)
	}
	return r0, ret.Error(1)
}
